package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/syedfahimdev/omni-admin/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("subscription.service"),
		repo: p.Repo,
	}
}

func (s *Service) Current(ctx context.Context, businessID string) (*domain.BusinessSubscription, error) {
	return s.repo.FindCurrent(ctx, s.db, businessID)
}

func (s *Service) Save(ctx context.Context, req domain.SaveSubscriptionRequest) (domain.BusinessSubscription, error) {
	planCode := strings.TrimSpace(req.PlanCode)
	if planCode == "" {
		return domain.BusinessSubscription{}, domain.ErrInvalidPlanCode
	}
	if !slices.Contains(domain.Statuses, req.Status) {
		return domain.BusinessSubscription{}, domain.ErrInvalidStatus
	}

	current, err := s.repo.FindCurrent(ctx, s.db, req.BusinessID)
	if err != nil {
		return domain.BusinessSubscription{}, err
	}

	if current != nil {
		columns := map[string]any{
			"plan_code":  planCode,
			"status":     req.Status,
			"valid_from": req.ValidFrom,
			"valid_to":   req.ValidTo,
		}
		if err := s.repo.Update(ctx, s.db, current.ID, columns); err != nil {
			return domain.BusinessSubscription{}, err
		}
		updated, err := s.repo.FindCurrent(ctx, s.db, req.BusinessID)
		if err != nil {
			return domain.BusinessSubscription{}, err
		}
		return *updated, nil
	}

	subscription := domain.BusinessSubscription{
		ID:         uuid.NewString(),
		BusinessID: req.BusinessID,
		PlanCode:   planCode,
		Status:     req.Status,
		ValidFrom:  req.ValidFrom,
		ValidTo:    req.ValidTo,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &subscription); err != nil {
		return domain.BusinessSubscription{}, err
	}
	return subscription, nil
}

func (s *Service) CountActiveByPlan(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountActiveByPlan(ctx, s.db)
}
