package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/syedfahimdev/omni-admin/internal/businessmodule/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:  p.Log.Named("businessmodule.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListForBusiness(ctx context.Context, businessID string) ([]domain.BusinessModule, error) {
	return s.repo.ListByBusiness(ctx, s.db, businessID)
}

func (s *Service) Toggle(ctx context.Context, req domain.ToggleRequest) (domain.BusinessModule, error) {
	moduleCode := strings.TrimSpace(req.ModuleCode)
	if moduleCode == "" {
		return domain.BusinessModule{}, domain.ErrInvalidModuleCode
	}

	existing, err := s.repo.FindByBusinessAndCode(ctx, s.db, req.BusinessID, moduleCode)
	if err != nil {
		return domain.BusinessModule{}, err
	}

	if existing != nil {
		if err := s.repo.Update(ctx, s.db, existing.ID, map[string]any{"is_active": req.Enabled}); err != nil {
			return domain.BusinessModule{}, err
		}
		existing.IsActive = req.Enabled
		return *existing, nil
	}

	module := domain.BusinessModule{
		ID:         uuid.NewString(),
		BusinessID: req.BusinessID,
		ModuleCode: moduleCode,
		IsActive:   req.Enabled,
		Config:     datatypes.JSONMap{},
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &module); err != nil {
		return domain.BusinessModule{}, err
	}
	return module, nil
}

func (s *Service) SetConfig(ctx context.Context, req domain.SetConfigRequest) (domain.BusinessModule, error) {
	var config map[string]any
	if err := json.Unmarshal([]byte(req.RawConfig), &config); err != nil || config == nil {
		return domain.BusinessModule{}, domain.ErrInvalidConfig
	}

	existing, err := s.repo.FindByBusinessAndCode(ctx, s.db, req.BusinessID, strings.TrimSpace(req.ModuleCode))
	if err != nil {
		return domain.BusinessModule{}, err
	}
	if existing == nil {
		return domain.BusinessModule{}, domain.ErrNotFound
	}

	if err := s.repo.Update(ctx, s.db, existing.ID, map[string]any{"config": datatypes.JSONMap(config)}); err != nil {
		return domain.BusinessModule{}, err
	}
	existing.Config = datatypes.JSONMap(config)
	return *existing, nil
}
