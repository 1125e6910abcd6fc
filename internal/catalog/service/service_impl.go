package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/syedfahimdev/omni-admin/internal/cache"
	"github.com/syedfahimdev/omni-admin/internal/catalog/domain"
	pkgdb "github.com/syedfahimdev/omni-admin/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	referenceTTL = 5 * time.Minute

	moduleTypesKey = "catalog.module_types"
	plansKey       = "catalog.subscription_plans"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Repo  domain.Repository
	Cache cache.Cache[string, any]
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	cache cache.Cache[string, any]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) GetModuleTypes(ctx context.Context) ([]domain.ModuleType, error) {
	value, err := s.cache.GetOrFetch(moduleTypesKey, referenceTTL, func() (any, error) {
		return s.repo.ListModuleTypes(ctx, s.db)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.ModuleType), nil
}

func (s *Service) CreateModuleType(ctx context.Context, req domain.CreateModuleTypeRequest) (domain.ModuleType, error) {
	code := strings.TrimSpace(req.Code)
	displayName := strings.TrimSpace(req.DisplayName)
	if code == "" {
		return domain.ModuleType{}, domain.ErrInvalidCode
	}
	if displayName == "" {
		return domain.ModuleType{}, domain.ErrInvalidDisplayName
	}

	moduleType := domain.ModuleType{
		ID:          uuid.NewString(),
		Code:        code,
		DisplayName: displayName,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.InsertModuleType(ctx, s.db, &moduleType); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.ModuleType{}, domain.ErrCodeTaken
		}
		return domain.ModuleType{}, err
	}
	s.cache.InvalidateAll()
	return moduleType, nil
}

func (s *Service) UpdateModuleType(ctx context.Context, id string, req domain.UpdateModuleTypeRequest) (domain.ModuleType, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return domain.ModuleType{}, domain.ErrInvalidDisplayName
	}

	existing, err := s.repo.FindModuleTypeByID(ctx, s.db, id)
	if err != nil {
		return domain.ModuleType{}, err
	}
	if existing == nil {
		return domain.ModuleType{}, domain.ErrNotFound
	}

	// Code is immutable once created; only the descriptive fields change.
	columns := map[string]any{
		"display_name": displayName,
		"description":  strings.TrimSpace(req.Description),
	}
	if err := s.repo.UpdateModuleType(ctx, s.db, id, columns); err != nil {
		return domain.ModuleType{}, err
	}
	s.cache.InvalidateAll()

	updated, err := s.repo.FindModuleTypeByID(ctx, s.db, id)
	if err != nil {
		return domain.ModuleType{}, err
	}
	return *updated, nil
}

func (s *Service) DeleteModuleType(ctx context.Context, id string) error {
	existing, err := s.repo.FindModuleTypeByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	count, err := s.repo.CountModuleUsage(ctx, s.db, existing.Code)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.InUseError{Count: count}
	}

	if err := s.repo.DeleteModuleType(ctx, s.db, id); err != nil {
		return err
	}
	s.cache.InvalidateAll()
	return nil
}

func (s *Service) GetSubscriptionPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	value, err := s.cache.GetOrFetch(plansKey, referenceTTL, func() (any, error) {
		return s.repo.ListPlans(ctx, s.db)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.SubscriptionPlan), nil
}

func (s *Service) CreatePlan(ctx context.Context, req domain.CreatePlanRequest) (domain.SubscriptionPlan, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" {
		return domain.SubscriptionPlan{}, domain.ErrInvalidCode
	}
	if name == "" {
		return domain.SubscriptionPlan{}, domain.ErrInvalidName
	}

	plan := domain.SubscriptionPlan{
		ID:             uuid.NewString(),
		Code:           code,
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		AllowedModules: datatypes.NewJSONSlice(normalizeModules(req.AllowedModules)),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.InsertPlan(ctx, s.db, &plan); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.SubscriptionPlan{}, domain.ErrCodeTaken
		}
		return domain.SubscriptionPlan{}, err
	}
	s.cache.InvalidateAll()
	return plan, nil
}

func (s *Service) UpdatePlan(ctx context.Context, id string, req domain.UpdatePlanRequest) (domain.SubscriptionPlan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.SubscriptionPlan{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindPlanByID(ctx, s.db, id)
	if err != nil {
		return domain.SubscriptionPlan{}, err
	}
	if existing == nil {
		return domain.SubscriptionPlan{}, domain.ErrNotFound
	}

	columns := map[string]any{
		"name":            name,
		"description":     strings.TrimSpace(req.Description),
		"allowed_modules": datatypes.NewJSONSlice(normalizeModules(req.AllowedModules)),
	}
	if err := s.repo.UpdatePlan(ctx, s.db, id, columns); err != nil {
		return domain.SubscriptionPlan{}, err
	}
	s.cache.InvalidateAll()

	updated, err := s.repo.FindPlanByID(ctx, s.db, id)
	if err != nil {
		return domain.SubscriptionPlan{}, err
	}
	return *updated, nil
}

func (s *Service) DeletePlan(ctx context.Context, id string) error {
	existing, err := s.repo.FindPlanByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	count, err := s.repo.CountPlanUsage(ctx, s.db, existing.Code)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.InUseError{Count: count}
	}

	if err := s.repo.DeletePlan(ctx, s.db, id); err != nil {
		return err
	}
	s.cache.InvalidateAll()
	return nil
}

func (s *Service) InvalidateCache() {
	s.cache.InvalidateAll()
}

func normalizeModules(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
