package repository

import (
	"context"

	"github.com/syedfahimdev/omni-admin/internal/catalog/domain"
	"github.com/syedfahimdev/omni-admin/pkg/db/query"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListModuleTypes(ctx context.Context, db *gorm.DB) ([]domain.ModuleType, error) {
	return query.Find[domain.ModuleType](ctx, db, query.Query{Order: "code asc"})
}

func (r *repo) FindModuleTypeByID(ctx context.Context, db *gorm.DB, id string) (*domain.ModuleType, error) {
	var moduleType domain.ModuleType
	err := db.WithContext(ctx).First(&moduleType, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &moduleType, nil
}

func (r *repo) InsertModuleType(ctx context.Context, db *gorm.DB, moduleType *domain.ModuleType) error {
	return db.WithContext(ctx).Create(moduleType).Error
}

func (r *repo) UpdateModuleType(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.ModuleType{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (r *repo) DeleteModuleType(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.ModuleType{}, "id = ?", id).Error
}

func (r *repo) CountModuleUsage(ctx context.Context, db *gorm.DB, code string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("business_modules").
		Where("module_code = ?", code).
		Count(&count).Error
	return count, err
}

func (r *repo) ListPlans(ctx context.Context, db *gorm.DB) ([]domain.SubscriptionPlan, error) {
	return query.Find[domain.SubscriptionPlan](ctx, db, query.Query{Order: "code asc"})
}

func (r *repo) FindPlanByID(ctx context.Context, db *gorm.DB, id string) (*domain.SubscriptionPlan, error) {
	var plan domain.SubscriptionPlan
	err := db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repo) InsertPlan(ctx context.Context, db *gorm.DB, plan *domain.SubscriptionPlan) error {
	return db.WithContext(ctx).Create(plan).Error
}

func (r *repo) UpdatePlan(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.SubscriptionPlan{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (r *repo) DeletePlan(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.SubscriptionPlan{}, "id = ?", id).Error
}

func (r *repo) CountPlanUsage(ctx context.Context, db *gorm.DB, code string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("business_subscriptions").
		Where("plan_code = ?", code).
		Count(&count).Error
	return count, err
}
