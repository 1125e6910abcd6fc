package repository

import (
	"context"

	"github.com/syedfahimdev/omni-admin/internal/businessmodule/domain"
	"github.com/syedfahimdev/omni-admin/pkg/db/query"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListByBusiness(ctx context.Context, db *gorm.DB, businessID string) ([]domain.BusinessModule, error) {
	q := query.Query{Order: "module_code asc"}.Where(query.Eq("business_id", businessID))
	return query.Find[domain.BusinessModule](ctx, db, q)
}

func (r *repo) FindByBusinessAndCode(ctx context.Context, db *gorm.DB, businessID, moduleCode string) (*domain.BusinessModule, error) {
	var module domain.BusinessModule
	err := db.WithContext(ctx).
		First(&module, "business_id = ? AND module_code = ?", businessID, moduleCode).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, module *domain.BusinessModule) error {
	return db.WithContext(ctx).Create(module).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.BusinessModule{}).
		Where("id = ?", id).
		Updates(columns).Error
}
