package repository

import (
	"context"

	"github.com/syedfahimdev/omni-admin/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindCurrent(ctx context.Context, db *gorm.DB, businessID string) (*domain.BusinessSubscription, error) {
	var subscriptions []domain.BusinessSubscription
	err := db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("valid_from desc").
		Limit(1).
		Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}
	if len(subscriptions) == 0 {
		return nil, nil
	}
	return &subscriptions[0], nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, subscription *domain.BusinessSubscription) error {
	return db.WithContext(ctx).Create(subscription).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.BusinessSubscription{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (r *repo) CountActiveByPlan(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		PlanCode string
		Count    int64
	}
	err := db.WithContext(ctx).
		Model(&domain.BusinessSubscription{}).
		Select("plan_code, COUNT(*) as count").
		Where("status = ?", "active").
		Group("plan_code").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.PlanCode] = row.Count
	}
	return counts, nil
}
