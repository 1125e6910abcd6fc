package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListModuleTypes(ctx context.Context, db *gorm.DB) ([]ModuleType, error)
	FindModuleTypeByID(ctx context.Context, db *gorm.DB, id string) (*ModuleType, error)
	InsertModuleType(ctx context.Context, db *gorm.DB, moduleType *ModuleType) error
	UpdateModuleType(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error
	DeleteModuleType(ctx context.Context, db *gorm.DB, id string) error
	// CountModuleUsage counts business_modules rows referencing the code.
	CountModuleUsage(ctx context.Context, db *gorm.DB, code string) (int64, error)

	ListPlans(ctx context.Context, db *gorm.DB) ([]SubscriptionPlan, error)
	FindPlanByID(ctx context.Context, db *gorm.DB, id string) (*SubscriptionPlan, error)
	InsertPlan(ctx context.Context, db *gorm.DB, plan *SubscriptionPlan) error
	UpdatePlan(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error
	DeletePlan(ctx context.Context, db *gorm.DB, id string) error
	// CountPlanUsage counts business_subscriptions rows referencing the code.
	CountPlanUsage(ctx context.Context, db *gorm.DB, code string) (int64, error)
}
