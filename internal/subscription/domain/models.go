package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type BusinessSubscription struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	BusinessID string    `gorm:"not null;index" json:"business_id"`
	PlanCode   string    `gorm:"not null" json:"plan_code"`
	Status     string    `gorm:"not null" json:"status"`
	ValidFrom  time.Time `gorm:"not null" json:"valid_from"`
	ValidTo    time.Time `json:"valid_to"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (BusinessSubscription) TableName() string { return "business_subscriptions" }

// Statuses a subscription may hold.
var Statuses = []string{"active", "trial", "past_due", "cancelled"}

type SaveSubscriptionRequest struct {
	BusinessID string
	PlanCode   string
	Status     string
	ValidFrom  time.Time
	ValidTo    time.Time
}

type Service interface {
	// Current returns the subscription with the latest valid_from for the
	// business, or nil when none exists.
	Current(ctx context.Context, businessID string) (*BusinessSubscription, error)
	// Save updates the current subscription row when one exists, otherwise
	// inserts a new one.
	Save(ctx context.Context, req SaveSubscriptionRequest) (BusinessSubscription, error)
	// CountActiveByPlan returns active subscription counts keyed by plan code.
	CountActiveByPlan(ctx context.Context) (map[string]int64, error)
}

type Repository interface {
	FindCurrent(ctx context.Context, db *gorm.DB, businessID string) (*BusinessSubscription, error)
	Insert(ctx context.Context, db *gorm.DB, subscription *BusinessSubscription) error
	Update(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error
	CountActiveByPlan(ctx context.Context, db *gorm.DB) (map[string]int64, error)
}

var (
	ErrInvalidPlanCode = errors.New("invalid_plan_code")
	ErrInvalidStatus   = errors.New("invalid_status")
)
