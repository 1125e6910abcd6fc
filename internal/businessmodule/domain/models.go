package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BusinessModule struct {
	ID         string            `gorm:"primaryKey" json:"id"`
	BusinessID string            `gorm:"not null;index" json:"business_id"`
	ModuleCode string            `gorm:"not null" json:"module_code"`
	IsActive   bool              `json:"is_active"`
	Config     datatypes.JSONMap `gorm:"type:jsonb" json:"config"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (BusinessModule) TableName() string { return "business_modules" }

type ToggleRequest struct {
	BusinessID string
	ModuleCode string
	Enabled    bool
}

type SetConfigRequest struct {
	BusinessID string
	ModuleCode string
	// RawConfig is the operator-submitted document; it must parse as a JSON
	// object before any write happens.
	RawConfig string
}

type Service interface {
	ListForBusiness(ctx context.Context, businessID string) ([]BusinessModule, error)
	// Toggle enables or disables a module for a business. The first enable
	// creates the row with an empty config document.
	Toggle(ctx context.Context, req ToggleRequest) (BusinessModule, error)
	SetConfig(ctx context.Context, req SetConfigRequest) (BusinessModule, error)
}

type Repository interface {
	ListByBusiness(ctx context.Context, db *gorm.DB, businessID string) ([]BusinessModule, error)
	FindByBusinessAndCode(ctx context.Context, db *gorm.DB, businessID, moduleCode string) (*BusinessModule, error)
	Insert(ctx context.Context, db *gorm.DB, module *BusinessModule) error
	Update(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error
}

var (
	ErrInvalidModuleCode = errors.New("invalid_module_code")
	ErrInvalidConfig     = errors.New("invalid_config")
	ErrNotFound          = errors.New("not_found")
)
