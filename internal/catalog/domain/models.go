package domain

import (
	"time"

	"gorm.io/datatypes"
)

type ModuleType struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ModuleType) TableName() string { return "module_types" }

type SubscriptionPlan struct {
	ID             string                       `gorm:"primaryKey" json:"id"`
	Code           string                       `gorm:"uniqueIndex;not null" json:"code"`
	Name           string                       `gorm:"not null" json:"name"`
	Description    string                       `json:"description"`
	AllowedModules datatypes.JSONSlice[string]  `json:"allowed_modules"`
	CreatedAt      time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (SubscriptionPlan) TableName() string { return "subscription_plans" }
