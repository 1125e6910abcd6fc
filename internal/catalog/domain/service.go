package domain

import (
	"context"
	"errors"
)

type CreateModuleTypeRequest struct {
	Code        string
	DisplayName string
	Description string
}

type UpdateModuleTypeRequest struct {
	DisplayName string
	Description string
}

type CreatePlanRequest struct {
	Code           string
	Name           string
	Description    string
	AllowedModules []string
}

type UpdatePlanRequest struct {
	Name           string
	Description    string
	AllowedModules []string
}

// InUseError reports a delete blocked by dependent rows. It is an expected
// outcome, carried with the blocking count for the operator.
type InUseError struct {
	Count int64
}

func (e *InUseError) Error() string { return "in_use" }

// Service manages the two reference lookup tables. Reads go through a
// five-minute cache; every mutation invalidates it.
type Service interface {
	GetModuleTypes(ctx context.Context) ([]ModuleType, error)
	CreateModuleType(ctx context.Context, req CreateModuleTypeRequest) (ModuleType, error)
	UpdateModuleType(ctx context.Context, id string, req UpdateModuleTypeRequest) (ModuleType, error)
	DeleteModuleType(ctx context.Context, id string) error

	GetSubscriptionPlans(ctx context.Context) ([]SubscriptionPlan, error)
	CreatePlan(ctx context.Context, req CreatePlanRequest) (SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, id string, req UpdatePlanRequest) (SubscriptionPlan, error)
	DeletePlan(ctx context.Context, id string) error

	InvalidateCache()
}

var (
	ErrInvalidCode        = errors.New("invalid_code")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidDisplayName = errors.New("invalid_display_name")
	ErrNotFound           = errors.New("not_found")
	ErrCodeTaken          = errors.New("code_taken")
)
