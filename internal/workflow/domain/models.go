package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WorkflowRun rows are written by the workflow engine and are read-only
// here. Timestamps are carried as the raw ISO strings the engine stored so
// display formatting can pass unparseable values through unchanged.
type WorkflowRun struct {
	ID                  string                      `gorm:"primaryKey" json:"id"`
	WorkflowName        string                      `json:"workflow_name"`
	BusinessID          string                      `gorm:"index" json:"business_id"`
	PlanCode            string                      `json:"plan_code"`
	Status              string                      `json:"status"`
	TriggerType         string                      `json:"trigger_type"`
	Environment         string                      `json:"environment"`
	StartTime           string                      `json:"start_time"`
	DurationMs          *int64                      `json:"duration_ms"`
	ErrorSummary        string                      `json:"error_summary"`
	EntryPayloadSummary datatypes.JSONMap           `json:"entry_payload_summary"`
	AllowedModules      datatypes.JSONSlice[string] `json:"allowed_modules"`
}

func (WorkflowRun) TableName() string { return "workflow_runs" }

type WorkflowStepLog struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	RunID         string         `gorm:"index" json:"run_id"`
	BusinessID    string         `gorm:"index" json:"business_id"`
	StepOrder     int            `json:"step_order"`
	NodeName      string         `json:"node_name"`
	ModulePhase   string         `json:"module_phase"`
	IntentAction  string         `json:"intent_action"`
	ChannelType   string         `json:"channel_type"`
	Status        string         `json:"status"`
	StartedAt     string         `json:"started_at"`
	DurationMs    *int64         `json:"duration_ms"`
	ErrorMessage  string         `json:"error_message"`
	InputSummary  string         `json:"input_summary"`
	OutputSummary string         `json:"output_summary"`
	RawInputJSON  datatypes.JSON `json:"raw_input_json"`
	RawOutputJSON datatypes.JSON `json:"raw_output_json"`
}

func (WorkflowStepLog) TableName() string { return "workflow_step_logs" }

// RunStatuses and StepStatuses are the filterable status values.
var (
	RunStatuses  = []string{"Running", "Succeeded", "Failed", "Cancelled"}
	StepStatuses = []string{"Succeeded", "Failed", "Running", "Skipped"}
	ModulePhases = []string{"setup", "processing", "notification", "cleanup"}
)

// ListRunsRequest mirrors the runs screen filters. FromDate/ToDate are
// day-precision bounds; the upper bound is rolled forward one day so the
// whole closing day is included.
type ListRunsRequest struct {
	FromDate     *time.Time
	ToDate       *time.Time
	Statuses     []string
	WorkflowName string
	BusinessID   string
	PlanCode     string
}

type ListStepsRequest struct {
	RunID        string
	ModulePhases []string
	Statuses     []string
	ChannelType  string
	BusinessID   string
}

type Service interface {
	ListRuns(ctx context.Context, req ListRunsRequest) ([]WorkflowRun, error)
	GetRun(ctx context.Context, id string) (WorkflowRun, error)
	// StepsForRun returns the run's step logs in display order.
	StepsForRun(ctx context.Context, runID string) ([]WorkflowStepLog, error)
	ListSteps(ctx context.Context, req ListStepsRequest) ([]WorkflowStepLog, error)
	GetStep(ctx context.Context, id string) (WorkflowStepLog, error)
}

type Repository interface {
	ListRuns(ctx context.Context, db *gorm.DB, req ListRunsRequest) ([]WorkflowRun, error)
	FindRunByID(ctx context.Context, db *gorm.DB, id string) (*WorkflowRun, error)
	ListStepsByRun(ctx context.Context, db *gorm.DB, runID string) ([]WorkflowStepLog, error)
	ListSteps(ctx context.Context, db *gorm.DB, req ListStepsRequest) ([]WorkflowStepLog, error)
	FindStepByID(ctx context.Context, db *gorm.DB, id string) (*WorkflowStepLog, error)
}

var ErrNotFound = errors.New("not_found")
