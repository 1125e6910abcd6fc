package domain

import (
	"context"

	workflow "github.com/syedfahimdev/omni-admin/internal/workflow/domain"
	"gorm.io/gorm"
)

// DayCount is one point of a runs-per-day series. Day is the calendar-day
// prefix of the stored timestamp.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type PhaseDuration struct {
	Phase         string  `json:"phase"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// RecentRun is a dashboard row: a workflow run projected down to the listed
// columns with the business name resolved.
type RecentRun struct {
	ID           string `json:"id"`
	WorkflowName string `json:"workflow_name"`
	BusinessID   string `json:"business_id"`
	BusinessName string `json:"business_name"`
	PlanCode     string `json:"plan_code"`
	Status       string `json:"status"`
	StartTime    string `json:"start_time"`
	DurationMs   *int64 `json:"duration_ms"`
}

// Overview is everything the dashboard screen shows. The run figures cover
// the trailing seven days; the step status distribution covers all steps.
type Overview struct {
	TotalBusinesses        int64            `json:"total_businesses"`
	ActiveByPlan           map[string]int64 `json:"active_subscriptions_by_plan"`
	RunsLast7Days          int64            `json:"runs_last_7_days"`
	FailedRunsLast7Days    int64            `json:"failed_runs_last_7_days"`
	RunsPerDay             []DayCount       `json:"runs_per_day"`
	FailuresByWorkflow     []LabelCount     `json:"failures_by_workflow"`
	StepStatusDistribution []LabelCount     `json:"step_status_distribution"`
	LatestRuns             []RecentRun      `json:"latest_runs"`
}

// StepSummary aggregates one fetched page of step logs. SuccessRate is
// "succeeded/succeeded+failed" as a literal fraction, or "N/A" when neither
// outcome is present.
type StepSummary struct {
	TotalSteps         int             `json:"total_steps"`
	SuccessRate        string          `json:"success_rate"`
	AvgDurationByPhase []PhaseDuration `json:"avg_duration_by_phase"`
	StatusDistribution []LabelCount    `json:"status_distribution"`
}

type Service interface {
	Overview(ctx context.Context) (Overview, error)
	// SummarizeSteps aggregates in memory over an already-fetched window.
	SummarizeSteps(steps []workflow.WorkflowStepLog) StepSummary
}

type Repository interface {
	CountBusinesses(ctx context.Context, db *gorm.DB) (int64, error)
	// RunStatusesSince returns the status column of every run whose
	// start_time is at or after since.
	RunStatusesSince(ctx context.Context, db *gorm.DB, since string) ([]string, error)
	RunStartTimesSince(ctx context.Context, db *gorm.DB, since string) ([]string, error)
	FailedWorkflowNamesSince(ctx context.Context, db *gorm.DB, since string) ([]string, error)
	StepStatuses(ctx context.Context, db *gorm.DB) ([]string, error)
	LatestRuns(ctx context.Context, db *gorm.DB, limit int) ([]workflow.WorkflowRun, error)
}
