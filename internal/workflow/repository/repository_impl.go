package repository

import (
	"context"

	"github.com/syedfahimdev/omni-admin/internal/workflow/domain"
	"github.com/syedfahimdev/omni-admin/pkg/db/query"
	"gorm.io/gorm"
)

const (
	runListLimit  = 100
	stepListLimit = 200

	dateOnlyLayout = "2006-01-02"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListRuns(ctx context.Context, db *gorm.DB, req domain.ListRunsRequest) ([]domain.WorkflowRun, error) {
	q := query.Query{Order: "start_time desc", Limit: runListLimit}
	if req.FromDate != nil {
		q = q.Where(query.Gte("start_time", req.FromDate.Format(dateOnlyLayout)))
	}
	if req.ToDate != nil {
		// Roll the upper bound forward one day so the whole closing day
		// is included.
		q = q.Where(query.Lte("start_time", req.ToDate.AddDate(0, 0, 1).Format(dateOnlyLayout)))
	}
	if len(req.Statuses) > 0 {
		q = q.Where(query.In("status", req.Statuses))
	}
	if req.WorkflowName != "" {
		q = q.Where(query.ILike("workflow_name", req.WorkflowName))
	}
	if req.BusinessID != "" {
		q = q.Where(query.Eq("business_id", req.BusinessID))
	}
	if req.PlanCode != "" {
		q = q.Where(query.Eq("plan_code", req.PlanCode))
	}
	return query.Find[domain.WorkflowRun](ctx, db, q)
}

func (r *repo) FindRunByID(ctx context.Context, db *gorm.DB, id string) (*domain.WorkflowRun, error) {
	var run domain.WorkflowRun
	err := db.WithContext(ctx).First(&run, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repo) ListStepsByRun(ctx context.Context, db *gorm.DB, runID string) ([]domain.WorkflowStepLog, error) {
	q := query.Query{Order: "step_order asc"}.Where(query.Eq("run_id", runID))
	return query.Find[domain.WorkflowStepLog](ctx, db, q)
}

func (r *repo) ListSteps(ctx context.Context, db *gorm.DB, req domain.ListStepsRequest) ([]domain.WorkflowStepLog, error) {
	q := query.Query{Order: "started_at desc", Limit: stepListLimit}
	if req.RunID != "" {
		q = q.Where(query.Eq("run_id", req.RunID))
	}
	if len(req.ModulePhases) > 0 {
		q = q.Where(query.In("module_phase", req.ModulePhases))
	}
	if len(req.Statuses) > 0 {
		q = q.Where(query.In("status", req.Statuses))
	}
	if req.ChannelType != "" {
		q = q.Where(query.Eq("channel_type", req.ChannelType))
	}
	if req.BusinessID != "" {
		q = q.Where(query.Eq("business_id", req.BusinessID))
	}
	return query.Find[domain.WorkflowStepLog](ctx, db, q)
}

func (r *repo) FindStepByID(ctx context.Context, db *gorm.DB, id string) (*domain.WorkflowStepLog, error) {
	var step domain.WorkflowStepLog
	err := db.WithContext(ctx).First(&step, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &step, nil
}
