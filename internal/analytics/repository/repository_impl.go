package repository

import (
	"context"

	"github.com/syedfahimdev/omni-admin/internal/analytics/domain"
	businessdomain "github.com/syedfahimdev/omni-admin/internal/business/domain"
	workflowdomain "github.com/syedfahimdev/omni-admin/internal/workflow/domain"
	"github.com/syedfahimdev/omni-admin/pkg/db/query"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CountBusinesses(ctx context.Context, db *gorm.DB) (int64, error) {
	return query.Count[businessdomain.Business](ctx, db, query.Query{})
}

func (r *repo) RunStatusesSince(ctx context.Context, db *gorm.DB, since string) ([]string, error) {
	return r.pluckRuns(ctx, db, "status", since)
}

func (r *repo) RunStartTimesSince(ctx context.Context, db *gorm.DB, since string) ([]string, error) {
	return r.pluckRuns(ctx, db, "start_time", since)
}

func (r *repo) pluckRuns(ctx context.Context, db *gorm.DB, column, since string) ([]string, error) {
	var values []string
	err := db.WithContext(ctx).
		Model(&workflowdomain.WorkflowRun{}).
		Where("start_time >= ?", since).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *repo) FailedWorkflowNamesSince(ctx context.Context, db *gorm.DB, since string) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).
		Model(&workflowdomain.WorkflowRun{}).
		Where("status = ?", "Failed").
		Where("start_time >= ?", since).
		Pluck("workflow_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *repo) StepStatuses(ctx context.Context, db *gorm.DB) ([]string, error) {
	var statuses []string
	err := db.WithContext(ctx).
		Model(&workflowdomain.WorkflowStepLog{}).
		Pluck("status", &statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *repo) LatestRuns(ctx context.Context, db *gorm.DB, limit int) ([]workflowdomain.WorkflowRun, error) {
	q := query.Query{Order: "start_time desc", Limit: limit}
	return query.Find[workflowdomain.WorkflowRun](ctx, db, q)
}
