package service

import (
	"context"
	"strings"

	"github.com/syedfahimdev/omni-admin/internal/workflow/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("workflow.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListRuns(ctx context.Context, req domain.ListRunsRequest) ([]domain.WorkflowRun, error) {
	req.WorkflowName = strings.TrimSpace(req.WorkflowName)
	return s.repo.ListRuns(ctx, s.db, req)
}

func (s *Service) GetRun(ctx context.Context, id string) (domain.WorkflowRun, error) {
	run, err := s.repo.FindRunByID(ctx, s.db, id)
	if err != nil {
		return domain.WorkflowRun{}, err
	}
	if run == nil {
		return domain.WorkflowRun{}, domain.ErrNotFound
	}
	return *run, nil
}

func (s *Service) StepsForRun(ctx context.Context, runID string) ([]domain.WorkflowStepLog, error) {
	return s.repo.ListStepsByRun(ctx, s.db, runID)
}

func (s *Service) ListSteps(ctx context.Context, req domain.ListStepsRequest) ([]domain.WorkflowStepLog, error) {
	req.RunID = strings.TrimSpace(req.RunID)
	return s.repo.ListSteps(ctx, s.db, req)
}

func (s *Service) GetStep(ctx context.Context, id string) (domain.WorkflowStepLog, error) {
	step, err := s.repo.FindStepByID(ctx, s.db, id)
	if err != nil {
		return domain.WorkflowStepLog{}, err
	}
	if step == nil {
		return domain.WorkflowStepLog{}, domain.ErrNotFound
	}
	return *step, nil
}
