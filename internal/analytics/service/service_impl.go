package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/syedfahimdev/omni-admin/internal/analytics/domain"
	businessdomain "github.com/syedfahimdev/omni-admin/internal/business/domain"
	subscriptiondomain "github.com/syedfahimdev/omni-admin/internal/subscription/domain"
	workflowdomain "github.com/syedfahimdev/omni-admin/internal/workflow/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	overviewWindowDays = 7
	latestRunLimit     = 20

	isoLayout = "2006-01-02T15:04:05"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Repo          domain.Repository
	Businesses    businessdomain.Service
	Subscriptions subscriptiondomain.Service
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	repo          domain.Repository
	businesses    businessdomain.Service
	subscriptions subscriptiondomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("analytics.service"),
		repo:          p.Repo,
		businesses:    p.Businesses,
		subscriptions: p.Subscriptions,
	}
}

// Overview is best effort: a failed sub-aggregate logs a warning and leaves
// its section empty instead of failing the whole screen.
func (s *Service) Overview(ctx context.Context) (domain.Overview, error) {
	// Stored run timestamps are ISO strings, so the window bound compares
	// lexicographically.
	since := time.Now().AddDate(0, 0, -overviewWindowDays).Format(isoLayout)

	var out domain.Overview

	total, err := s.repo.CountBusinesses(ctx, s.db)
	if err != nil {
		s.log.Warn("count businesses", zap.Error(err))
	} else {
		out.TotalBusinesses = total
	}

	out.ActiveByPlan = map[string]int64{}
	activeByPlan, err := s.subscriptions.CountActiveByPlan(ctx)
	if err != nil {
		s.log.Warn("active subscriptions by plan", zap.Error(err))
	} else {
		out.ActiveByPlan = activeByPlan
	}

	statuses, err := s.repo.RunStatusesSince(ctx, s.db, since)
	if err != nil {
		s.log.Warn("recent run statuses", zap.Error(err))
	} else {
		out.RunsLast7Days = int64(len(statuses))
		for _, st := range statuses {
			if st == "Failed" {
				out.FailedRunsLast7Days++
			}
		}
	}

	startTimes, err := s.repo.RunStartTimesSince(ctx, s.db, since)
	if err != nil {
		s.log.Warn("recent run start times", zap.Error(err))
	} else {
		out.RunsPerDay = runsPerDay(startTimes)
	}

	failedNames, err := s.repo.FailedWorkflowNamesSince(ctx, s.db, since)
	if err != nil {
		s.log.Warn("failed workflow names", zap.Error(err))
	} else {
		out.FailuresByWorkflow = countsDesc(failedNames)
	}

	stepStatuses, err := s.repo.StepStatuses(ctx, s.db)
	if err != nil {
		s.log.Warn("step statuses", zap.Error(err))
	} else {
		out.StepStatusDistribution = countsDesc(stepStatuses)
	}

	latest, err := s.latestRuns(ctx)
	if err != nil {
		s.log.Warn("latest runs", zap.Error(err))
	} else {
		out.LatestRuns = latest
	}

	return out, nil
}

func (s *Service) latestRuns(ctx context.Context) ([]domain.RecentRun, error) {
	runs, err := s.repo.LatestRuns(ctx, s.db, latestRunLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(runs))
	seen := map[string]bool{}
	for _, run := range runs {
		if run.BusinessID == "" || seen[run.BusinessID] {
			continue
		}
		seen[run.BusinessID] = true
		ids = append(ids, run.BusinessID)
	}
	labels, err := s.businesses.Labels(ctx, ids)
	if err != nil {
		s.log.Warn("resolve business names", zap.Error(err))
		labels = map[string]string{}
	}
	out := make([]domain.RecentRun, 0, len(runs))
	for _, run := range runs {
		out = append(out, domain.RecentRun{
			ID:           run.ID,
			WorkflowName: run.WorkflowName,
			BusinessID:   run.BusinessID,
			BusinessName: labels[run.BusinessID],
			PlanCode:     run.PlanCode,
			Status:       run.Status,
			StartTime:    run.StartTime,
			DurationMs:   run.DurationMs,
		})
	}
	return out, nil
}

func (s *Service) SummarizeSteps(steps []workflowdomain.WorkflowStepLog) domain.StepSummary {
	statuses := make([]string, 0, len(steps))
	for _, step := range steps {
		statuses = append(statuses, step.Status)
	}
	dist := countsDesc(statuses)

	var succeeded, failed int64
	for _, lc := range dist {
		switch lc.Label {
		case "Succeeded":
			succeeded = lc.Count
		case "Failed":
			failed = lc.Count
		}
	}
	rate := "N/A"
	if succeeded+failed > 0 {
		rate = fmt.Sprintf("%d/%d", succeeded, succeeded+failed)
	}

	return domain.StepSummary{
		TotalSteps:         len(steps),
		SuccessRate:        rate,
		AvgDurationByPhase: avgDurationByPhase(steps),
		StatusDistribution: dist,
	}
}

// runsPerDay buckets raw ISO timestamps by their calendar-day prefix. Days
// with no runs are absent, not zero-filled.
func runsPerDay(startTimes []string) []domain.DayCount {
	counts := map[string]int64{}
	for _, ts := range startTimes {
		day := ts
		if len(day) > len("2006-01-02") {
			day = day[:len("2006-01-02")]
		}
		counts[day]++
	}
	out := make([]domain.DayCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, domain.DayCount{Day: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// countsDesc counts occurrences per label, most frequent first. Ties break
// alphabetically so output order is stable.
func countsDesc(labels []string) []domain.LabelCount {
	counts := map[string]int64{}
	for _, label := range labels {
		counts[label]++
	}
	out := make([]domain.LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, domain.LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// avgDurationByPhase averages duration_ms per module phase, skipping steps
// with no recorded duration.
func avgDurationByPhase(steps []workflowdomain.WorkflowStepLog) []domain.PhaseDuration {
	sums := map[string]int64{}
	counts := map[string]int64{}
	for _, step := range steps {
		if step.DurationMs == nil {
			continue
		}
		sums[step.ModulePhase] += *step.DurationMs
		counts[step.ModulePhase]++
	}
	out := make([]domain.PhaseDuration, 0, len(sums))
	for phase, sum := range sums {
		out = append(out, domain.PhaseDuration{
			Phase:         phase,
			AvgDurationMs: float64(sum) / float64(counts[phase]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phase < out[j].Phase })
	return out
}
