package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syedfahimdev/omni-admin/internal/workflow/domain"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&domain.WorkflowRun{}, &domain.WorkflowStepLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRuns(t *testing.T, db *gorm.DB, runs []domain.WorkflowRun) {
	t.Helper()
	require.NoError(t, db.Create(&runs).Error)
}

func day(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestListRunsDateRangeIncludesClosingDay(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	seedRuns(t, db, []domain.WorkflowRun{
		{ID: "run-1", WorkflowName: "order-intake", Status: "Succeeded", StartTime: "2024-03-01T08:00:00"},
		{ID: "run-2", WorkflowName: "order-intake", Status: "Succeeded", StartTime: "2024-03-03T23:59:59"},
		{ID: "run-3", WorkflowName: "order-intake", Status: "Succeeded", StartTime: "2024-03-04T00:00:01"},
	})

	runs, err := repo.ListRuns(context.Background(), db, domain.ListRunsRequest{
		FromDate: day("2024-03-02"),
		ToDate:   day("2024-03-03"),
	})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-2", runs[0].ID)
}

func TestListRunsStatusAndNameFilters(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	seedRuns(t, db, []domain.WorkflowRun{
		{ID: "run-1", WorkflowName: "Order Intake", Status: "Failed", StartTime: "2024-03-01T08:00:00"},
		{ID: "run-2", WorkflowName: "order-reminder", Status: "Succeeded", StartTime: "2024-03-01T09:00:00"},
		{ID: "run-3", WorkflowName: "stock-sync", Status: "Failed", StartTime: "2024-03-01T10:00:00"},
	})

	runs, err := repo.ListRuns(context.Background(), db, domain.ListRunsRequest{
		Statuses:     []string{"Failed", "Succeeded"},
		WorkflowName: "ORDER",
	})
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// start_time desc
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)
}

func TestListRunsBusinessAndPlanFilters(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	seedRuns(t, db, []domain.WorkflowRun{
		{ID: "run-1", BusinessID: "b-1", PlanCode: "basic", Status: "Succeeded", StartTime: "2024-03-01T08:00:00"},
		{ID: "run-2", BusinessID: "b-1", PlanCode: "pro", Status: "Succeeded", StartTime: "2024-03-01T09:00:00"},
		{ID: "run-3", BusinessID: "b-2", PlanCode: "pro", Status: "Succeeded", StartTime: "2024-03-01T10:00:00"},
	})

	runs, err := repo.ListRuns(context.Background(), db, domain.ListRunsRequest{
		BusinessID: "b-1",
		PlanCode:   "pro",
	})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-2", runs[0].ID)
}

func TestListRunsCapsResultSize(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	runs := make([]domain.WorkflowRun, 0, runListLimit+10)
	for i := 0; i < runListLimit+10; i++ {
		runs = append(runs, domain.WorkflowRun{
			ID:        fmt.Sprintf("run-%03d", i),
			Status:    "Succeeded",
			StartTime: fmt.Sprintf("2024-03-01T08:00:%02dZ", i%60),
		})
	}
	seedRuns(t, db, runs)

	listed, err := repo.ListRuns(context.Background(), db, domain.ListRunsRequest{})
	require.NoError(t, err)
	assert.Len(t, listed, runListLimit)
}

func TestFindRunByIDMissingReturnsNil(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	run, err := repo.FindRunByID(context.Background(), db, "nope")
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestListStepsByRunOrdersBySteps(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	steps := []domain.WorkflowStepLog{
		{ID: "step-3", RunID: "run-1", StepOrder: 3, NodeName: "send"},
		{ID: "step-1", RunID: "run-1", StepOrder: 1, NodeName: "parse"},
		{ID: "step-2", RunID: "run-1", StepOrder: 2, NodeName: "route"},
		{ID: "step-9", RunID: "run-2", StepOrder: 1, NodeName: "parse"},
	}
	require.NoError(t, db.Create(&steps).Error)

	listed, err := repo.ListStepsByRun(context.Background(), db, "run-1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{"step-1", "step-2", "step-3"}, []string{listed[0].ID, listed[1].ID, listed[2].ID})
}

func TestListStepsFilters(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	steps := []domain.WorkflowStepLog{
		{ID: "step-1", RunID: "run-1", BusinessID: "b-1", ModulePhase: "setup", Status: "Succeeded", ChannelType: "whatsapp", StartedAt: "2024-03-01T08:00:00"},
		{ID: "step-2", RunID: "run-1", BusinessID: "b-1", ModulePhase: "processing", Status: "Failed", ChannelType: "whatsapp", StartedAt: "2024-03-01T08:01:00"},
		{ID: "step-3", RunID: "run-2", BusinessID: "b-2", ModulePhase: "processing", Status: "Failed", ChannelType: "sms", StartedAt: "2024-03-01T08:02:00"},
	}
	require.NoError(t, db.Create(&steps).Error)

	listed, err := repo.ListSteps(context.Background(), db, domain.ListStepsRequest{
		ModulePhases: []string{"processing", "cleanup"},
		Statuses:     []string{"Failed"},
		ChannelType:  "whatsapp",
	})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "step-2", listed[0].ID)
}
