package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syedfahimdev/omni-admin/internal/subscription/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeSubscriptionRepo struct {
	current      *domain.BusinessSubscription
	activeCounts map[string]int64

	insertCalls int
	updateCalls int
	lastColumns map[string]any
}

func (f *fakeSubscriptionRepo) FindCurrent(ctx context.Context, db *gorm.DB, businessID string) (*domain.BusinessSubscription, error) {
	return f.current, nil
}

func (f *fakeSubscriptionRepo) Insert(ctx context.Context, db *gorm.DB, subscription *domain.BusinessSubscription) error {
	f.insertCalls++
	f.current = subscription
	return nil
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	f.updateCalls++
	f.lastColumns = columns
	return nil
}

func (f *fakeSubscriptionRepo) CountActiveByPlan(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	return f.activeCounts, nil
}

func newSubscriptionService(repo *fakeSubscriptionRepo) domain.Service {
	return New(Params{Log: zap.NewNop(), Repo: repo})
}

func TestSaveRejectsEmptyPlanCode(t *testing.T) {
	repo := &fakeSubscriptionRepo{}
	svc := newSubscriptionService(repo)

	_, err := svc.Save(context.Background(), domain.SaveSubscriptionRequest{
		BusinessID: "b-1",
		PlanCode:   "  ",
		Status:     "active",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPlanCode)
	assert.Equal(t, 0, repo.insertCalls)
}

func TestSaveRejectsUnknownStatus(t *testing.T) {
	repo := &fakeSubscriptionRepo{}
	svc := newSubscriptionService(repo)

	_, err := svc.Save(context.Background(), domain.SaveSubscriptionRequest{
		BusinessID: "b-1",
		PlanCode:   "basic",
		Status:     "paused",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Equal(t, 0, repo.insertCalls)
}

func TestSaveInsertsWhenNoCurrentSubscription(t *testing.T) {
	repo := &fakeSubscriptionRepo{}
	svc := newSubscriptionService(repo)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	saved, err := svc.Save(context.Background(), domain.SaveSubscriptionRequest{
		BusinessID: "b-1",
		PlanCode:   "basic",
		Status:     "trial",
		ValidFrom:  from,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "basic", saved.PlanCode)
	assert.Equal(t, "trial", saved.Status)
	assert.Equal(t, from, saved.ValidFrom)
	assert.Equal(t, 1, repo.insertCalls)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestSaveUpdatesCurrentSubscription(t *testing.T) {
	repo := &fakeSubscriptionRepo{current: &domain.BusinessSubscription{
		ID:         "sub-1",
		BusinessID: "b-1",
		PlanCode:   "basic",
		Status:     "trial",
	}}
	svc := newSubscriptionService(repo)

	_, err := svc.Save(context.Background(), domain.SaveSubscriptionRequest{
		BusinessID: "b-1",
		PlanCode:   "pro",
		Status:     "active",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, repo.insertCalls)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, "pro", repo.lastColumns["plan_code"])
	assert.Equal(t, "active", repo.lastColumns["status"])
}

func TestCountActiveByPlan(t *testing.T) {
	repo := &fakeSubscriptionRepo{activeCounts: map[string]int64{"basic": 2, "pro": 1}}
	svc := newSubscriptionService(repo)

	counts, err := svc.CountActiveByPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"basic": 2, "pro": 1}, counts)
}

func TestCurrentPassesThroughNil(t *testing.T) {
	svc := newSubscriptionService(&fakeSubscriptionRepo{})

	current, err := svc.Current(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Nil(t, current)
}
