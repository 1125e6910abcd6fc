package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syedfahimdev/omni-admin/internal/cache"
	"github.com/syedfahimdev/omni-admin/internal/catalog/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeCatalogRepo struct {
	moduleTypes []domain.ModuleType
	plans       []domain.SubscriptionPlan

	moduleUsage int64
	planUsage   int64

	listModuleTypeCalls int
	listPlanCalls       int
	deleteModuleCalls   int
	deletePlanCalls     int
	insertModuleCalls   int
}

func (f *fakeCatalogRepo) ListModuleTypes(ctx context.Context, db *gorm.DB) ([]domain.ModuleType, error) {
	f.listModuleTypeCalls++
	return f.moduleTypes, nil
}

func (f *fakeCatalogRepo) FindModuleTypeByID(ctx context.Context, db *gorm.DB, id string) (*domain.ModuleType, error) {
	for i := range f.moduleTypes {
		if f.moduleTypes[i].ID == id {
			return &f.moduleTypes[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) InsertModuleType(ctx context.Context, db *gorm.DB, moduleType *domain.ModuleType) error {
	f.insertModuleCalls++
	f.moduleTypes = append(f.moduleTypes, *moduleType)
	return nil
}

func (f *fakeCatalogRepo) UpdateModuleType(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	return nil
}

func (f *fakeCatalogRepo) DeleteModuleType(ctx context.Context, db *gorm.DB, id string) error {
	f.deleteModuleCalls++
	return nil
}

func (f *fakeCatalogRepo) CountModuleUsage(ctx context.Context, db *gorm.DB, code string) (int64, error) {
	return f.moduleUsage, nil
}

func (f *fakeCatalogRepo) ListPlans(ctx context.Context, db *gorm.DB) ([]domain.SubscriptionPlan, error) {
	f.listPlanCalls++
	return f.plans, nil
}

func (f *fakeCatalogRepo) FindPlanByID(ctx context.Context, db *gorm.DB, id string) (*domain.SubscriptionPlan, error) {
	for i := range f.plans {
		if f.plans[i].ID == id {
			return &f.plans[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) InsertPlan(ctx context.Context, db *gorm.DB, plan *domain.SubscriptionPlan) error {
	f.plans = append(f.plans, *plan)
	return nil
}

func (f *fakeCatalogRepo) UpdatePlan(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	return nil
}

func (f *fakeCatalogRepo) DeletePlan(ctx context.Context, db *gorm.DB, id string) error {
	f.deletePlanCalls++
	return nil
}

func (f *fakeCatalogRepo) CountPlanUsage(ctx context.Context, db *gorm.DB, code string) (int64, error) {
	return f.planUsage, nil
}

func newCatalogService(repo *fakeCatalogRepo) domain.Service {
	return New(Params{
		Log:   zap.NewNop(),
		Repo:  repo,
		Cache: cache.NewTTLCache[string, any](),
	})
}

func TestGetModuleTypesFetchesOnceWithinTTL(t *testing.T) {
	repo := &fakeCatalogRepo{
		moduleTypes: []domain.ModuleType{{ID: "mt-1", Code: "grocery", DisplayName: "Grocery"}},
	}
	svc := newCatalogService(repo)

	for i := 0; i < 3; i++ {
		types, err := svc.GetModuleTypes(context.Background())
		require.NoError(t, err)
		require.Len(t, types, 1)
	}
	assert.Equal(t, 1, repo.listModuleTypeCalls)
}

func TestMutationInvalidatesCache(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := newCatalogService(repo)

	_, err := svc.GetModuleTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listModuleTypeCalls)

	_, err = svc.CreateModuleType(context.Background(), domain.CreateModuleTypeRequest{
		Code:        "reminders",
		DisplayName: "Reminders",
	})
	require.NoError(t, err)

	_, err = svc.GetModuleTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listModuleTypeCalls)
}

func TestInvalidateCacheForcesRefetch(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := newCatalogService(repo)

	_, err := svc.GetSubscriptionPlans(context.Background())
	require.NoError(t, err)
	_, err = svc.GetSubscriptionPlans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listPlanCalls)

	svc.InvalidateCache()

	_, err = svc.GetSubscriptionPlans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listPlanCalls)
}

func TestDeleteModuleTypeRefusedWhileInUse(t *testing.T) {
	repo := &fakeCatalogRepo{
		moduleTypes: []domain.ModuleType{{ID: "mt-1", Code: "grocery", DisplayName: "Grocery"}},
		moduleUsage: 3,
	}
	svc := newCatalogService(repo)

	err := svc.DeleteModuleType(context.Background(), "mt-1")

	var inUse *domain.InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, int64(3), inUse.Count)
	assert.Equal(t, 0, repo.deleteModuleCalls)
}

func TestDeleteModuleTypeSucceedsWhenUnused(t *testing.T) {
	repo := &fakeCatalogRepo{
		moduleTypes: []domain.ModuleType{{ID: "mt-1", Code: "grocery", DisplayName: "Grocery"}},
	}
	svc := newCatalogService(repo)

	require.NoError(t, svc.DeleteModuleType(context.Background(), "mt-1"))
	assert.Equal(t, 1, repo.deleteModuleCalls)
}

func TestDeletePlanRefusedWhileInUse(t *testing.T) {
	repo := &fakeCatalogRepo{
		plans:     []domain.SubscriptionPlan{{ID: "plan-1", Code: "basic", Name: "Basic"}},
		planUsage: 12,
	}
	svc := newCatalogService(repo)

	err := svc.DeletePlan(context.Background(), "plan-1")

	var inUse *domain.InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, int64(12), inUse.Count)
	assert.Equal(t, 0, repo.deletePlanCalls)
}

func TestCreateModuleTypeRequiredFields(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := newCatalogService(repo)

	_, err := svc.CreateModuleType(context.Background(), domain.CreateModuleTypeRequest{DisplayName: "Grocery"})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	_, err = svc.CreateModuleType(context.Background(), domain.CreateModuleTypeRequest{Code: "grocery"})
	assert.ErrorIs(t, err, domain.ErrInvalidDisplayName)

	assert.Equal(t, 0, repo.insertModuleCalls)
}
