package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	analyticsdomain "github.com/syedfahimdev/omni-admin/internal/analytics/domain"
	authservice "github.com/syedfahimdev/omni-admin/internal/auth/service"
	"github.com/syedfahimdev/omni-admin/internal/auth/session"
	businessdomain "github.com/syedfahimdev/omni-admin/internal/business/domain"
	catalogdomain "github.com/syedfahimdev/omni-admin/internal/catalog/domain"
	"github.com/syedfahimdev/omni-admin/internal/config"
	workflowdomain "github.com/syedfahimdev/omni-admin/internal/workflow/domain"
	"go.uber.org/zap"
)

type fakeCatalogService struct {
	moduleTypes []catalogdomain.ModuleType

	deleteErr       error
	deleteCalls     int
	invalidateCalls int
}

func (f *fakeCatalogService) GetModuleTypes(ctx context.Context) ([]catalogdomain.ModuleType, error) {
	return f.moduleTypes, nil
}

func (f *fakeCatalogService) CreateModuleType(ctx context.Context, req catalogdomain.CreateModuleTypeRequest) (catalogdomain.ModuleType, error) {
	return catalogdomain.ModuleType{}, nil
}

func (f *fakeCatalogService) UpdateModuleType(ctx context.Context, id string, req catalogdomain.UpdateModuleTypeRequest) (catalogdomain.ModuleType, error) {
	return catalogdomain.ModuleType{}, nil
}

func (f *fakeCatalogService) DeleteModuleType(ctx context.Context, id string) error {
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeCatalogService) GetSubscriptionPlans(ctx context.Context) ([]catalogdomain.SubscriptionPlan, error) {
	return nil, nil
}

func (f *fakeCatalogService) CreatePlan(ctx context.Context, req catalogdomain.CreatePlanRequest) (catalogdomain.SubscriptionPlan, error) {
	return catalogdomain.SubscriptionPlan{}, nil
}

func (f *fakeCatalogService) UpdatePlan(ctx context.Context, id string, req catalogdomain.UpdatePlanRequest) (catalogdomain.SubscriptionPlan, error) {
	return catalogdomain.SubscriptionPlan{}, nil
}

func (f *fakeCatalogService) DeletePlan(ctx context.Context, id string) error {
	return f.deleteErr
}

func (f *fakeCatalogService) InvalidateCache() {
	f.invalidateCalls++
}

type fakeWorkflowService struct {
	runs  []workflowdomain.WorkflowRun
	steps []workflowdomain.WorkflowStepLog

	listRunsCalls  int
	listStepsCalls int
	lastRunsReq    workflowdomain.ListRunsRequest
	lastStepsReq   workflowdomain.ListStepsRequest
}

func (f *fakeWorkflowService) ListRuns(ctx context.Context, req workflowdomain.ListRunsRequest) ([]workflowdomain.WorkflowRun, error) {
	f.listRunsCalls++
	f.lastRunsReq = req
	return f.runs, nil
}

func (f *fakeWorkflowService) GetRun(ctx context.Context, id string) (workflowdomain.WorkflowRun, error) {
	return workflowdomain.WorkflowRun{}, workflowdomain.ErrNotFound
}

func (f *fakeWorkflowService) StepsForRun(ctx context.Context, runID string) ([]workflowdomain.WorkflowStepLog, error) {
	return f.steps, nil
}

func (f *fakeWorkflowService) ListSteps(ctx context.Context, req workflowdomain.ListStepsRequest) ([]workflowdomain.WorkflowStepLog, error) {
	f.listStepsCalls++
	f.lastStepsReq = req
	return f.steps, nil
}

func (f *fakeWorkflowService) GetStep(ctx context.Context, id string) (workflowdomain.WorkflowStepLog, error) {
	return workflowdomain.WorkflowStepLog{}, workflowdomain.ErrNotFound
}

type fakeBusinessService struct {
	labels map[string]string
}

func (f *fakeBusinessService) List(ctx context.Context, req businessdomain.ListBusinessRequest) ([]businessdomain.Business, error) {
	return nil, nil
}

func (f *fakeBusinessService) GetByID(ctx context.Context, id string) (businessdomain.Business, error) {
	return businessdomain.Business{}, businessdomain.ErrNotFound
}

func (f *fakeBusinessService) Create(ctx context.Context, fields businessdomain.BusinessFields) (businessdomain.Business, error) {
	return businessdomain.Business{}, nil
}

func (f *fakeBusinessService) Update(ctx context.Context, id string, fields businessdomain.BusinessFields) (businessdomain.Business, error) {
	return businessdomain.Business{}, nil
}

func (f *fakeBusinessService) ListChannels(ctx context.Context, businessID string) ([]businessdomain.BusinessChannel, error) {
	return nil, nil
}

func (f *fakeBusinessService) AddChannel(ctx context.Context, req businessdomain.CreateChannelRequest) (businessdomain.BusinessChannel, error) {
	return businessdomain.BusinessChannel{}, nil
}

func (f *fakeBusinessService) Labels(ctx context.Context, ids []string) (map[string]string, error) {
	return f.labels, nil
}

type fakeAnalyticsService struct{}

func (f *fakeAnalyticsService) Overview(ctx context.Context) (analyticsdomain.Overview, error) {
	return analyticsdomain.Overview{}, nil
}

func (f *fakeAnalyticsService) SummarizeSteps(steps []workflowdomain.WorkflowStepLog) analyticsdomain.StepSummary {
	return analyticsdomain.StepSummary{TotalSteps: len(steps), SuccessRate: "N/A"}
}

func newTestServer(t *testing.T, catalogSvc catalogdomain.Service) *Server {
	return newTestServerWith(t, catalogSvc, &fakeWorkflowService{})
}

func newTestServerWith(t *testing.T, catalogSvc catalogdomain.Service, workflowSvc workflowdomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{AdminPassword: "s3cret"}
	authSvc := authservice.New(authservice.Params{
		Cfg:   cfg,
		Log:   zap.NewNop(),
		GenID: node,
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:          engine,
		Cfg:          cfg,
		Log:          zap.NewNop(),
		Sessions:     session.NewManager(cfg),
		AuthSvc:      authSvc,
		CatalogSvc:   catalogSvc,
		BusinessSvc:  &fakeBusinessService{labels: map[string]string{"b-1": "Al Noor Mart"}},
		WorkflowSvc:  workflowSvc,
		AnalyticsSvc: &fakeAnalyticsService{},
	})
}

func login(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.DefaultCookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestAdminRoutesRequireSession(t *testing.T) {
	srv := newTestServer(t, &fakeCatalogService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/module-types", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	srv := newTestServer(t, &fakeCatalogService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginGrantsAccessToAdminRoutes(t *testing.T) {
	srv := newTestServer(t, &fakeCatalogService{
		moduleTypes: []catalogdomain.ModuleType{{ID: "mt-1", Code: "grocery", DisplayName: "Grocery"}},
	})

	cookie := login(t, srv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/module-types", nil)
	req.AddCookie(cookie)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []catalogdomain.ModuleType `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "grocery", body.Data[0].Code)
}

func TestLogoutEndsSession(t *testing.T) {
	srv := newTestServer(t, &fakeCatalogService{})

	cookie := login(t, srv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(cookie)
	srv.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/v1/module-types", nil)
	req.AddCookie(cookie)
	srv.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteModuleTypeInUseReturnsConflictWithCount(t *testing.T) {
	catalogSvc := &fakeCatalogService{
		deleteErr: &catalogdomain.InUseError{Count: 3},
	}
	srv := newTestServer(t, catalogSvc)

	cookie := login(t, srv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/v1/module-types/mt-1", nil)
	req.AddCookie(cookie)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "in_use", body.Error.Type)
	require.NotNil(t, body.Error.Count)
	assert.Equal(t, int64(3), *body.Error.Count)
}

func TestListWorkflowRunsRejectsUnknownStatus(t *testing.T) {
	workflowSvc := &fakeWorkflowService{}
	srv := newTestServerWith(t, &fakeCatalogService{}, workflowSvc)

	cookie := login(t, srv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/workflow-runs?status=Bogus", nil)
	req.AddCookie(cookie)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, workflowSvc.listRunsCalls)
}

func TestListWorkflowRunsPassesKnownStatuses(t *testing.T) {
	workflowSvc := &fakeWorkflowService{}
	srv := newTestServerWith(t, &fakeCatalogService{}, workflowSvc)

	cookie := login(t, srv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/workflow-runs?status=Failed,Succeeded", nil)
	req.AddCookie(cookie)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, workflowSvc.listRunsCalls)
	assert.Equal(t, []string{"Failed", "Succeeded"}, workflowSvc.lastRunsReq.Statuses)
}

func TestListStepLogsRejectsUnknownFilterValues(t *testing.T) {
	workflowSvc := &fakeWorkflowService{}
	srv := newTestServerWith(t, &fakeCatalogService{}, workflowSvc)

	cookie := login(t, srv)

	for _, target := range []string{
		"/admin/v1/step-logs?module_phase=bogus",
		"/admin/v1/step-logs?status=bogus",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.AddCookie(cookie)
		srv.Engine().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	assert.Equal(t, 0, workflowSvc.listStepsCalls)
}

func TestWorkflowRunsCSVExport(t *testing.T) {
	workflowSvc := &fakeWorkflowService{runs: []workflowdomain.WorkflowRun{{
		ID:           "run-1",
		WorkflowName: "order-intake",
		BusinessID:   "b-1",
		PlanCode:     "pro",
		Status:       "Succeeded",
		StartTime:    "2024-03-05T09:30:00",
		DurationMs:   int64Ptr(1500),
	}}}
	srv := newTestServerWith(t, &fakeCatalogService{}, workflowSvc)

	cookie := login(t, srv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/workflow-runs?format=csv", nil)
	req.AddCookie(cookie)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "workflow_runs_")

	body := w.Body.String()
	assert.Contains(t, body, "ID,Workflow,Business,Plan,Status,Trigger,Env,Start Time,Duration")
	assert.Contains(t, body, "run-1,order-intake,Al Noor Mart,pro,Succeeded,,,2024-03-05 09:30,1.50s")
}

func TestClearCacheEndpoint(t *testing.T) {
	catalogSvc := &fakeCatalogService{}
	srv := newTestServer(t, catalogSvc)

	cookie := login(t, srv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/v1/cache/clear", nil)
	req.AddCookie(cookie)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, catalogSvc.invalidateCalls)
}
