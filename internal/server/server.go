package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/syedfahimdev/omni-admin/internal/analytics"
	analyticsdomain "github.com/syedfahimdev/omni-admin/internal/analytics/domain"
	"github.com/syedfahimdev/omni-admin/internal/auth"
	authdomain "github.com/syedfahimdev/omni-admin/internal/auth/domain"
	"github.com/syedfahimdev/omni-admin/internal/auth/session"
	"github.com/syedfahimdev/omni-admin/internal/business"
	businessdomain "github.com/syedfahimdev/omni-admin/internal/business/domain"
	"github.com/syedfahimdev/omni-admin/internal/businessmodule"
	businessmoduledomain "github.com/syedfahimdev/omni-admin/internal/businessmodule/domain"
	"github.com/syedfahimdev/omni-admin/internal/catalog"
	catalogdomain "github.com/syedfahimdev/omni-admin/internal/catalog/domain"
	"github.com/syedfahimdev/omni-admin/internal/config"
	"github.com/syedfahimdev/omni-admin/internal/grocery"
	grocerydomain "github.com/syedfahimdev/omni-admin/internal/grocery/domain"
	obslogger "github.com/syedfahimdev/omni-admin/internal/observability/logger"
	obsmetrics "github.com/syedfahimdev/omni-admin/internal/observability/metrics"
	"github.com/syedfahimdev/omni-admin/internal/subscription"
	subscriptiondomain "github.com/syedfahimdev/omni-admin/internal/subscription/domain"
	"github.com/syedfahimdev/omni-admin/internal/workflow"
	workflowdomain "github.com/syedfahimdev/omni-admin/internal/workflow/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	business.Module,
	catalog.Module,
	subscription.Module,
	businessmodule.Module,
	workflow.Module,
	analytics.Module,
	grocery.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	sessions        *session.Manager
	authSvc         authdomain.Service
	businessSvc     businessdomain.Service
	catalogSvc      catalogdomain.Service
	subscriptionSvc subscriptiondomain.Service
	moduleSvc       businessmoduledomain.Service
	workflowSvc     workflowdomain.Service
	analyticsSvc    analyticsdomain.Service
	grocerySvc      grocerydomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	Sessions        *session.Manager
	AuthSvc         authdomain.Service
	BusinessSvc     businessdomain.Service
	CatalogSvc      catalogdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	ModuleSvc       businessmoduledomain.Service
	WorkflowSvc     workflowdomain.Service
	AnalyticsSvc    analyticsdomain.Service
	GrocerySvc      grocerydomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("server"),
		sessions:        p.Sessions,
		authSvc:         p.AuthSvc,
		businessSvc:     p.BusinessSvc,
		catalogSvc:      p.CatalogSvc,
		subscriptionSvc: p.SubscriptionSvc,
		moduleSvc:       p.ModuleSvc,
		workflowSvc:     p.WorkflowSvc,
		analyticsSvc:    p.AnalyticsSvc,
		grocerySvc:      p.GrocerySvc,
	}

	s.registerAuthRoutes()
	s.registerAdminRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/session", s.GetSession)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin/v1")
	admin.Use(s.RequireSession())

	admin.GET("/dashboard", s.GetDashboard)
	admin.POST("/cache/clear", s.ClearCache)

	// -------- Businesses --------
	admin.GET("/businesses", s.ListBusinesses)
	admin.POST("/businesses", s.CreateBusiness)
	admin.GET("/businesses/:id", s.GetBusinessByID)
	admin.PATCH("/businesses/:id", s.UpdateBusiness)

	admin.GET("/businesses/:id/channels", s.ListBusinessChannels)
	admin.POST("/businesses/:id/channels", s.AddBusinessChannel)

	admin.GET("/businesses/:id/subscription", s.GetBusinessSubscription)
	admin.PUT("/businesses/:id/subscription", s.SaveBusinessSubscription)

	admin.GET("/businesses/:id/modules", s.ListBusinessModules)
	admin.POST("/businesses/:id/modules/:code/toggle", s.ToggleBusinessModule)
	admin.PUT("/businesses/:id/modules/:code/config", s.SetBusinessModuleConfig)

	// -------- Catalog --------
	admin.GET("/module-types", s.ListModuleTypes)
	admin.POST("/module-types", s.CreateModuleType)
	admin.PATCH("/module-types/:id", s.UpdateModuleType)
	admin.DELETE("/module-types/:id", s.DeleteModuleType)

	admin.GET("/plans", s.ListPlans)
	admin.POST("/plans", s.CreatePlan)
	admin.PATCH("/plans/:id", s.UpdatePlan)
	admin.DELETE("/plans/:id", s.DeletePlan)

	// -------- Telemetry --------
	admin.GET("/workflow-runs", s.ListWorkflowRuns)
	admin.GET("/workflow-runs/:id", s.GetWorkflowRunByID)
	admin.GET("/step-logs", s.ListStepLogs)
	admin.GET("/step-logs/:id", s.GetStepLogByID)

	// -------- Grocery vertical --------
	admin.GET("/businesses/:id/products", s.ListProducts)
	admin.POST("/businesses/:id/products", s.CreateProduct)
	admin.PATCH("/products/:id", s.UpdateProduct)

	admin.GET("/businesses/:id/suppliers", s.ListSuppliers)
	admin.POST("/businesses/:id/suppliers", s.CreateSupplier)
	admin.PATCH("/suppliers/:id", s.UpdateSupplier)

	admin.GET("/businesses/:id/low-stock-events", s.ListLowStockEvents)
	admin.GET("/businesses/:id/credit-ledger", s.GetCreditLedger)
}

// RequireSession gates admin routes on a valid session cookie.
func (s *Server) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if _, ok := s.authSvc.Authenticate(c.Request.Context(), token); !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}
