package analytics

import (
	"github.com/syedfahimdev/omni-admin/internal/analytics/repository"
	"github.com/syedfahimdev/omni-admin/internal/analytics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
