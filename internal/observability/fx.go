package observability

import (
	"github.com/syedfahimdev/omni-admin/internal/observability/logger"
	"github.com/syedfahimdev/omni-admin/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(logger.New),
	fx.Provide(metrics.NewHTTPMetrics),
)
