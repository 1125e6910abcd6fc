package businessmodule

import (
	"github.com/syedfahimdev/omni-admin/internal/businessmodule/repository"
	"github.com/syedfahimdev/omni-admin/internal/businessmodule/service"
	"go.uber.org/fx"
)

var Module = fx.Module("businessmodule.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
