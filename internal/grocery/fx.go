package grocery

import (
	"github.com/syedfahimdev/omni-admin/internal/grocery/repository"
	"github.com/syedfahimdev/omni-admin/internal/grocery/service"
	"go.uber.org/fx"
)

var Module = fx.Module("grocery.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
