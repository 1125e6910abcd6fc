package business

import (
	"github.com/syedfahimdev/omni-admin/internal/business/repository"
	"github.com/syedfahimdev/omni-admin/internal/business/service"
	"go.uber.org/fx"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
