package subscription

import (
	"github.com/syedfahimdev/omni-admin/internal/subscription/repository"
	"github.com/syedfahimdev/omni-admin/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
