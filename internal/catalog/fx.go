package catalog

import (
	"github.com/syedfahimdev/omni-admin/internal/cache"
	"github.com/syedfahimdev/omni-admin/internal/catalog/repository"
	"github.com/syedfahimdev/omni-admin/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(cache.NewTTLCache[string, any]),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
