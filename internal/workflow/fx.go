package workflow

import (
	"github.com/syedfahimdev/omni-admin/internal/workflow/repository"
	"github.com/syedfahimdev/omni-admin/internal/workflow/service"
	"go.uber.org/fx"
)

var Module = fx.Module("workflow.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
