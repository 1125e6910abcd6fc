package auth

import (
	"github.com/syedfahimdev/omni-admin/internal/auth/service"
	"github.com/syedfahimdev/omni-admin/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
