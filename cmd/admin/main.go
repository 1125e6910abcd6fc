package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/syedfahimdev/omni-admin/internal/config"
	"github.com/syedfahimdev/omni-admin/internal/migration"
	"github.com/syedfahimdev/omni-admin/internal/observability"
	"github.com/syedfahimdev/omni-admin/internal/server"
	"github.com/syedfahimdev/omni-admin/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
