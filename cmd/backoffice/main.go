package main

import (
	"github.com/acmelabs/backoffice/internal/clock"
	"github.com/acmelabs/backoffice/internal/config"
	"github.com/acmelabs/backoffice/internal/migration"
	"github.com/acmelabs/backoffice/internal/observability"
	"github.com/acmelabs/backoffice/internal/server"
	"github.com/acmelabs/backoffice/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		server.Module,
		migration.Module,
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
