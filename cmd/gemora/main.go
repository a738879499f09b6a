package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gemorahq/gemora/internal/checkout"
	"github.com/gemorahq/gemora/internal/config"
	"github.com/gemorahq/gemora/internal/gateway"
	"github.com/gemorahq/gemora/internal/migration"
	"github.com/gemorahq/gemora/internal/observability"
	"github.com/gemorahq/gemora/internal/order"
	"github.com/gemorahq/gemora/internal/orderstatus"
	"github.com/gemorahq/gemora/internal/server"
	"github.com/gemorahq/gemora/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,

		order.Module,
		orderstatus.Module,
		gateway.Module,
		checkout.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
