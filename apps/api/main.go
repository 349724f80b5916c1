package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/rentline/rentline/internal/config"
	"github.com/rentline/rentline/internal/logger"
	"github.com/rentline/rentline/internal/migration"
	"github.com/rentline/rentline/internal/server"
	"github.com/rentline/rentline/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
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
