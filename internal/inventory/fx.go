package inventory

import (
	"github.com/rentline/rentline/internal/inventory/repository"
	"github.com/rentline/rentline/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
