package order

import (
	"github.com/rentline/rentline/internal/order/repository"
	"github.com/rentline/rentline/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
