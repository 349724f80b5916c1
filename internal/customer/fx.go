package customer

import (
	"github.com/rentline/rentline/internal/customer/repository"
	"github.com/rentline/rentline/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
