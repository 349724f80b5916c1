package payment

import (
	"github.com/rentline/rentline/internal/payment/repository"
	"github.com/rentline/rentline/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
