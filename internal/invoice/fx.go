package invoice

import (
	"github.com/rentline/rentline/internal/invoice/repository"
	"github.com/rentline/rentline/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
