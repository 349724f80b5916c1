package outlet

import (
	"github.com/rentline/rentline/internal/outlet/repository"
	"github.com/rentline/rentline/internal/outlet/service"
	"go.uber.org/fx"
)

var Module = fx.Module("outlet.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
