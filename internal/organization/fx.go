package organization

import (
	"github.com/rentline/rentline/internal/organization/repository"
	"github.com/rentline/rentline/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
