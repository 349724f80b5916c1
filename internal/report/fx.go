package report

import (
	"github.com/rentline/rentline/internal/report/repository"
	"github.com/rentline/rentline/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
