package revenue

import (
	"github.com/acmelabs/backoffice/internal/revenue/repository"
	"github.com/acmelabs/backoffice/internal/revenue/service"
	"go.uber.org/fx"
)

var Module = fx.Module("revenue.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
