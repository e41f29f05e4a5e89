package invoice

import (
	"github.com/acmelabs/backoffice/internal/invoice/repository"
	"github.com/acmelabs/backoffice/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
