package customer

import (
	"github.com/acmelabs/backoffice/internal/customer/repository"
	"github.com/acmelabs/backoffice/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
