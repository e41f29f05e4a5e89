package product

import (
	"github.com/acmelabs/backoffice/internal/product/repository"
	"github.com/acmelabs/backoffice/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
