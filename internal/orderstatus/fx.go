package orderstatus

import (
	"github.com/gemorahq/gemora/internal/orderstatus/repository"
	"github.com/gemorahq/gemora/internal/orderstatus/service"
	"go.uber.org/fx"
)

var Module = fx.Module("orderstatus.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
