package gateway

import (
	"time"

	"github.com/gemorahq/gemora/internal/config"
	"github.com/gemorahq/gemora/internal/gateway/drivers"
	"github.com/gemorahq/gemora/internal/gateway/drivers/fake"
	"github.com/gemorahq/gemora/internal/gateway/drivers/stripe"
	"github.com/gemorahq/gemora/internal/gateway/repository"
	gatewayservice "github.com/gemorahq/gemora/internal/gateway/service"
	"go.uber.org/fx"
)

var Module = fx.Module("gateway.service",
	fx.Provide(repository.Provide),
	fx.Provide(func(cfg config.Config, checkout *config.CheckoutConfigHolder) *drivers.Registry {
		return drivers.NewRegistry(
			stripe.NewFactory(checkout, time.Duration(cfg.StripeTimeoutSeconds)*time.Second),
			fake.NewFactory(),
		)
	}),
	fx.Provide(gatewayservice.New),
)
