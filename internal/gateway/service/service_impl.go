package service

import (
	"context"

	"github.com/gemorahq/gemora/internal/config"
	"github.com/gemorahq/gemora/internal/gateway/domain"
	"github.com/gemorahq/gemora/internal/gateway/drivers"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Repo     domain.Repository
	Registry *drivers.Registry
	Cfg      config.Config
}

// Service resolves the active gateway and builds drivers. It deliberately
// caches nothing: credential rotation and active/default toggles take
// effect on the next request.
type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	registry *drivers.Registry
	fallback string
}

func New(p Params) domain.Manager {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("gateway.service"),
		repo:     p.Repo,
		registry: p.Registry,
		fallback: p.Cfg.DefaultGatewaySlug,
	}
}

// ActiveGateway picks the first active gateway with the default flag
// sorting first, then falls back to the configured slug regardless of its
// active flag. There is no silent no-op gateway.
func (s *Service) ActiveGateway(ctx context.Context) (*domain.PaymentGateway, error) {
	gateways, err := s.repo.FindActive(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if len(gateways) > 0 {
		return &gateways[0], nil
	}

	if s.fallback != "" {
		gateway, err := s.repo.FindBySlug(ctx, s.db, s.fallback)
		if err != nil {
			return nil, err
		}
		if gateway != nil {
			s.log.Debug("using fallback payment gateway", zap.String("slug", gateway.Slug))
			return gateway, nil
		}
	}

	return nil, domain.ErrGatewayNotFound
}

func (s *Service) Driver(gateway *domain.PaymentGateway) (domain.Driver, error) {
	return s.registry.New(gateway)
}
