package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gemorahq/gemora/internal/checkout/domain"
	gatewaydomain "github.com/gemorahq/gemora/internal/gateway/domain"
	orderdomain "github.com/gemorahq/gemora/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	OrderRepo orderdomain.Repository
	Gateways  gatewaydomain.Manager
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	orderRepo orderdomain.Repository
	gateways  gatewaydomain.Manager
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("checkout.service"),
		genID:     p.GenID,
		orderRepo: p.OrderRepo,
		gateways:  p.Gateways,
	}
}

func (s *Service) EnsurePaymentIntent(ctx context.Context, orderID snowflake.ID) (*domain.IntentResponse, error) {
	order, err := s.orderRepo.FindOrder(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrOrderNotFound
	}

	payment, err := s.orderRepo.FindPaymentByOrder(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}

	gateway, err := s.gateways.ActiveGateway(ctx)
	if err != nil {
		return nil, err
	}
	driver, err := s.gateways.Driver(gateway)
	if err != nil {
		return nil, err
	}

	intent, err := driver.EnsurePaymentIntent(ctx, order, payment)
	if err != nil {
		return nil, err
	}

	// The driver has no memory between calls; storing the reference is
	// what makes the next call take the update path.
	now := time.Now().UTC()
	if payment == nil {
		payment = &orderdomain.Payment{
			ID:        s.genID.Generate(),
			OrderID:   order.ID,
			Status:    orderdomain.PaymentStatusPending,
			CreatedAt: now,
		}
	}
	payment.GatewayID = gateway.ID
	payment.ProviderReference = intent.ProviderReference
	payment.UpdatedAt = now

	if err := s.orderRepo.SavePayment(ctx, s.db, payment); err != nil {
		return nil, err
	}

	s.log.Info("payment intent ensured",
		zap.String("order_id", order.ID.String()),
		zap.String("gateway", gateway.Slug),
		zap.String("provider_reference", intent.ProviderReference),
	)

	return &domain.IntentResponse{
		OrderID:           order.ID.String(),
		Gateway:           gateway.Slug,
		ProviderReference: intent.ProviderReference,
		ClientSecret:      intent.ClientSecret,
		Amount:            intent.Amount,
		Currency:          intent.Currency,
	}, nil
}

func (s *Service) Config(ctx context.Context) (*domain.ConfigResponse, error) {
	gateway, err := s.gateways.ActiveGateway(ctx)
	if err != nil {
		return nil, err
	}
	driver, err := s.gateways.Driver(gateway)
	if err != nil {
		return nil, err
	}

	key, err := driver.PublishableKey()
	if err != nil {
		return nil, err
	}

	return &domain.ConfigResponse{
		Gateway:        gateway.Slug,
		PublishableKey: key,
	}, nil
}
