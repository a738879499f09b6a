// Package fake provides a deterministic gateway driver for environments
// without a real provider.
package fake

import (
	"context"
	"fmt"
	"strings"

	"github.com/gemorahq/gemora/internal/gateway/domain"
	orderdomain "github.com/gemorahq/gemora/internal/order/domain"
)

const (
	fallbackCurrency = "INR"
	publishableKey   = "pk_fake_gemora"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Kind() domain.Kind {
	return domain.KindFake
}

func (f *Factory) New(gateway *domain.PaymentGateway) (domain.Driver, error) {
	return &Driver{gateway: gateway}, nil
}

type Driver struct {
	gateway *domain.PaymentGateway
}

// EnsurePaymentIntent derives a stable reference from the order id, so
// repeat calls without a stored payment still converge on the same intent.
func (d *Driver) EnsurePaymentIntent(ctx context.Context, order *orderdomain.Order, payment *orderdomain.Payment) (*domain.PaymentIntent, error) {
	_ = ctx

	reference := fmt.Sprintf("pi_fake_%d", order.ID.Int64())
	if payment != nil && strings.TrimSpace(payment.ProviderReference) != "" {
		reference = payment.ProviderReference
	}

	currency := strings.ToUpper(strings.TrimSpace(order.Currency))
	if currency == "" {
		currency = fallbackCurrency
	}

	return &domain.PaymentIntent{
		ProviderReference: reference,
		ClientSecret:      fmt.Sprintf("cs_fake_%d", order.ID.Int64()),
		Amount:            order.TotalAmount,
		Currency:          currency,
	}, nil
}

// RetrieveIntent always reports a settled intent; the fake driver keeps no
// state to consult.
func (d *Driver) RetrieveIntent(ctx context.Context, providerReference string) (*domain.IntentStatus, error) {
	_ = ctx
	_ = providerReference
	return &domain.IntentStatus{
		Status:   "succeeded",
		Currency: fallbackCurrency,
	}, nil
}

func (d *Driver) PublishableKey() (string, error) {
	return publishableKey, nil
}

func (d *Driver) Gateway() *domain.PaymentGateway {
	return d.gateway
}
