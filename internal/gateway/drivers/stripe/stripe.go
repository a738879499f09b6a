// Package stripe implements the gateway driver contract against the Stripe
// payment-intents API.
package stripe

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/gemorahq/gemora/internal/config"
	"github.com/gemorahq/gemora/internal/gateway/domain"
	orderdomain "github.com/gemorahq/gemora/internal/order/domain"
)

type Factory struct {
	checkout *config.CheckoutConfigHolder
	timeout  time.Duration
}

func NewFactory(checkout *config.CheckoutConfigHolder, timeout time.Duration) *Factory {
	return &Factory{checkout: checkout, timeout: timeout}
}

func (f *Factory) Kind() domain.Kind {
	return domain.KindStripe
}

// New fails immediately when the secret key is absent; a stripe gateway
// without credentials must never reach a request path.
func (f *Factory) New(gateway *domain.PaymentGateway) (domain.Driver, error) {
	cfg, err := domain.DecodeStripeConfig(gateway.Config)
	if err != nil {
		return nil, err
	}

	return &Driver{
		gateway:  gateway,
		cfg:      cfg,
		checkout: f.checkout,
		client:   newAPIClient(cfg.SecretKey, f.timeout),
	}, nil
}

type Driver struct {
	gateway  *domain.PaymentGateway
	cfg      domain.StripeConfig
	checkout *config.CheckoutConfigHolder
	client   *apiClient
}

func (d *Driver) EnsurePaymentIntent(ctx context.Context, order *orderdomain.Order, payment *orderdomain.Payment) (*domain.PaymentIntent, error) {
	values := d.intentValues(order)

	var (
		intent paymentIntent
		err    error
	)
	if payment != nil && strings.TrimSpace(payment.ProviderReference) != "" {
		// Same remote intent, refreshed amount/currency/description.
		intent, err = d.client.updateIntent(ctx, payment.ProviderReference, values)
	} else {
		intent, err = d.client.createIntent(ctx, values, "order:"+order.ID.String())
	}
	if err != nil {
		return nil, d.providerError(err)
	}

	return &domain.PaymentIntent{
		ProviderReference: intent.ID,
		ClientSecret:      intent.ClientSecret,
		Amount:            float64(intent.Amount),
		Currency:          strings.ToUpper(intent.Currency),
	}, nil
}

func (d *Driver) RetrieveIntent(ctx context.Context, providerReference string) (*domain.IntentStatus, error) {
	intent, err := d.client.retrieveIntent(ctx, providerReference)
	if err != nil {
		return nil, d.providerError(err)
	}
	return &domain.IntentStatus{
		Status:   intent.Status,
		Amount:   float64(intent.Amount),
		Currency: strings.ToUpper(intent.Currency),
	}, nil
}

func (d *Driver) PublishableKey() (string, error) {
	if d.cfg.PublishableKey == "" {
		return "", domain.ErrMissingPublishableKey
	}
	return d.cfg.PublishableKey, nil
}

func (d *Driver) Gateway() *domain.PaymentGateway {
	return d.gateway
}

func (d *Driver) intentValues(order *orderdomain.Order) url.Values {
	checkout := d.checkout.Get()

	values := url.Values{}
	values.Set("amount", fmt.Sprintf("%d", minorUnits(order.TotalAmount)))
	values.Set("currency", strings.ToLower(order.Currency))
	values.Set("description", fmt.Sprintf("%s %s", checkout.DescriptionPrefix, order.Reference))
	values.Set("statement_descriptor", checkout.StatementDescriptor)
	values.Set("metadata[order_id]", order.ID.String())
	values.Set("metadata[order_reference]", order.Reference)
	return values
}

func (d *Driver) providerError(err error) error {
	return &domain.ProviderError{
		Gateway: d.gateway.Slug,
		Message: err.Error(),
		Err:     err,
	}
}

// minorUnits converts a decimal total into the integer minor units Stripe
// expects, rounding to the nearest unit rather than truncating.
func minorUnits(total float64) int64 {
	return int64(math.Round(total * 100))
}
