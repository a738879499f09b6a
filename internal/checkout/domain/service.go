package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// EnsurePaymentIntent drives the active gateway for the order and
	// persists the resulting provider reference, so a repeat call updates
	// the same remote intent instead of creating a new one.
	EnsurePaymentIntent(ctx context.Context, orderID snowflake.ID) (*IntentResponse, error)

	// Config exposes what a storefront needs to mount the payment form.
	Config(ctx context.Context) (*ConfigResponse, error)
}

type IntentResponse struct {
	OrderID           string  `json:"order_id"`
	Gateway           string  `json:"gateway"`
	ProviderReference string  `json:"provider_reference"`
	ClientSecret      string  `json:"client_secret"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
}

type ConfigResponse struct {
	Gateway        string `json:"gateway"`
	PublishableKey string `json:"publishable_key"`
}
