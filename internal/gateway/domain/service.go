package domain

import (
	"context"

	orderdomain "github.com/gemorahq/gemora/internal/order/domain"
	"gorm.io/gorm"
)

// PaymentIntent is the provider-side record for one collection attempt.
// Amount is reported in the provider's own unit (minor units for stripe,
// the order total for the fake driver).
type PaymentIntent struct {
	ProviderReference string  `json:"provider_reference"`
	ClientSecret      string  `json:"client_secret"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
}

// IntentStatus is a point-in-time read of a provider intent.
type IntentStatus struct {
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Driver is the contract every gateway integration satisfies.
type Driver interface {
	// EnsurePaymentIntent creates a provider intent for the order, or
	// updates the existing one in place when payment carries a
	// provider reference. The caller persists the returned reference;
	// the driver holds no state between calls.
	EnsurePaymentIntent(ctx context.Context, order *orderdomain.Order, payment *orderdomain.Payment) (*PaymentIntent, error)

	// RetrieveIntent reads the intent's current state from the provider.
	RetrieveIntent(ctx context.Context, providerReference string) (*IntentStatus, error)

	// PublishableKey returns the client-side credential. It never returns
	// a blank key; a missing credential is a configuration error.
	PublishableKey() (string, error)

	// Gateway returns the configuration row backing this driver.
	Gateway() *PaymentGateway
}

// Factory builds a driver from a gateway configuration row.
type Factory interface {
	Kind() Kind
	New(gateway *PaymentGateway) (Driver, error)
}

// Manager selects the active gateway and hands out driver instances.
// Configuration is re-read on every call so admin changes apply without
// a restart.
type Manager interface {
	ActiveGateway(ctx context.Context) (*PaymentGateway, error)
	Driver(gateway *PaymentGateway) (Driver, error)
}

// Repository is the persistence contract for gateway configuration rows.
type Repository interface {
	FindActive(ctx context.Context, db *gorm.DB) ([]PaymentGateway, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*PaymentGateway, error)
	List(ctx context.Context, db *gorm.DB) ([]PaymentGateway, error)
}
