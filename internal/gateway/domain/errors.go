package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrGatewayNotFound means neither an active gateway row nor the
	// configured fallback slug resolved to a usable gateway.
	ErrGatewayNotFound = errors.New("no payment gateway is configured")

	ErrInvalidGatewayConfig  = errors.New("payment gateway config is malformed")
	ErrMissingSecretKey      = errors.New("payment gateway secret key is not configured")
	ErrMissingPublishableKey = errors.New("payment gateway publishable key is not configured")
)

// DriverNotFoundError names the driver identity that has no registered factory.
type DriverNotFoundError struct {
	Driver string
}

func (e *DriverNotFoundError) Error() string {
	return fmt.Sprintf("payment driver %q is not registered", e.Driver)
}

// ProviderError wraps any failure raised by the provider's API so callers
// never see a transport-level error type. Message is safe to display.
type ProviderError struct {
	Gateway string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Gateway, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }
