package domain

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// StripeConfig is the credential set a stripe gateway row must carry.
// Decoded and validated when the driver is constructed, not on first use.
type StripeConfig struct {
	PublishableKey string `json:"publishable_key"`
	SecretKey      string `json:"secret_key"`
	WebhookSecret  string `json:"webhook_secret"`
}

// DecodeStripeConfig parses the gateway's opaque config blob into a typed
// credential set. A missing secret key fails here so a misconfigured gateway
// is rejected at construction.
func DecodeStripeConfig(raw datatypes.JSON) (StripeConfig, error) {
	var cfg StripeConfig
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return StripeConfig{}, ErrInvalidGatewayConfig
		}
	}

	cfg.PublishableKey = strings.TrimSpace(cfg.PublishableKey)
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	cfg.WebhookSecret = strings.TrimSpace(cfg.WebhookSecret)

	if cfg.SecretKey == "" {
		return StripeConfig{}, ErrMissingSecretKey
	}
	return cfg, nil
}
