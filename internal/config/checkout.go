package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CheckoutConfig carries the tunables attached to every payment intent.
// Loaded from checkout.yml so merchants can adjust the dashboard-facing
// descriptor without a rebuild.
type CheckoutConfig struct {
	// StatementDescriptor shows up on the buyer's card statement.
	// Stripe caps it at 22 characters.
	StatementDescriptor string `mapstructure:"statementDescriptor"`
	// DescriptionPrefix is prepended to the order reference in the
	// provider-side description.
	DescriptionPrefix string `mapstructure:"descriptionPrefix"`
}

func DefaultCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		StatementDescriptor: "GEMORA JEWELLERY",
		DescriptionPrefix:   "Gemora order",
	}
}

type CheckoutConfigHolder struct {
	current atomic.Value // holds CheckoutConfig
}

func NewCheckoutConfigHolder() (*CheckoutConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("checkout")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/gemora")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GEMORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
		defaults := DefaultCheckoutConfig()
		v.SetDefault("checkout.statementDescriptor", defaults.StatementDescriptor)
		v.SetDefault("checkout.descriptionPrefix", defaults.DescriptionPrefix)
	}

	var cfg CheckoutConfig
	if err := v.UnmarshalKey("checkout", &cfg); err != nil {
		return nil, err
	}
	if err := validateCheckoutConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CheckoutConfigHolder{}
	holder.current.Store(cfg)

	if fileFound {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated CheckoutConfig
			if err := v.UnmarshalKey("checkout", &updated); err != nil {
				log.Printf("[checkout-config] reload failed: %v", err)
				return
			}
			if err := validateCheckoutConfig(updated); err != nil {
				log.Printf("[checkout-config] invalid config ignored: %v", err)
				return
			}
			holder.current.Store(updated)
			log.Printf("[checkout-config] reloaded from %s", e.Name)
		})
	}

	return holder, nil
}

func (h *CheckoutConfigHolder) Get() CheckoutConfig {
	return h.current.Load().(CheckoutConfig)
}

func validateCheckoutConfig(cfg CheckoutConfig) error {
	descriptor := strings.TrimSpace(cfg.StatementDescriptor)
	if descriptor == "" {
		return errors.New("checkout.statementDescriptor cannot be empty")
	}
	if len(descriptor) > 22 {
		return errors.New("checkout.statementDescriptor exceeds 22 characters")
	}
	return nil
}
