package drivers

import (
	"github.com/gemorahq/gemora/internal/gateway/domain"
)

// Registry maps gateway kinds to driver factories. Dispatch is by the
// resolved kind, never by defaulting: an unknown identity is an error.
type Registry struct {
	factories map[domain.Kind]domain.Factory
}

func NewRegistry(factories ...domain.Factory) *Registry {
	registry := &Registry{factories: map[domain.Kind]domain.Factory{}}
	for _, factory := range factories {
		if factory == nil {
			continue
		}
		registry.factories[factory.Kind()] = factory
	}
	return registry
}

func (r *Registry) New(gateway *domain.PaymentGateway) (domain.Driver, error) {
	kind, err := gateway.Kind()
	if err != nil {
		return nil, err
	}
	factory, ok := r.factories[kind]
	if !ok {
		return nil, &domain.DriverNotFoundError{Driver: string(kind)}
	}
	return factory.New(gateway)
}
