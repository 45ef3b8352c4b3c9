package out

import (
	"fmt"
	"strings"

	deliveryin "ridelog/internal/modules/delivery/port/in"
	"ridelog/internal/modules/export/domain"
	exportout "ridelog/internal/modules/export/port/out"
)

// DelivererRegistry resolves --via names to deliverers. Builtins are
// registered up front; "plugin:<name>" entries are bound lazily to the
// delivery module.
type DelivererRegistry struct {
	builtins map[string]exportout.Deliverer
	delivery deliveryin.Usecase
}

func NewDelivererRegistry(delivery deliveryin.Usecase, builtins ...exportout.Deliverer) *DelivererRegistry {
	registry := &DelivererRegistry{
		builtins: make(map[string]exportout.Deliverer, len(builtins)),
		delivery: delivery,
	}
	for _, d := range builtins {
		registry.builtins[d.Name()] = d
	}
	return registry
}

func (r *DelivererRegistry) Resolve(name string) (exportout.Deliverer, error) {
	if pluginName, ok := strings.CutPrefix(name, "plugin:"); ok {
		if r.delivery == nil {
			return nil, fmt.Errorf("%w: delivery plugins not configured", domain.ErrDelivererUnknown)
		}
		if pluginName == "" {
			return nil, fmt.Errorf("%w: plugin name missing", domain.ErrDelivererUnknown)
		}
		return NewPluginDeliverer(r.delivery, pluginName), nil
	}
	deliverer, ok := r.builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDelivererUnknown, name)
	}
	return deliverer, nil
}
