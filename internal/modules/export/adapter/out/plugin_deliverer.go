package out

import (
	"context"

	deliverydto "ridelog/internal/modules/delivery/dto"
	deliveryin "ridelog/internal/modules/delivery/port/in"
	"ridelog/internal/modules/export/domain"
	exportout "ridelog/internal/modules/export/port/out"
)

// PluginDeliverer hands the artifact to an external delivery plugin through
// the delivery module's in-port.
type PluginDeliverer struct {
	delivery   deliveryin.Usecase
	pluginName string
}

func NewPluginDeliverer(delivery deliveryin.Usecase, pluginName string) exportout.Deliverer {
	return &PluginDeliverer{delivery: delivery, pluginName: pluginName}
}

func (d *PluginDeliverer) Name() string { return "plugin:" + d.pluginName }

func (d *PluginDeliverer) Deliver(ctx context.Context, artifact domain.Artifact) (domain.Receipt, error) {
	out, err := d.delivery.Deliver(ctx, deliverydto.DeliverInput{
		Deliverer: d.pluginName,
		Filename:  artifact.Filename,
		MIME:      artifact.MIME,
		Content:   artifact.Content,
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{Deliverer: d.Name(), Target: out.Target, Message: out.Message}, nil
}
