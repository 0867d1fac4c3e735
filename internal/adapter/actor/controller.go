package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/internal/core/port"

	"github.com/asynkron/protoactor-go/actor"
)

// ActorDeviceController bridges the service layer to the actor tree. Commands
// are sent to the master actor, which routes them to the nest actor.
type ActorDeviceController struct {
	root    *actor.RootContext
	master  *actor.PID
	timeout time.Duration
}

func NewActorDeviceController(root *actor.RootContext, master *actor.PID, timeout time.Duration) *ActorDeviceController {
	return &ActorDeviceController{
		root:    root,
		master:  master,
		timeout: timeout,
	}
}

func (c *ActorDeviceController) BoostHotWater(ctx context.Context, deviceID string, endUnix int64) error {
	return c.request(ctx, domain.BoostHotWaterRequest{
		DeviceID: deviceID,
		EndUnix:  endUnix,
	})
}

func (c *ActorDeviceController) CancelBoostHotWater(ctx context.Context, deviceID string) error {
	return c.request(ctx, domain.BoostHotWaterRequest{
		DeviceID: deviceID,
		EndUnix:  0,
	})
}

func (c *ActorDeviceController) request(ctx context.Context, msg domain.DeviceCommandRequest) error {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	result, err := c.root.RequestFuture(c.master, msg, timeout).Result()
	if err != nil {
		return err
	}
	resp, ok := result.(domain.ActorResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %T", result)
	}
	if resp.HasResponseError() {
		return resp.GetResponseError()
	}
	return nil
}

var _ port.DeviceController = (*ActorDeviceController)(nil)
