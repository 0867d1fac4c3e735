package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/badnest/badnest2mqtt/internal/config"
	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/internal/core/events"
	. "github.com/badnest/badnest2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type HADiscoveryActor struct {
	ActorWithStates
	config           *config.Config
	stash            *Stash
	nestActor        *actor.PID
	mqttActor        *actor.PID
	nestActorHealthy bool
	mqttActorHealthy bool
	healthyRecv      int

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, nestActor *actor.PID, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:    config,
		nestActor: nestActor,
		mqttActor: mqttActor,
		stash:     &Stash{},
		logger:    ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
		ActorWithStates: ActorWithStates{
			Behavior: actor.NewBehavior(),
		},
	}
	act.Become(HADStartingState{
		actor: act,
	})
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.Behavior.Receive(context)
}

// Starting state

type HADStartingState struct {
	ActorState
	actor *HADiscoveryActor
}

func (state HADStartingState) Name() string {
	return "starting"
}

func (state HADStartingState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.actor.logger.Debug("hadiscovery@starting started")

		// Check Nest and MQTT actor healthy
		state.actor.healthyRecv = 0
		state.actor.nestActorHealthy = false
		state.actor.mqttActorHealthy = false
		// Nest Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.nestActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_NEST,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.actor.Become(HADWaitingHealthyState{actor: state.actor})
	case *actor.Restarting:
	default:
		state.actor.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Waiting healthy state

type HADWaitingHealthyState struct {
	ActorState
	actor *HADiscoveryActor
}

func (state HADWaitingHealthyState) Name() string {
	return "waiting_healthy"
}

func (state HADWaitingHealthyState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.actor.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.actor.healthyRecv++
		if msg.Healthy {
			switch msg.Id {
			case domain.ACTOR_ID_NEST:
				state.actor.nestActorHealthy = true
			case domain.ACTOR_ID_MQTT:
				state.actor.mqttActorHealthy = true
			}
		}
		if state.actor.healthyRecv == 2 {

			if state.actor.nestActorHealthy && state.actor.mqttActorHealthy {
				// Ask Nest GetDevicesRequest
				PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.actor.nestActor, domain.GetDevicesRequest{}, 30*time.Second), func(err error) any {
					return domain.GetDevicesResponse{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					}
				})
				state.actor.Become(HADWaitingDevicesState{actor: state.actor})
				state.actor.stash.UnstashAll(ctx)
			} else {
				panic(errors.New("MQTT Actor or Nest Actor are not healthy"))
			}
		}
	default:
		state.actor.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.actor.stash.Stash(ctx, msg)
	}
}

// Waiting devices state

type HADWaitingDevicesState struct {
	ActorState
	actor *HADiscoveryActor
}

func (state HADWaitingDevicesState) Name() string {
	return "waiting_devices"
}

func (state HADWaitingDevicesState) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDevicesResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.actor.logger.Debug("hadiscovery@devices: GetDevicesResponse", zap.Int("count", len(msg.Devices)))

		var sensors []domain.GenericSensor
		var switches []domain.GenericSwitch
		var inputNumbers []domain.GenericInputNumber

		bridgeDevice := events.BridgeDevice(state.actor.config.MQTT.BaseTopic)
		bridgeSensors := events.BridgeSensors(bridgeDevice)
		sensors = append(sensors, bridgeSensors...)

		for _, device := range msg.Devices {
			deviceSensors, deviceSwitches, deviceNumbers := events.DeviceDiscovery(device)
			for i := range deviceSensors {
				if deviceSensors[i].Device.ViaDevice == "" {
					deviceSensors[i].Device.ViaDevice = bridgeDevice.Id
				}
			}
			sensors = append(sensors, deviceSensors...)
			switches = append(switches, deviceSwitches...)
			inputNumbers = append(inputNumbers, deviceNumbers...)
		}

		ctx.Send(state.actor.mqttActor, domain.PublishDiscoveryRequest{
			Sensors:      sensors,
			Switches:     switches,
			InputNumbers: inputNumbers,
		})
		state.actor.Become(HADDoneState{})

	default:
		state.actor.logger.Debug("hadiscovery@devices: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// Done state

type HADDoneState struct {
	ActorState
}

func (state HADDoneState) Name() string {
	return "done"
}

func (state HADDoneState) Receive(ctx actor.Context) {

}
