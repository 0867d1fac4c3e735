package actor

import (
	"fmt"
	"time"

	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/internal/util/actorutil"
	"github.com/badnest/badnest2mqtt/pkg/nest"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

const nestRequestTimeout = 20 * time.Second

type NestActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	client   nest.Client
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewNestActor(client nest.Client, logger *zap.Logger) *NestActor {
	act := &NestActor{
		client:   client,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger(domain.ACTOR_ID_NEST, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *NestActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *NestActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("nest@starting started")
		if err := state.client.Login(); err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.client.Close()
	default:
		state.logger.Debug("nest@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *NestActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("nest@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_NEST,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetDevicesRequest:
		state.logger.Debug("nest@default: GetDevicesRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getDevices),
			mapTaskResult[domain.GetDevicesResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetDevicesResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(nestRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingNest)
	case domain.GetDeviceStatesRequest:
		state.logger.Debug("nest@default: GetDeviceStatesRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getDeviceStates),
			mapTaskResult[domain.GetDeviceStatesResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetDeviceStatesResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(nestRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingNest)
	case domain.BoostHotWaterRequest:
		state.logger.Debug("nest@default: BoostHotWaterRequest",
			zap.String("device", msg.DeviceID), zap.Int64("end", msg.EndUnix))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.BoostHotWaterResponse {
			a := state.boostHotWater(msg)
			return &a
		}),
			mapTaskResult[domain.BoostHotWaterResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.BoostHotWaterResponse{
					DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
						ActorResponse: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(nestRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingNest)
	case domain.SetHotWaterModeRequest:
		state.logger.Debug("nest@default: SetHotWaterModeRequest",
			zap.String("device", msg.DeviceID), zap.String("mode", msg.Mode))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.SetHotWaterModeResponse {
			a := state.setHotWaterMode(msg)
			return &a
		}),
			mapTaskResult[domain.SetHotWaterModeResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SetHotWaterModeResponse{
					DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
						ActorResponse: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(nestRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingNest)
	case domain.SetHotWaterAwayRequest:
		state.logger.Debug("nest@default: SetHotWaterAwayRequest",
			zap.String("device", msg.DeviceID), zap.Bool("away", msg.Away))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.SetHotWaterAwayResponse {
			a := state.setHotWaterAway(msg)
			return &a
		}),
			mapTaskResult[domain.SetHotWaterAwayResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SetHotWaterAwayResponse{
					DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
						ActorResponse: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(nestRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingNest)
	case domain.SetTargetTemperatureRequest:
		state.logger.Debug("nest@default: SetTargetTemperatureRequest",
			zap.String("device", msg.DeviceID), zap.Float64("celsius", msg.Celsius))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.SetTargetTemperatureResponse {
			a := state.setTargetTemperature(msg)
			return &a
		}),
			mapTaskResult[domain.SetTargetTemperatureResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SetTargetTemperatureResponse{
					DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
						ActorResponse: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(nestRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingNest)
	case domain.SetEcoModeRequest:
		state.logger.Debug("nest@default: SetEcoModeRequest",
			zap.String("device", msg.DeviceID), zap.Bool("enable", msg.Enable))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.SetEcoModeResponse {
			a := state.setEcoMode(msg)
			return &a
		}),
			mapTaskResult[domain.SetEcoModeResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SetEcoModeResponse{
					DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
						ActorResponse: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(nestRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingNest)
	case *actor.Stopping:
		state.client.Close()
	default:
		state.logger.Debug("nest@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *NestActor) WaitingNest(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("nest@waitingNest backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.client.Close()
	default:
		state.logger.Debug("nest@waitingNest stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *NestActor) getDevices() (*domain.GetDevicesResponse, error) {
	devices, err := a.client.GetDevices()
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.GetDevicesResponse{
		Devices: devices,
	}, nil
}

func (a *NestActor) getDeviceStates() (*domain.GetDeviceStatesResponse, error) {
	states, err := a.client.GetDeviceStates()
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.GetDeviceStatesResponse{
		States: states,
	}, nil
}

func (a *NestActor) boostHotWater(msg domain.BoostHotWaterRequest) domain.BoostHotWaterResponse {
	if err := a.client.HotWaterSetBoost(msg.DeviceID, msg.EndUnix); err != nil {
		logger.Error(err)
		return domain.BoostHotWaterResponse{
			DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
				ActorResponse: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			},
		}
	}
	return domain.BoostHotWaterResponse{
		DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
			ActorResponse: domain.ActorResponseMixIn{},
		},
	}
}

func (a *NestActor) setHotWaterMode(msg domain.SetHotWaterModeRequest) domain.SetHotWaterModeResponse {
	if err := a.client.HotWaterSetMode(msg.DeviceID, msg.Mode); err != nil {
		logger.Error(err)
		return domain.SetHotWaterModeResponse{
			DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
				ActorResponse: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			},
		}
	}
	return domain.SetHotWaterModeResponse{
		DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
			ActorResponse: domain.ActorResponseMixIn{},
		},
	}
}

func (a *NestActor) setHotWaterAway(msg domain.SetHotWaterAwayRequest) domain.SetHotWaterAwayResponse {
	if err := a.client.HotWaterSetAway(msg.DeviceID, msg.Away); err != nil {
		logger.Error(err)
		return domain.SetHotWaterAwayResponse{
			DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
				ActorResponse: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			},
		}
	}
	return domain.SetHotWaterAwayResponse{
		DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
			ActorResponse: domain.ActorResponseMixIn{},
		},
	}
}

func (a *NestActor) setTargetTemperature(msg domain.SetTargetTemperatureRequest) domain.SetTargetTemperatureResponse {
	if err := a.client.ThermostatSetTemperature(msg.DeviceID, msg.Celsius); err != nil {
		logger.Error(err)
		return domain.SetTargetTemperatureResponse{
			DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
				ActorResponse: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			},
		}
	}
	return domain.SetTargetTemperatureResponse{
		DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
			ActorResponse: domain.ActorResponseMixIn{},
		},
	}
}

func (a *NestActor) setEcoMode(msg domain.SetEcoModeRequest) domain.SetEcoModeResponse {
	if err := a.client.ThermostatSetEco(msg.DeviceID, msg.Enable); err != nil {
		logger.Error(err)
		return domain.SetEcoModeResponse{
			DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
				ActorResponse: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			},
		}
	}
	return domain.SetEcoModeResponse{
		DeviceCommandResponseMixIn: domain.DeviceCommandResponseMixIn{
			ActorResponse: domain.ActorResponseMixIn{},
		},
	}
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
