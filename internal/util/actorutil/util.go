package actorutil

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/internal/core/events"
	"github.com/badnest/badnest2mqtt/internal/mqtt"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"
)

func PipeToSelfWithRecover(ctx actor.Context, future *actor.Future, mapFn func(error) any) {
	ctx.ReenterAfter(future, func(msg any, err error) {
		if err != nil {
			ctx.Send(ctx.Self(), mapFn(err))
			return
		}
		ctx.Send(ctx.Self(), msg)
	})
}

func NewActorSystemWithZapLogger(logger *zap.Logger) *actor.ActorSystem {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return actor.NewActorSystem(actor.WithLoggerFactory(func(system *actor.ActorSystem) *slog.Logger {

		// create a new logger
		return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.DateTime,
		}))
	}))
}

func ActorLogger(actorName string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("actor", actorName))
}

// ParsedMQTTCommandToCommand maps an MQTT switch/number command to a device
// command request. The component id carries the device serial as prefix,
// e.g. "<serial>_hot_water_boost". Returns nil for unrecognized ids.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand, defaultBoostMinutes int) (domain.ActorRequest, error) {
	switch {
	case strings.HasSuffix(cmd.DeviceId, "_"+events.SWITCH_HOT_WATER_BOOST):
		deviceID := strings.TrimSuffix(cmd.DeviceId, "_"+events.SWITCH_HOT_WATER_BOOST)
		var end int64
		if cmd.Payload == "on" {
			end = time.Now().Add(time.Duration(defaultBoostMinutes) * time.Minute).Unix()
		}
		return domain.BoostHotWaterRequest{
			DeviceID: deviceID,
			EndUnix:  end,
		}, nil
	case strings.HasSuffix(cmd.DeviceId, "_"+events.SWITCH_HOT_WATER_AWAY):
		return domain.SetHotWaterAwayRequest{
			DeviceID: strings.TrimSuffix(cmd.DeviceId, "_"+events.SWITCH_HOT_WATER_AWAY),
			Away:     cmd.Payload == "on",
		}, nil
	case strings.HasSuffix(cmd.DeviceId, "_"+events.SWITCH_ECO):
		return domain.SetEcoModeRequest{
			DeviceID: strings.TrimSuffix(cmd.DeviceId, "_"+events.SWITCH_ECO),
			Enable:   cmd.Payload == "on",
		}, nil
	case strings.HasSuffix(cmd.DeviceId, "_"+events.INPUT_NUMBER_TARGET_TEMPERATURE):
		value, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil {
			return nil, err
		}
		if value < events.TARGET_TEMPERATURE_MIN || value > events.TARGET_TEMPERATURE_MAX {
			return nil, fmt.Errorf("target temperature %v out of range", value)
		}
		return domain.SetTargetTemperatureRequest{
			DeviceID: strings.TrimSuffix(cmd.DeviceId, "_"+events.INPUT_NUMBER_TARGET_TEMPERATURE),
			Celsius:  value,
		}, nil
	}
	return nil, nil
}
