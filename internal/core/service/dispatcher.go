package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/internal/core/port"

	"go.uber.org/zap"
)

const (
	SERVICE_BOOST_HOT_WATER        = "boost_hot_water"
	SERVICE_CANCEL_BOOST_HOT_WATER = "cancel_boost_hot_water"

	FIELD_TIME_PERIOD = "time_period"
	FIELD_BOOST_MODE  = "boost_mode"
)

// Dispatcher validates service calls against the registry and forwards them
// to the device controller. Validation always completes before the single
// forwarding call; a controller failure never leaves a second call behind.
// Stateless, safe for concurrent use.
type Dispatcher struct {
	registry   *Registry
	entities   *domain.EntityTable
	controller port.DeviceController
	logger     *zap.Logger
	now        func() time.Time
}

func NewDispatcher(registry *Registry, entities *domain.EntityTable,
	controller port.DeviceController, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		entities:   entities,
		controller: controller,
		logger:     logger.With(zap.String("component", "dispatcher")),
		now:        time.Now,
	}
}

func (d *Dispatcher) Invoke(ctx context.Context, call domain.ServiceCall) error {
	def, ok := d.registry.Get(call.Service)
	if !ok {
		return &domain.ServiceError{
			Kind:    domain.ErrorKindUnknownService,
			Service: call.Service,
			Err:     fmt.Errorf("service %q is not declared", call.Service),
		}
	}

	entity, ok := d.entities.Lookup(call.Target)
	if !ok || entity.Domain != def.Target.Domain || entity.Integration != def.Target.Integration {
		return &domain.ServiceError{
			Kind:    domain.ErrorKindTargetMismatch,
			Service: call.Service,
			Err:     fmt.Errorf("entity %q does not match target %s/%s", call.Target, def.Target.Domain, def.Target.Integration),
		}
	}

	params, svcErr := d.validateParams(def, call.Params)
	if svcErr != nil {
		return svcErr
	}

	d.logger.Debug("dispatching service call",
		zap.String("service", call.Service), zap.String("entity", call.Target))

	if err := d.forward(ctx, def.ID, entity, params); err != nil {
		if svcErr, ok := domain.AsServiceError(err); ok {
			return svcErr
		}
		return &domain.ServiceError{
			Kind:    domain.ErrorKindDownstreamFailure,
			Service: call.Service,
			Err:     err,
		}
	}
	return nil
}

// validateParams checks the raw params against the field specs and returns
// the normalized params with defaults applied.
func (d *Dispatcher) validateParams(def domain.ServiceDefinition, raw map[string]any) (map[string]any, *domain.ServiceError) {
	for name := range raw {
		if _, ok := def.Fields[name]; !ok {
			return nil, &domain.ServiceError{
				Kind:    domain.ErrorKindUnknownField,
				Service: def.ID,
				Field:   name,
				Err:     fmt.Errorf("field %q is not declared", name),
			}
		}
	}
	params := make(map[string]any, len(def.Fields))
	for name, spec := range def.Fields {
		value, present := raw[name]
		if !present {
			if spec.Required {
				return nil, &domain.ServiceError{
					Kind:    domain.ErrorKindMissingRequiredField,
					Service: def.ID,
					Field:   name,
				}
			}
			if spec.Default != nil {
				params[name] = spec.Default
			}
			continue
		}
		normalized, err := spec.Selector.Validate(value)
		if err != nil {
			kind := domain.ErrorKindInvalidFieldType
			if errors.Is(err, domain.ErrValueOutOfRange) {
				kind = domain.ErrorKindFieldOutOfRange
			}
			return nil, &domain.ServiceError{
				Kind:    kind,
				Service: def.ID,
				Field:   name,
				Err:     err,
			}
		}
		params[name] = normalized
	}
	return params, nil
}

func (d *Dispatcher) forward(ctx context.Context, serviceID string, entity domain.Entity, params map[string]any) error {
	switch serviceID {
	case SERVICE_BOOST_HOT_WATER:
		boostMode, _ := params[FIELD_BOOST_MODE].(bool)
		if !boostMode {
			return d.controller.CancelBoostHotWater(ctx, entity.DeviceID)
		}
		minutes, _ := params[FIELD_TIME_PERIOD].(float64)
		end := d.now().Add(time.Duration(minutes) * time.Minute).Unix()
		return d.controller.BoostHotWater(ctx, entity.DeviceID, end)
	case SERVICE_CANCEL_BOOST_HOT_WATER:
		return d.controller.CancelBoostHotWater(ctx, entity.DeviceID)
	default:
		return &domain.ServiceError{
			Kind:    domain.ErrorKindUnknownService,
			Service: serviceID,
			Err:     fmt.Errorf("service %q has no handler", serviceID),
		}
	}
}
