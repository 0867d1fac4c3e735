package domain

import "fmt"

// DeviceCommandRequest

type DeviceCommandRequest interface {
	ActorRequest
	DeviceCommand() string
}

type DeviceCommandRequestMixIn struct {
	ActorRequestMixIn
}

func (r DeviceCommandRequestMixIn) DeviceCommand() string {
	return fmt.Sprintf("%T", r)
}

// DeviceCommandResponse

type DeviceCommandResponse interface {
	ActorResponse
	DeviceCommandResponse() string
}

type DeviceCommandResponseMixIn struct {
	ActorResponse
}

func (r DeviceCommandResponseMixIn) DeviceCommandResponse() string {
	return fmt.Sprintf("%T", r)
}

// Device commands

type BoostHotWaterRequest struct {
	DeviceCommandRequestMixIn
	DeviceID string
	// EndUnix is the boost deadline in unix seconds, 0 cancels the boost.
	EndUnix int64
}

type BoostHotWaterResponse struct {
	DeviceCommandResponseMixIn
}

type SetHotWaterModeRequest struct {
	DeviceCommandRequestMixIn
	DeviceID string
	Mode     string
}

type SetHotWaterModeResponse struct {
	DeviceCommandResponseMixIn
}

type SetHotWaterAwayRequest struct {
	DeviceCommandRequestMixIn
	DeviceID string
	Away     bool
}

type SetHotWaterAwayResponse struct {
	DeviceCommandResponseMixIn
}

type SetTargetTemperatureRequest struct {
	DeviceCommandRequestMixIn
	DeviceID string
	Celsius  float64
}

type SetTargetTemperatureResponse struct {
	DeviceCommandResponseMixIn
}

type SetEcoModeRequest struct {
	DeviceCommandRequestMixIn
	DeviceID string
	Enable   bool
}

type SetEcoModeResponse struct {
	DeviceCommandResponseMixIn
}

// ensure interface compliance
var _ DeviceCommandRequest = (*BoostHotWaterRequest)(nil)
