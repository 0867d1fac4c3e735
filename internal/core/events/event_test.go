package events

import (
	"testing"

	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/pkg/nest"

	"github.com/stretchr/testify/assert"
)

func eventById(events []any, id string) any {
	for _, ev := range events {
		if sev, ok := ev.(domain.SensorUpdateEvent); ok && sev.SensorId() == id {
			return ev
		}
	}
	return nil
}

func TestWaterHeaterStateToUpdateEvents(t *testing.T) {
	assert := assert.New(t)

	now := int64(1700000000)
	st := &nest.WaterHeaterState{
		Active:         true,
		Boiling:        true,
		TimerMode:      "schedule",
		BoostTimeToEnd: now + 600,
		AwaySetting:    false,
	}

	events := WaterHeaterStateToUpdateEvents("02AA01AC000000001", st, now)

	remaining := eventById(events, "02AA01AC000000001_boost_time_remaining")
	if assert.NotNil(remaining, "boost time remaining event") {
		assert.Equal(float64(600), remaining.(domain.FloatSensorUpdateEvent).Value)
	}

	boost := eventById(events, "02AA01AC000000001_hot_water_boost")
	if assert.NotNil(boost, "boost switch event") {
		assert.True(boost.(domain.SwitchSensorUpdateEvent).Value, "boost switch on")
	}

	heating := eventById(events, "02AA01AC000000001_hot_water_heating")
	if assert.NotNil(heating, "heating event") {
		assert.True(heating.(domain.BinarySensorUpdateEvent).Value)
	}
}

func TestWaterHeaterStateBoostExpired(t *testing.T) {
	assert := assert.New(t)

	now := int64(1700000000)
	st := &nest.WaterHeaterState{
		TimerMode:      "off",
		BoostTimeToEnd: now - 30,
	}

	events := WaterHeaterStateToUpdateEvents("02AA01AC000000001", st, now)

	remaining := eventById(events, "02AA01AC000000001_boost_time_remaining")
	if assert.NotNil(remaining) {
		assert.Equal(float64(0), remaining.(domain.FloatSensorUpdateEvent).Value, "remaining clamps to zero")
	}

	boost := eventById(events, "02AA01AC000000001_hot_water_boost")
	if assert.NotNil(boost) {
		assert.False(boost.(domain.SwitchSensorUpdateEvent).Value, "boost switch off")
	}
}

func TestDeviceStateToUpdateEvents(t *testing.T) {
	assert := assert.New(t)

	state := nest.DeviceState{
		DeviceID: "02AA01AC000000001",
		Thermostat: &nest.ThermostatState{
			CurrentTemperature: 21.5,
			TargetTemperature:  22.0,
			Action:             "heating",
		},
		WaterHeater: &nest.WaterHeaterState{
			TimerMode: "schedule",
		},
	}

	events := DeviceStateToUpdateEvents(state, 1700000000)

	assert.NotNil(eventById(events, "02AA01AC000000001_current_temperature"))
	assert.NotNil(eventById(events, "02AA01AC000000001_hot_water_mode"))
	assert.NotNil(eventById(events, "02AA01AC000000001_hvac_action"))
}
