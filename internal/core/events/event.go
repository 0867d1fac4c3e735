package events

import (
	. "github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/pkg/nest"
)

// DeviceStateToUpdateEvents maps one polled device state to sensor update
// events. nowUnix is used to compute the boost time remaining.
func DeviceStateToUpdateEvents(state nest.DeviceState, nowUnix int64) []any {
	var events []any
	if state.Thermostat != nil {
		events = append(events, ThermostatStateToUpdateEvents(state.DeviceID, state.Thermostat)...)
	}
	if state.WaterHeater != nil {
		events = append(events, WaterHeaterStateToUpdateEvents(state.DeviceID, state.WaterHeater, nowUnix)...)
	}
	if state.TempSensor != nil {
		events = append(events, TempSensorStateToUpdateEvents(state.DeviceID, state.TempSensor)...)
	}
	if state.Protect != nil {
		events = append(events, ProtectStateToUpdateEvents(state.DeviceID, state.Protect)...)
	}
	return events
}

func ThermostatStateToUpdateEvents(deviceID string, st *nest.ThermostatState) []any {
	var events []any

	// Current temperature
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_CURRENT_TEMPERATURE),
		},
		Value:    st.CurrentTemperature,
		Decimals: 1,
	})
	// Target temperature
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_TARGET_TEMPERATURE),
		},
		Value:    st.TargetTemperature,
		Decimals: 1,
	})
	// Humidity
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_HUMIDITY),
		},
		Value:    st.CurrentHumidity,
		Decimals: 0,
	})
	// Battery voltage
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_BATTERY_LEVEL),
		},
		Value:    st.BatteryLevel,
		Decimals: 2,
	})
	// HVAC action
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_HVAC_ACTION),
		},
		Value: st.Action,
	})
	// Eco switch state
	events = append(events, SwitchSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SWITCH_ECO),
		},
		Value: st.Eco,
	})
	// Target temperature input number state
	events = append(events, InputNumberSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, INPUT_NUMBER_TARGET_TEMPERATURE),
		},
		Value:    st.TargetTemperature,
		Decimals: 1,
	})

	return events
}

func WaterHeaterStateToUpdateEvents(deviceID string, st *nest.WaterHeaterState, nowUnix int64) []any {
	var events []any

	// Heating
	events = append(events, BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_HOT_WATER_HEATING),
		},
		Value: st.Active,
	})
	// Boiling
	events = append(events, BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_HOT_WATER_BOILING),
		},
		Value: st.Boiling,
	})
	// Timer mode
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_HOT_WATER_MODE),
		},
		Value: st.TimerMode,
	})
	// Boost time remaining
	remaining := st.BoostTimeToEnd - nowUnix
	if st.BoostTimeToEnd <= 0 || remaining < 0 {
		remaining = 0
	}
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_BOOST_TIME_REMAINING),
		},
		Value:    float64(remaining),
		Decimals: 0,
	})
	// Boost switch state
	events = append(events, SwitchSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SWITCH_HOT_WATER_BOOST),
		},
		Value: remaining > 0,
	})
	// Away switch state
	events = append(events, SwitchSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SWITCH_HOT_WATER_AWAY),
		},
		Value: st.AwaySetting,
	})

	return events
}

func TempSensorStateToUpdateEvents(deviceID string, st *nest.TempSensorState) []any {
	var events []any

	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_CURRENT_TEMPERATURE),
		},
		Value:    st.Temperature,
		Decimals: 1,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_BATTERY_LEVEL),
		},
		Value:    st.BatteryLevel,
		Decimals: 0,
	})

	return events
}

func ProtectStateToUpdateEvents(deviceID string, st *nest.ProtectState) []any {
	var events []any

	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_CO_STATUS),
		},
		Value: st.CoStatus,
	})
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_SMOKE_STATUS),
		},
		Value: st.SmokeStatus,
	})
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_BATTERY_HEALTH),
		},
		Value: st.BatteryHealthState,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: sensorId(deviceID, SENSOR_BATTERY_LEVEL),
		},
		Value: st.BatteryLevel,
	})

	return events
}
