package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/pkg/nest"

	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE = "bridge"

	SENSOR_CURRENT_TEMPERATURE = "current_temperature"
	SENSOR_TARGET_TEMPERATURE  = "target_temperature"
	SENSOR_HUMIDITY            = "humidity"
	SENSOR_BATTERY_LEVEL       = "battery_level"
	SENSOR_HVAC_ACTION         = "hvac_action"

	SENSOR_HOT_WATER_HEATING    = "hot_water_heating"
	SENSOR_HOT_WATER_BOILING    = "hot_water_boiling"
	SENSOR_HOT_WATER_MODE       = "hot_water_mode"
	SENSOR_BOOST_TIME_REMAINING = "boost_time_remaining"

	SENSOR_CO_STATUS      = "co_status"
	SENSOR_SMOKE_STATUS   = "smoke_status"
	SENSOR_BATTERY_HEALTH = "battery_health"

	SWITCH_HOT_WATER_BOOST = "hot_water_boost"
	SWITCH_HOT_WATER_AWAY  = "hot_water_away"
	SWITCH_ECO             = "eco"

	INPUT_NUMBER_TARGET_TEMPERATURE = "target_temperature"

	TARGET_TEMPERATURE_MIN  = 9
	TARGET_TEMPERATURE_MAX  = 32
	TARGET_TEMPERATURE_STEP = 0.5

	STATE_CLASS_MEASUREMENT   = "measurement"
	DEVICE_CLASS_BATTERY      = "battery"
	DEVICE_CLASS_TEMPERATURE  = "temperature"
	DEVICE_CLASS_HUMIDITY     = "humidity"
	DEVICE_CLASS_HEAT         = "heat"
	DEVICE_CLASS_RUNNING      = "running"
	DEVICE_CLASS_DURATION     = "duration"
	DEVICE_CLASS_CONNECTIVITY = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC   = "diagnostic"
	SENSOR_TYPE_SENSOR        = "sensor"
	SENSOR_TYPE_BINARY        = "binary_sensor"
	INPUT_NUMBER_MODE_BOX     = "box"
)

func BridgeDevice(baseTopic string) domain.Device {
	return domain.Device{
		Id:           fmt.Sprintf("badnest_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "badnest",
		Model:        "Badnest",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Badnest %s", md5HashShort(baseTopic)),
	}
}

func NestDevice(device nest.Device) domain.Device {
	return domain.Device{
		Id:           fmt.Sprintf("bn_%s", md5HashShort(device.ID)),
		Version:      device.SoftwareVersion,
		Manufacturer: "Nest",
		Model:        device.Model,
		Name:         device.Name,
	}
}

func BridgeSensors(bridgeDevice domain.Device) []domain.GenericSensor {

	var sensors []domain.GenericSensor

	// Bridge connection state
	sensors = append(sensors, domain.GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

// DeviceDiscovery builds every discoverable component for a Nest device.
func DeviceDiscovery(device nest.Device) ([]domain.GenericSensor, []domain.GenericSwitch, []domain.GenericInputNumber) {
	haDevice := NestDevice(device)
	switch device.Kind {
	case nest.DEVICE_KIND_THERMOSTAT:
		sensors := ThermostatSensors(haDevice, device)
		switches := ThermostatSwitches(haDevice, device)
		numbers := ThermostatInputNumbers(haDevice, device)
		if device.HasHotWaterControl {
			sensors = append(sensors, WaterHeaterSensors(haDevice, device)...)
			switches = append(switches, WaterHeaterSwitches(haDevice, device)...)
		}
		return sensors, switches, numbers
	case nest.DEVICE_KIND_TEMP_SENSOR:
		return TempSensorSensors(haDevice, device), nil, nil
	case nest.DEVICE_KIND_PROTECT:
		return ProtectSensors(haDevice, device), nil, nil
	}
	return nil, nil, nil
}

func ThermostatSensors(haDevice domain.Device, device nest.Device) []domain.GenericSensor {

	var sensors []domain.GenericSensor

	// Current temperature
	sensors = append(sensors, domain.GenericSensor{
		Device:            haDevice,
		Id:                sensorId(device.ID, SENSOR_CURRENT_TEMPERATURE),
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Current temperature",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_TEMPERATURE,
		UnitOfMeasurement: "°C",
		UniqueId:          uniqueId(haDevice.Id, SENSOR_CURRENT_TEMPERATURE),
	})

	// Target temperature
	sensors = append(sensors, domain.GenericSensor{
		Device:            haDevice,
		Id:                sensorId(device.ID, SENSOR_TARGET_TEMPERATURE),
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Target temperature",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_TEMPERATURE,
		UnitOfMeasurement: "°C",
		UniqueId:          uniqueId(haDevice.Id, SENSOR_TARGET_TEMPERATURE),
	})

	// Humidity
	sensors = append(sensors, domain.GenericSensor{
		Device:            haDevice,
		Id:                sensorId(device.ID, SENSOR_HUMIDITY),
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Humidity",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_HUMIDITY,
		UnitOfMeasurement: "%",
		UniqueId:          uniqueId(haDevice.Id, SENSOR_HUMIDITY),
	})

	// Battery voltage
	sensors = append(sensors, domain.GenericSensor{
		Device:            haDevice,
		Id:                sensorId(device.ID, SENSOR_BATTERY_LEVEL),
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Battery level",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: "V",
		EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault:  optionalBool(false),
		UniqueId:          uniqueId(haDevice.Id, SENSOR_BATTERY_LEVEL),
	})

	// HVAC action
	sensors = append(sensors, domain.GenericSensor{
		Device:     haDevice,
		Id:         sensorId(device.ID, SENSOR_HVAC_ACTION),
		SensorType: SENSOR_TYPE_SENSOR,
		Name:       "HVAC action",
		UniqueId:   uniqueId(haDevice.Id, SENSOR_HVAC_ACTION),
	})

	return sensors
}

func ThermostatSwitches(haDevice domain.Device, device nest.Device) []domain.GenericSwitch {

	var switches []domain.GenericSwitch

	// Eco mode
	switches = append(switches, domain.GenericSwitch{
		Device:   haDevice,
		Id:       sensorId(device.ID, SWITCH_ECO),
		Name:     "Eco mode",
		UniqueId: uniqueId(haDevice.Id, SWITCH_ECO),
		Icon:     "mdi:leaf",
	})

	return switches
}

func ThermostatInputNumbers(haDevice domain.Device, device nest.Device) []domain.GenericInputNumber {

	var inputNumbers []domain.GenericInputNumber

	// Target temperature
	inputNumbers = append(inputNumbers, domain.GenericInputNumber{
		Device:   haDevice,
		Id:       sensorId(device.ID, INPUT_NUMBER_TARGET_TEMPERATURE),
		Name:     "Set target temperature",
		UniqueId: uniqueId(haDevice.Id, "set_"+INPUT_NUMBER_TARGET_TEMPERATURE),
		Icon:     "mdi:thermometer",
		Min:      TARGET_TEMPERATURE_MIN,
		Max:      TARGET_TEMPERATURE_MAX,
		Step:     TARGET_TEMPERATURE_STEP,
		Mode:     INPUT_NUMBER_MODE_BOX,
	})

	return inputNumbers
}

func WaterHeaterSensors(haDevice domain.Device, device nest.Device) []domain.GenericSensor {

	var sensors []domain.GenericSensor

	// Hot water heating
	sensors = append(sensors, domain.GenericSensor{
		Device:      haDevice,
		Id:          sensorId(device.ID, SENSOR_HOT_WATER_HEATING),
		SensorType:  SENSOR_TYPE_BINARY,
		Name:        "Hot water heating",
		DeviceClass: DEVICE_CLASS_HEAT,
		UniqueId:    uniqueId(haDevice.Id, SENSOR_HOT_WATER_HEATING),
	})

	// Hot water boiling
	sensors = append(sensors, domain.GenericSensor{
		Device:      haDevice,
		Id:          sensorId(device.ID, SENSOR_HOT_WATER_BOILING),
		SensorType:  SENSOR_TYPE_BINARY,
		Name:        "Hot water boiling",
		DeviceClass: DEVICE_CLASS_RUNNING,
		UniqueId:    uniqueId(haDevice.Id, SENSOR_HOT_WATER_BOILING),
	})

	// Hot water timer mode
	sensors = append(sensors, domain.GenericSensor{
		Device:     haDevice,
		Id:         sensorId(device.ID, SENSOR_HOT_WATER_MODE),
		SensorType: SENSOR_TYPE_SENSOR,
		Name:       "Hot water mode",
		UniqueId:   uniqueId(haDevice.Id, SENSOR_HOT_WATER_MODE),
	})

	// Boost time remaining
	sensors = append(sensors, domain.GenericSensor{
		Device:            haDevice,
		Id:                sensorId(device.ID, SENSOR_BOOST_TIME_REMAINING),
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Boost time remaining",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_DURATION,
		UnitOfMeasurement: "s",
		Icon:              "mdi:timer-sand",
		UniqueId:          uniqueId(haDevice.Id, SENSOR_BOOST_TIME_REMAINING),
	})

	return sensors
}

func WaterHeaterSwitches(haDevice domain.Device, device nest.Device) []domain.GenericSwitch {

	var switches []domain.GenericSwitch

	// Hot water boost
	switches = append(switches, domain.GenericSwitch{
		Device:   haDevice,
		Id:       sensorId(device.ID, SWITCH_HOT_WATER_BOOST),
		Name:     "Hot water boost",
		UniqueId: uniqueId(haDevice.Id, SWITCH_HOT_WATER_BOOST),
		Icon:     "mdi:water-boiler",
	})
	// Hot water away
	switches = append(switches, domain.GenericSwitch{
		Device:   haDevice,
		Id:       sensorId(device.ID, SWITCH_HOT_WATER_AWAY),
		Name:     "Hot water away",
		UniqueId: uniqueId(haDevice.Id, SWITCH_HOT_WATER_AWAY),
		Icon:     "mdi:home-export-outline",
	})

	return switches
}

func TempSensorSensors(haDevice domain.Device, device nest.Device) []domain.GenericSensor {

	var sensors []domain.GenericSensor

	// Temperature
	sensors = append(sensors, domain.GenericSensor{
		Device:            haDevice,
		Id:                sensorId(device.ID, SENSOR_CURRENT_TEMPERATURE),
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Temperature",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_TEMPERATURE,
		UnitOfMeasurement: "°C",
		UniqueId:          uniqueId(haDevice.Id, SENSOR_CURRENT_TEMPERATURE),
	})

	// Battery
	sensors = append(sensors, domain.GenericSensor{
		Device:            haDevice,
		Id:                sensorId(device.ID, SENSOR_BATTERY_LEVEL),
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Battery level",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_BATTERY,
		UnitOfMeasurement: "%",
		EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:          uniqueId(haDevice.Id, SENSOR_BATTERY_LEVEL),
	})

	return sensors
}

func ProtectSensors(haDevice domain.Device, device nest.Device) []domain.GenericSensor {

	var sensors []domain.GenericSensor

	// CO status
	sensors = append(sensors, domain.GenericSensor{
		Device:     haDevice,
		Id:         sensorId(device.ID, SENSOR_CO_STATUS),
		SensorType: SENSOR_TYPE_SENSOR,
		Name:       "CO status",
		Icon:       "mdi:molecule-co",
		UniqueId:   uniqueId(haDevice.Id, SENSOR_CO_STATUS),
	})

	// Smoke status
	sensors = append(sensors, domain.GenericSensor{
		Device:     haDevice,
		Id:         sensorId(device.ID, SENSOR_SMOKE_STATUS),
		SensorType: SENSOR_TYPE_SENSOR,
		Name:       "Smoke status",
		Icon:       "mdi:smoke-detector",
		UniqueId:   uniqueId(haDevice.Id, SENSOR_SMOKE_STATUS),
	})

	// Battery health
	sensors = append(sensors, domain.GenericSensor{
		Device:         haDevice,
		Id:             sensorId(device.ID, SENSOR_BATTERY_HEALTH),
		SensorType:     SENSOR_TYPE_SENSOR,
		Name:           "Battery health",
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(haDevice.Id, SENSOR_BATTERY_HEALTH),
	})

	// Battery level
	sensors = append(sensors, domain.GenericSensor{
		Device:            haDevice,
		Id:                sensorId(device.ID, SENSOR_BATTERY_LEVEL),
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Battery level",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_BATTERY,
		UnitOfMeasurement: "%",
		EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:          uniqueId(haDevice.Id, SENSOR_BATTERY_LEVEL),
	})

	return sensors
}

func sensorId(deviceID, suffix string) string {
	return fmt.Sprintf("%s_%s", deviceID, suffix)
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}

func optionalBool(value bool) *bool {
	return &value
}
