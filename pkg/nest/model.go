package nest

const (
	DEVICE_KIND_THERMOSTAT  = "thermostat"
	DEVICE_KIND_TEMP_SENSOR = "temperature_sensor"
	DEVICE_KIND_PROTECT     = "protect"
)

// Device is the static inventory entry for a device discovered through
// app_launch buckets. A thermostat with HasHotWaterControl also acts as a
// hot water controller.
type Device struct {
	ID                 string
	Kind               string
	Name               string
	Model              string
	SoftwareVersion    string
	WhereName          string
	HasHotWaterControl bool
}

type ThermostatState struct {
	CurrentTemperature float64
	TargetTemperature  float64
	Mode               string
	Action             string
	CanHeat            bool
	CanCool            bool
	CurrentHumidity    float64
	TargetHumidity     float64
	HasFan             bool
	FanTimerTimeout    int64
	Eco                bool
	BatteryLevel       float64
}

type WaterHeaterState struct {
	Active         bool
	Boiling        bool
	TimerMode      string // "schedule" or "off"
	AwaySetting    bool
	AwayActive     bool
	BoostTimeToEnd int64 // unix seconds, 0 when no boost is running
}

type TempSensorState struct {
	Temperature  float64
	BatteryLevel float64
}

type ProtectState struct {
	CoStatus           string
	SmokeStatus        string
	BatteryHealthState string
	BatteryLevel       float64
}

// DeviceState aggregates the per-kind snapshots for a single device.
// Only the pointers matching the device kind are set; WaterHeater is set
// for thermostats with hot water control.
type DeviceState struct {
	DeviceID    string
	Thermostat  *ThermostatState
	WaterHeater *WaterHeaterState
	TempSensor  *TempSensorState
	Protect     *ProtectState
}

func protectStatusToString(value int) string {
	switch value {
	case 0:
		return "Ok"
	case 1, 2:
		return "Warning"
	case 3:
		return "Emergency"
	default:
		return "Unknown"
	}
}
