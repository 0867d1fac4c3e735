package nest

// TestClient is a canned in-memory Client for tests. Control calls are
// recorded so tests can assert on them.
type TestClient struct {
	LoginCalls int

	BoostCalls []BoostCall
	ModeCalls  []ModeCall
	AwayCalls  []AwayCall
	TempCalls  []TempCall
	EcoCalls   []EcoCall

	// FailControl makes every control write return this error.
	FailControl error
}

type BoostCall struct {
	DeviceID string
	EndUnix  int64
}

type ModeCall struct {
	DeviceID string
	Mode     string
}

type AwayCall struct {
	DeviceID string
	Away     bool
}

type TempCall struct {
	DeviceID string
	Celsius  float64
}

type EcoCall struct {
	DeviceID string
	Enable   bool
}

func CreateTestClient() *TestClient {
	return &TestClient{}
}

func (c *TestClient) Login() error {
	c.LoginCalls++
	return nil
}

func (c *TestClient) Close() error {
	return nil
}

func (c *TestClient) GetDevices() ([]Device, error) {
	return []Device{
		{
			ID:                 "02AA01AC000000001",
			Kind:               DEVICE_KIND_THERMOSTAT,
			Name:               "Hallway (upstairs) Thermostat",
			Model:              "Thermostat",
			SoftwareVersion:    "6.2-22",
			WhereName:          "Hallway",
			HasHotWaterControl: true,
		},
		{
			ID:              "18B4300000000001",
			Kind:            DEVICE_KIND_TEMP_SENSOR,
			Name:            "Bedroom Temperature",
			Model:           "Temperature Sensor",
			SoftwareVersion: "1.0.1",
			WhereName:       "Bedroom",
		},
		{
			ID:              "05AA01AC000000001",
			Kind:            DEVICE_KIND_PROTECT,
			Name:            "Landing Protect",
			Model:           "Topaz-2.7",
			SoftwareVersion: "3.2",
			WhereName:       "Landing",
		},
	}, nil
}

func (c *TestClient) GetDeviceStates() ([]DeviceState, error) {
	return []DeviceState{
		{
			DeviceID: "02AA01AC000000001",
			Thermostat: &ThermostatState{
				CurrentTemperature: 20.5,
				TargetTemperature:  21.0,
				Mode:               "heat",
				Action:             "heating",
				CanHeat:            true,
				CurrentHumidity:    48,
				Eco:                false,
				BatteryLevel:       3.9,
			},
			WaterHeater: &WaterHeaterState{
				Active:         true,
				Boiling:        true,
				TimerMode:      "schedule",
				AwaySetting:    false,
				AwayActive:     false,
				BoostTimeToEnd: 0,
			},
		},
		{
			DeviceID: "18B4300000000001",
			TempSensor: &TempSensorState{
				Temperature:  19.2,
				BatteryLevel: 92,
			},
		},
		{
			DeviceID: "05AA01AC000000001",
			Protect: &ProtectState{
				CoStatus:           "Ok",
				SmokeStatus:        "Ok",
				BatteryHealthState: "Ok",
				BatteryLevel:       98,
			},
		},
	}, nil
}

func (c *TestClient) HotWaterSetBoost(deviceID string, endUnix int64) error {
	if c.FailControl != nil {
		return c.FailControl
	}
	c.BoostCalls = append(c.BoostCalls, BoostCall{DeviceID: deviceID, EndUnix: endUnix})
	return nil
}

func (c *TestClient) HotWaterSetMode(deviceID string, mode string) error {
	if c.FailControl != nil {
		return c.FailControl
	}
	c.ModeCalls = append(c.ModeCalls, ModeCall{DeviceID: deviceID, Mode: mode})
	return nil
}

func (c *TestClient) HotWaterSetAway(deviceID string, away bool) error {
	if c.FailControl != nil {
		return c.FailControl
	}
	c.AwayCalls = append(c.AwayCalls, AwayCall{DeviceID: deviceID, Away: away})
	return nil
}

func (c *TestClient) ThermostatSetTemperature(deviceID string, celsius float64) error {
	if c.FailControl != nil {
		return c.FailControl
	}
	c.TempCalls = append(c.TempCalls, TempCall{DeviceID: deviceID, Celsius: celsius})
	return nil
}

func (c *TestClient) ThermostatSetEco(deviceID string, enable bool) error {
	if c.FailControl != nil {
		return c.FailControl
	}
	c.EcoCalls = append(c.EcoCalls, EcoCall{DeviceID: deviceID, Enable: enable})
	return nil
}
