package nest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type appLaunchRequest struct {
	KnownBucketTypes []string `json:"known_bucket_types"`
}

func newFakeNestServer(t *testing.T, putCalls *atomic.Int32, lastPut *atomic.Value) *httptest.Server {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/0.1/user/test-user/app_launch", func(w http.ResponseWriter, r *http.Request) {
		var req appLaunchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Basic test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, appLaunchFixture(server.URL, req.KnownBucketTypes))
	})
	mux.HandleFunc("/czfe/v5/put", func(w http.ResponseWriter, r *http.Request) {
		putCalls.Add(1)
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		lastPut.Store(payload)
		fmt.Fprint(w, `{}`)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func appLaunchFixture(baseURL string, bucketTypes []string) string {
	if len(bucketTypes) == 1 && bucketTypes[0] == "buckets" {
		return fmt.Sprintf(`{
			"service_urls": {"urls": {"czfe_url": "%s/czfe"}},
			"updated_buckets": [
				{"object_key": "buckets.test-user", "value": {"buckets": [
					"device.0001", "shared.0001", "kryptonite.0002", "topaz.0003"
				]}}
			]
		}`, baseURL)
	}
	if len(bucketTypes) == 1 && bucketTypes[0] == "where" {
		return `{
			"updated_buckets": [
				{"object_key": "where.test-user", "value": {"wheres": [
					{"where_id": "w1", "name": "Hallway"},
					{"where_id": "w2", "name": "Bedroom"},
					{"where_id": "w3", "name": "Landing"}
				]}}
			]
		}`
	}
	return `{
		"updated_buckets": [
			{"object_key": "device.0001", "value": {
				"where_id": "w1", "current_version": "6.2-22",
				"has_hot_water_control": true,
				"current_humidity": 48.0, "battery_level": 3.9,
				"hot_water_active": true, "hot_water_boiling_state": true,
				"hot_water_mode": "schedule", "hot_water_away_enabled": false,
				"hot_water_boost_time_to_end": 1700000000.0,
				"eco": {"mode": "schedule"}
			}},
			{"object_key": "shared.0001", "value": {
				"current_temperature": 20.5, "target_temperature": 21.0,
				"can_heat": true, "can_cool": false,
				"target_temperature_type": "heat",
				"hvac_heater_state": true, "hvac_ac_state": false
			}},
			{"object_key": "kryptonite.0002", "value": {
				"where_id": "w2", "current_temperature": 19.2, "battery_level": 92.0
			}},
			{"object_key": "topaz.0003", "value": {
				"where_id": "w3", "model": "Topaz-2.7",
				"kl_software_version": "3.2",
				"co_status": 0.0, "smoke_status": 3.0,
				"battery_health_state": 1.0, "battery_level": 98.0
			}}
		]
	}`
}

func newTestRestClient(server *httptest.Server) Client {
	return CreateRestClient(ClientParams{
		UserID:      "test-user",
		AccessToken: "test-token",
		APIURL:      server.URL,
	}, 5*time.Second, zap.NewNop())
}

func TestGetDevices(t *testing.T) {
	assert := assert.New(t)

	var putCalls atomic.Int32
	var lastPut atomic.Value
	server := newFakeNestServer(t, &putCalls, &lastPut)
	client := newTestRestClient(server)

	devices, err := client.GetDevices()
	assert.Nil(err)
	assert.Len(devices, 3)

	byID := map[string]Device{}
	for _, d := range devices {
		byID[d.ID] = d
	}
	thermostat := byID["0001"]
	assert.Equal(DEVICE_KIND_THERMOSTAT, thermostat.Kind)
	assert.True(thermostat.HasHotWaterControl)
	assert.Equal("Hallway Thermostat", thermostat.Name)
	assert.Equal("6.2-22", thermostat.SoftwareVersion)

	sensor := byID["0002"]
	assert.Equal(DEVICE_KIND_TEMP_SENSOR, sensor.Kind)
	assert.Equal("Bedroom Temperature", sensor.Name)

	protect := byID["0003"]
	assert.Equal(DEVICE_KIND_PROTECT, protect.Kind)
	assert.Equal("Topaz-2.7", protect.Model)
}

func TestGetDeviceStates(t *testing.T) {
	assert := assert.New(t)

	var putCalls atomic.Int32
	var lastPut atomic.Value
	server := newFakeNestServer(t, &putCalls, &lastPut)
	client := newTestRestClient(server)

	_, err := client.GetDevices()
	assert.Nil(err)

	states, err := client.GetDeviceStates()
	assert.Nil(err)
	assert.Len(states, 3)

	byID := map[string]DeviceState{}
	for _, s := range states {
		byID[s.DeviceID] = s
	}

	th := byID["0001"]
	assert.NotNil(th.Thermostat)
	assert.Equal(20.5, th.Thermostat.CurrentTemperature)
	assert.Equal(21.0, th.Thermostat.TargetTemperature)
	assert.Equal("heating", th.Thermostat.Action)
	assert.False(th.Thermostat.Eco)
	assert.NotNil(th.WaterHeater)
	assert.True(th.WaterHeater.Boiling)
	assert.Equal("schedule", th.WaterHeater.TimerMode)
	assert.Equal(int64(1700000000), th.WaterHeater.BoostTimeToEnd)

	ts := byID["0002"]
	assert.NotNil(ts.TempSensor)
	assert.Equal(19.2, ts.TempSensor.Temperature)

	pt := byID["0003"]
	assert.NotNil(pt.Protect)
	assert.Equal("Ok", pt.Protect.CoStatus)
	assert.Equal("Emergency", pt.Protect.SmokeStatus)
	assert.Equal("Warning", pt.Protect.BatteryHealthState)
}

func TestGetDeviceStatesRequiresInventory(t *testing.T) {
	assert := assert.New(t)

	var putCalls atomic.Int32
	var lastPut atomic.Value
	server := newFakeNestServer(t, &putCalls, &lastPut)
	client := newTestRestClient(server)

	_, err := client.GetDeviceStates()
	assert.NotNil(err)
}

func TestHotWaterControlWrites(t *testing.T) {
	assert := assert.New(t)

	var putCalls atomic.Int32
	var lastPut atomic.Value
	server := newFakeNestServer(t, &putCalls, &lastPut)
	client := newTestRestClient(server)

	// control needs the czfe url from discovery
	err := client.HotWaterSetBoost("0001", 1700000123)
	assert.NotNil(err)

	_, err = client.GetDevices()
	assert.Nil(err)

	err = client.HotWaterSetBoost("0001", 1700000123)
	assert.Nil(err)
	assert.Equal(int32(1), putCalls.Load())

	payload := lastPut.Load().(map[string]any)
	objects := payload["objects"].([]any)
	assert.Len(objects, 1)
	object := objects[0].(map[string]any)
	assert.Equal("device.0001", object["object_key"])
	assert.Equal("MERGE", object["op"])
	value := object["value"].(map[string]any)
	assert.Equal(1700000123.0, value["hot_water_boost_time_to_end"])

	err = client.HotWaterSetMode("0001", "off")
	assert.Nil(err)
	payload = lastPut.Load().(map[string]any)
	value = payload["objects"].([]any)[0].(map[string]any)["value"].(map[string]any)
	assert.Equal("off", value["hot_water_mode"])

	err = client.HotWaterSetMode("0001", "bogus")
	assert.NotNil(err)

	err = client.ThermostatSetTemperature("0001", 19.5)
	assert.Nil(err)
	payload = lastPut.Load().(map[string]any)
	object = payload["objects"].([]any)[0].(map[string]any)
	assert.Equal("shared.0001", object["object_key"])

	err = client.ThermostatSetEco("0001", true)
	assert.Nil(err)
	payload = lastPut.Load().(map[string]any)
	value = payload["objects"].([]any)[0].(map[string]any)["value"].(map[string]any)
	eco := value["eco"].(map[string]any)
	assert.Equal("manual-eco", eco["mode"])
}

func TestGoogleLoginFlow(t *testing.T) {
	assert := assert.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/issue_token", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("cookie") != "test-cookie" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"access_token": "google-token"}`)
	})
	mux.HandleFunc("/v1/issue_jwt", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer google-token" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"jwt": "nest-jwt", "claims": {"subject": {"nestId": {"id": "user-42"}}}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := CreateRestClient(ClientParams{
		IssueToken: server.URL + "/issue_token",
		Cookie:     "test-cookie",
		APIURL:     server.URL,
		JWTURL:     server.URL + "/v1/issue_jwt",
	}, 5*time.Second, zap.NewNop())

	err := client.Login()
	assert.Nil(err)

	rc := client.(*restClient)
	assert.Equal("user-42", rc.userID)
	assert.Equal("nest-jwt", rc.accessToken)
}
