package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/internal/core/service"
	"github.com/badnest/badnest2mqtt/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testManifest = `
boost_hot_water:
  name: Boost hot water
  target:
    entity:
      domain: water_heater
      integration: badnest
  fields:
    time_period:
      required: false
      default: 30
      selector:
        number:
          min: 1
          max: 240
          step: 1
    boost_mode:
      required: true
      selector:
        boolean: {}

cancel_boost_hot_water:
  name: Cancel hot water boost
  target:
    entity:
      domain: water_heater
      integration: badnest
`

const testTranslations = `{
  "services": {
    "boost_hot_water": {
      "name": "Boost hot water",
      "fields": {
        "time_period": {"name": "Time period"},
        "boost_mode": {"name": "Boost mode"}
      }
    },
    "cancel_boost_hot_water": {"name": "Cancel hot water boost"}
  }
}`

type recordingController struct {
	boosts  []int64
	cancels int
}

func (c *recordingController) BoostHotWater(_ context.Context, deviceID string, endUnix int64) error {
	c.boosts = append(c.boosts, endUnix)
	return nil
}

func (c *recordingController) CancelBoostHotWater(_ context.Context, deviceID string) error {
	c.cancels++
	return nil
}

func newTestServer(t *testing.T) (*Server, *recordingController) {
	t.Helper()

	registry, err := service.ParseManifest([]byte(testManifest))
	require.NoError(t, err)

	catalog, err := i18n.ParseCatalog([]byte(testTranslations))
	require.NoError(t, err)

	entities := domain.NewEntityTable([]domain.Entity{
		{
			ID:          "water_heater.02AA01AC000000001",
			Domain:      domain.ENTITY_DOMAIN_WATER_HEATER,
			Integration: domain.INTEGRATION_ID,
			DeviceID:    "02AA01AC000000001",
		},
	})

	controller := &recordingController{}
	logger := zap.Must(zap.NewDevelopment())
	dispatcher := service.NewDispatcher(registry, entities, controller, logger)

	return &Server{
		dispatcher: dispatcher,
		registry:   registry,
		catalog:    catalog,
	}, controller
}

func TestListServices(t *testing.T) {
	assert := assert.New(t)

	s, _ := newTestServer(t)
	handler := s.RegisterRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)

	var services []serviceInfo
	err := json.Unmarshal(rec.Body.Bytes(), &services)
	require.NoError(t, err)
	require.Len(t, services, 2)

	byID := map[string]serviceInfo{}
	for _, svc := range services {
		byID[svc.ID] = svc
	}
	boost := byID["boost_hot_water"]
	assert.Equal("Boost hot water", boost.Name)
	assert.Equal("water_heater", boost.Target)
	require.Contains(t, boost.Fields, "time_period")
	assert.False(boost.Fields["time_period"].Required)
	assert.Equal("number", boost.Fields["time_period"].Selector)
	require.Contains(t, boost.Fields, "boost_mode")
	assert.True(boost.Fields["boost_mode"].Required)
}

func TestCallServiceBoost(t *testing.T) {
	assert := assert.New(t)

	s, controller := newTestServer(t)
	handler := s.RegisterRoutes()

	body := `{"target": "water_heater.02AA01AC000000001", "data": {"boost_mode": true, "time_period": 90}}`
	req := httptest.NewRequest(http.MethodPost, "/api/services/badnest/boost_hot_water", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.Len(controller.boosts, 1)
	assert.Equal(0, controller.cancels)
}

func TestCallServiceCancel(t *testing.T) {
	assert := assert.New(t)

	s, controller := newTestServer(t)
	handler := s.RegisterRoutes()

	body := `{"target": "water_heater.02AA01AC000000001"}`
	req := httptest.NewRequest(http.MethodPost, "/api/services/badnest/cancel_boost_hot_water", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal(1, controller.cancels)
}

func TestCallServiceValidationErrors(t *testing.T) {

	cases := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{
			name:       "unknown service",
			path:       "/api/services/badnest/make_coffee",
			body:       `{"target": "water_heater.02AA01AC000000001", "data": {}}`,
			wantStatus: http.StatusNotFound,
			wantKind:   "unknown_service",
		},
		{
			name:       "unknown domain",
			path:       "/api/services/other/boost_hot_water",
			body:       `{"target": "water_heater.02AA01AC000000001", "data": {}}`,
			wantStatus: http.StatusNotFound,
			wantKind:   "unknown_service",
		},
		{
			name:       "target mismatch",
			path:       "/api/services/badnest/boost_hot_water",
			body:       `{"target": "water_heater.unknown", "data": {"boost_mode": true}}`,
			wantStatus: http.StatusNotFound,
			wantKind:   "target_mismatch",
		},
		{
			name:       "missing required field",
			path:       "/api/services/badnest/boost_hot_water",
			body:       `{"target": "water_heater.02AA01AC000000001", "data": {"time_period": 30}}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "missing_required_field",
		},
		{
			name:       "field out of range",
			path:       "/api/services/badnest/boost_hot_water",
			body:       `{"target": "water_heater.02AA01AC000000001", "data": {"boost_mode": true, "time_period": 500}}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "field_out_of_range",
		},
		{
			name:       "invalid field type",
			path:       "/api/services/badnest/boost_hot_water",
			body:       `{"target": "water_heater.02AA01AC000000001", "data": {"boost_mode": true, "time_period": "soon"}}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   "invalid_field_type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s, controller := newTestServer(t)
			handler := s.RegisterRoutes()

			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(tc.wantStatus, rec.Code)

			var resp serviceErrorResponse
			err := json.Unmarshal(rec.Body.Bytes(), &resp)
			require.NoError(t, err)
			assert.Equal(tc.wantKind, resp.Kind)

			assert.Empty(controller.boosts)
			assert.Equal(0, controller.cancels)
		})
	}
}
