package nest

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Control writes go through the czfe service as MERGE operations on the
// device/shared objects, same as the Nest web app does.

func (c *restClient) HotWaterSetBoost(deviceID string, endUnix int64) error {
	return c.putObject("device."+deviceID, map[string]any{
		"hot_water_boost_time_to_end": endUnix,
	})
}

func (c *restClient) HotWaterSetMode(deviceID string, mode string) error {
	if mode != "schedule" && mode != "off" {
		return fmt.Errorf("nest: invalid hot water mode %q", mode)
	}
	return c.putObject("device."+deviceID, map[string]any{
		"hot_water_mode": mode,
	})
}

func (c *restClient) HotWaterSetAway(deviceID string, away bool) error {
	return c.putObject("device."+deviceID, map[string]any{
		"hot_water_away_enabled": away,
	})
}

func (c *restClient) ThermostatSetTemperature(deviceID string, celsius float64) error {
	return c.putObject("shared."+deviceID, map[string]any{
		"target_temperature": celsius,
	})
}

func (c *restClient) ThermostatSetEco(deviceID string, enable bool) error {
	mode := "schedule"
	if enable {
		mode = "manual-eco"
	}
	return c.putObject("device."+deviceID, map[string]any{
		"eco": map[string]any{"mode": mode},
	})
}

func (c *restClient) putObject(objectKey string, value map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.czfeURL == "" {
		return errors.New("nest: czfe url unknown, call GetDevices first")
	}
	payload := map[string]any{
		"objects": []any{
			map[string]any{
				"object_key": objectKey,
				"op":         "MERGE",
				"value":      value,
			},
		},
	}
	c.logger.Debug("put object", zap.String("object_key", objectKey))
	_, err := c.authedRequest(http.MethodPost, c.czfeURL+"/v5/put", payload)
	return err
}
