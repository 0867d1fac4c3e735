package service

import (
	"testing"

	"github.com/badnest/badnest2mqtt/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
boost_hot_water:
  name: Boost hot water
  description: Turn the hot water boost mode on or off for a fixed time period.
  target:
    entity:
      domain: water_heater
      integration: badnest
  fields:
    time_period:
      name: Time period
      required: false
      default: 30
      selector:
        number:
          min: 1
          max: 240
          step: 1
          unit_of_measurement: minutes
          mode: slider
    boost_mode:
      name: Boost mode
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

func TestParseManifest(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	registry, err := ParseManifest([]byte(testManifest))
	require.Nil(err)

	boost, ok := registry.Get("boost_hot_water")
	require.True(ok)
	assert.Equal("Boost hot water", boost.Name)
	assert.Equal("water_heater", boost.Target.Domain)
	assert.Equal("badnest", boost.Target.Integration)
	assert.Len(boost.Fields, 2)

	timePeriod := boost.Fields["time_period"]
	assert.False(timePeriod.Required)
	assert.Equal(float64(30), timePeriod.Default)
	number, ok := timePeriod.Selector.(domain.NumberSelector)
	require.True(ok)
	assert.Equal(float64(1), number.Min)
	assert.Equal(float64(240), number.Max)
	assert.Equal(float64(1), number.Step)
	assert.Equal("minutes", number.Unit)

	boostMode := boost.Fields["boost_mode"]
	assert.True(boostMode.Required)
	assert.IsType(domain.BooleanSelector{}, boostMode.Selector)

	cancel, ok := registry.Get("cancel_boost_hot_water")
	require.True(ok)
	assert.Empty(cancel.Fields)

	all := registry.All()
	require.Len(all, 2)
	assert.Equal("boost_hot_water", all[0].ID)
	assert.Equal("cancel_boost_hot_water", all[1].ID)
}

func TestParseManifestRejectsUnknownSelector(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseManifest([]byte(`
svc:
  target:
    entity:
      domain: water_heater
  fields:
    f:
      selector:
        color: {}
`))
	assert.NotNil(err)
	assert.Contains(err.Error(), "unknown selector kind")
}

func TestParseManifestRejectsInvertedRange(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseManifest([]byte(`
svc:
  target:
    entity:
      domain: water_heater
  fields:
    f:
      selector:
        number:
          min: 100
          max: 1
`))
	assert.NotNil(err)
}

func TestParseManifestRejectsDefaultOutOfRange(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseManifest([]byte(`
svc:
  target:
    entity:
      domain: water_heater
  fields:
    f:
      default: 500
      selector:
        number:
          min: 1
          max: 240
`))
	assert.NotNil(err)
	assert.Contains(err.Error(), "invalid default")
}

func TestParseManifestRequiresTargetDomain(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseManifest([]byte(`
svc:
  name: No target
`))
	assert.NotNil(err)
}
