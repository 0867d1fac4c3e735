package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `{
  "services": {
    "boost_hot_water": {
      "name": "Boost hot water",
      "description": "Turn the hot water boost mode on or off.",
      "fields": {
        "time_period": {
          "name": "Time period",
          "description": "Time period in minutes."
        }
      }
    }
  },
  "entity": {
    "water_heater": {
      "state": {
        "schedule": "Schedule"
      }
    }
  }
}`

func TestCatalogLookup(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	catalog, err := ParseCatalog([]byte(testCatalog))
	require.Nil(err)

	value, ok := catalog.Lookup("services.boost_hot_water.fields.time_period.name")
	assert.True(ok)
	assert.Equal("Time period", value)

	name, ok := catalog.ServiceName("boost_hot_water")
	assert.True(ok)
	assert.Equal("Boost hot water", name)

	desc, ok := catalog.FieldDescription("boost_hot_water", "time_period")
	assert.True(ok)
	assert.Equal("Time period in minutes.", desc)

	label, ok := catalog.EntityStateLabel("water_heater", "schedule")
	assert.True(ok)
	assert.Equal("Schedule", label)
}

func TestCatalogMissingKeys(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	catalog, err := ParseCatalog([]byte(testCatalog))
	require.Nil(err)

	_, ok := catalog.Lookup("services.unknown_service.name")
	assert.False(ok)

	// non-leaf path
	_, ok = catalog.Lookup("services.boost_hot_water")
	assert.False(ok)

	// path through a leaf
	_, ok = catalog.Lookup("services.boost_hot_water.name.extra")
	assert.False(ok)

	_, ok = catalog.FieldName("boost_hot_water", "nope")
	assert.False(ok)
}

func TestCatalogRejectsInvalidJSON(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseCatalog([]byte("{not json"))
	assert.NotNil(err)
}
