package domain

import "github.com/badnest/badnest2mqtt/pkg/nest"

const (
	ENTITY_DOMAIN_WATER_HEATER = "water_heater"
	INTEGRATION_ID             = "badnest"
)

// Entity is one addressable Home Assistant entity backed by a Nest device.
type Entity struct {
	ID          string
	Domain      string
	Integration string
	DeviceID    string
	Name        string
}

// EntityTable is a read-only entity id index built once at startup.
type EntityTable struct {
	byID map[string]Entity
}

func NewEntityTable(entities []Entity) *EntityTable {
	byID := make(map[string]Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}
	return &EntityTable{byID: byID}
}

func (t *EntityTable) Lookup(id string) (Entity, bool) {
	e, ok := t.byID[id]
	return e, ok
}

func (t *EntityTable) All() []Entity {
	entities := make([]Entity, 0, len(t.byID))
	for _, e := range t.byID {
		entities = append(entities, e)
	}
	return entities
}

// EntitiesFromDevices derives the serviceable entities from the discovered
// device inventory. Thermostats with hot water control yield a water_heater
// entity.
func EntitiesFromDevices(devices []nest.Device) []Entity {
	var entities []Entity
	for _, d := range devices {
		if d.Kind == nest.DEVICE_KIND_THERMOSTAT && d.HasHotWaterControl {
			entities = append(entities, Entity{
				ID:          ENTITY_DOMAIN_WATER_HEATER + "." + d.ID,
				Domain:      ENTITY_DOMAIN_WATER_HEATER,
				Integration: INTEGRATION_ID,
				DeviceID:    d.ID,
				Name:        d.Name,
			})
		}
	}
	return entities
}
