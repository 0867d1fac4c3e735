package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Catalog is a read-only translation catalog loaded from a JSON file at
// startup. Lookups use dotted paths into the nested structure, e.g.
// "services.boost_hot_water.fields.time_period.name". The catalog is a
// UI concern only, never consulted during validation.
type Catalog struct {
	root map[string]any
}

func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("translation catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("translation catalog: %w", err)
	}
	return &Catalog{root: root}, nil
}

// Lookup resolves a dotted path to a string value. Missing keys and
// non-leaf paths return ok = false.
func (c *Catalog) Lookup(path string) (string, bool) {
	var current any = c.root
	for _, part := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = node[part]
		if !ok {
			return "", false
		}
	}
	value, ok := current.(string)
	return value, ok
}

func (c *Catalog) ServiceName(serviceID string) (string, bool) {
	return c.Lookup(fmt.Sprintf("services.%s.name", serviceID))
}

func (c *Catalog) ServiceDescription(serviceID string) (string, bool) {
	return c.Lookup(fmt.Sprintf("services.%s.description", serviceID))
}

func (c *Catalog) FieldName(serviceID, field string) (string, bool) {
	return c.Lookup(fmt.Sprintf("services.%s.fields.%s.name", serviceID, field))
}

func (c *Catalog) FieldDescription(serviceID, field string) (string, bool) {
	return c.Lookup(fmt.Sprintf("services.%s.fields.%s.description", serviceID, field))
}

func (c *Catalog) EntityStateLabel(domain, state string) (string, bool) {
	return c.Lookup(fmt.Sprintf("entity.%s.state.%s", domain, state))
}
