package service

import (
	"fmt"
	"os"
	"sort"

	"github.com/badnest/badnest2mqtt/internal/core/domain"

	"gopkg.in/yaml.v3"
)

// Registry holds the service definitions parsed from the manifest. It is
// immutable after load.
type Registry struct {
	services map[string]domain.ServiceDefinition
}

type manifestEntry struct {
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description"`
	Target      manifestTarget           `yaml:"target"`
	Fields      map[string]manifestField `yaml:"fields"`
}

type manifestTarget struct {
	Entity manifestEntitySelector `yaml:"entity"`
}

type manifestEntitySelector struct {
	Domain      string `yaml:"domain"`
	Integration string `yaml:"integration"`
}

type manifestField struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Required    bool             `yaml:"required"`
	Default     any              `yaml:"default"`
	Selector    manifestSelector `yaml:"selector"`
}

type manifestSelector struct {
	Number  *manifestNumberSelector `yaml:"number"`
	Boolean *struct{}               `yaml:"boolean"`
}

type manifestNumberSelector struct {
	Min               float64 `yaml:"min"`
	Max               float64 `yaml:"max"`
	Step              float64 `yaml:"step"`
	UnitOfMeasurement string  `yaml:"unit_of_measurement"`
	Mode              string  `yaml:"mode"`
}

func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("service manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (*Registry, error) {
	var manifest map[string]manifestEntry
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("service manifest: %w", err)
	}
	services := make(map[string]domain.ServiceDefinition, len(manifest))
	for id, entry := range manifest {
		def, err := entry.toDefinition(id)
		if err != nil {
			return nil, err
		}
		services[id] = def
	}
	return &Registry{services: services}, nil
}

func (r *Registry) Get(id string) (domain.ServiceDefinition, bool) {
	def, ok := r.services[id]
	return def, ok
}

func (r *Registry) All() []domain.ServiceDefinition {
	defs := make([]domain.ServiceDefinition, 0, len(r.services))
	for _, def := range r.services {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs
}

func (entry manifestEntry) toDefinition(id string) (domain.ServiceDefinition, error) {
	def := domain.ServiceDefinition{
		ID:          id,
		Name:        entry.Name,
		Description: entry.Description,
		Target: domain.EntitySelector{
			Domain:      entry.Target.Entity.Domain,
			Integration: entry.Target.Entity.Integration,
		},
	}
	if def.Target.Domain == "" {
		return def, fmt.Errorf("service %s: target entity domain is required", id)
	}
	if len(entry.Fields) > 0 {
		def.Fields = make(map[string]domain.FieldSpec, len(entry.Fields))
	}
	for name, field := range entry.Fields {
		spec, err := field.toSpec(id, name)
		if err != nil {
			return def, err
		}
		def.Fields[name] = spec
	}
	return def, nil
}

func (field manifestField) toSpec(serviceID, name string) (domain.FieldSpec, error) {
	spec := domain.FieldSpec{
		Name:        field.Name,
		Description: field.Description,
		Required:    field.Required,
		Default:     field.Default,
	}
	switch {
	case field.Selector.Number != nil && field.Selector.Boolean != nil:
		return spec, fmt.Errorf("service %s: field %s: multiple selectors", serviceID, name)
	case field.Selector.Number != nil:
		num := field.Selector.Number
		step := num.Step
		if step == 0 {
			step = 1
		}
		if num.Min > num.Max {
			return spec, fmt.Errorf("service %s: field %s: min %v > max %v", serviceID, name, num.Min, num.Max)
		}
		spec.Selector = domain.NumberSelector{
			Min:  num.Min,
			Max:  num.Max,
			Step: step,
			Unit: num.UnitOfMeasurement,
			Mode: num.Mode,
		}
	case field.Selector.Boolean != nil:
		spec.Selector = domain.BooleanSelector{}
	default:
		return spec, fmt.Errorf("service %s: field %s: unknown selector kind", serviceID, name)
	}
	if spec.Default != nil {
		normalized, err := spec.Selector.Validate(spec.Default)
		if err != nil {
			return spec, fmt.Errorf("service %s: field %s: invalid default: %w", serviceID, name, err)
		}
		spec.Default = normalized
	}
	if spec.Required && spec.Default != nil {
		return spec, fmt.Errorf("service %s: field %s: required field cannot have a default", serviceID, name)
	}
	return spec, nil
}
