package domain

import (
	"fmt"
	"math"
	"strings"
)

// ServiceCall is a request to invoke a declared service against a target
// entity. Params holds the raw, not yet validated field values.
type ServiceCall struct {
	Service string
	Target  string
	Params  map[string]any
}

// ServiceDefinition is one entry of the service manifest. Definitions are
// immutable after load and safe to share between goroutines.
type ServiceDefinition struct {
	ID          string
	Name        string
	Description string
	Target      EntitySelector
	Fields      map[string]FieldSpec
}

type EntitySelector struct {
	Domain      string
	Integration string
}

type FieldSpec struct {
	Name        string
	Description string
	Required    bool
	Default     any
	Selector    Selector
}

type Selector interface {
	Kind() string
	// Validate checks and normalizes a raw field value. It returns
	// ErrValueOutOfRange or ErrInvalidValueType wrapped with detail.
	Validate(value any) (any, error)
}

type NumberSelector struct {
	Min  float64
	Max  float64
	Step float64
	Unit string
	Mode string
}

func (s NumberSelector) Kind() string {
	return "number"
}

func (s NumberSelector) Validate(value any) (any, error) {
	num, ok := toFloat(value)
	if !ok {
		return nil, fmt.Errorf("%w: expected number, got %T", ErrInvalidValueType, value)
	}
	if s.Step == 1 && num != math.Trunc(num) {
		return nil, fmt.Errorf("%w: expected integer, got %v", ErrInvalidValueType, value)
	}
	if num < s.Min || num > s.Max {
		return nil, fmt.Errorf("%w: %v not in [%v, %v]", ErrValueOutOfRange, num, s.Min, s.Max)
	}
	return num, nil
}

type BooleanSelector struct {
}

func (s BooleanSelector) Kind() string {
	return "boolean"
}

func (s BooleanSelector) Validate(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "true", "on", "yes", "1":
			return true, nil
		case "false", "off", "no", "0":
			return false, nil
		}
	case int, int64, float64:
		num, _ := toFloat(v)
		if num == 0 {
			return false, nil
		}
		if num == 1 {
			return true, nil
		}
	}
	return nil, fmt.Errorf("%w: expected boolean, got %v (%T)", ErrInvalidValueType, value, value)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	}
	return 0, false
}
