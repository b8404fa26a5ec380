package extsdk

import (
	"fmt"
)

// Property describes a single input parameter.
type Property struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Items describes array element types (required for type="array").
	Items *Property `json:"items,omitempty" yaml:"items,omitempty"`
}

// InputSchema is the structural contract for a tool's input. It lists the
// required parameter names and describes each accepted parameter.
type InputSchema struct {
	Required   []string            `json:"required" yaml:"required"`
	Properties map[string]Property `json:"properties" yaml:"properties"`
}

// IsZero reports whether the schema describes nothing at all. A tool must
// declare at least its properties (an empty Properties map is acceptable for
// zero-argument tools, a nil one is not).
func (s InputSchema) IsZero() bool {
	return s.Properties == nil && s.Required == nil
}

// Validate checks input against the schema and returns every problem found,
// not just the first one.
func (s InputSchema) Validate(input map[string]any) []error {
	var errs []error

	for _, name := range s.Required {
		if _, ok := input[name]; !ok {
			errs = append(errs, fmt.Errorf("missing required parameter %q", name))
		}
	}

	for name, value := range input {
		prop, ok := s.Properties[name]
		if !ok {
			errs = append(errs, fmt.Errorf("unexpected parameter %q", name))
			continue
		}
		if err := checkType(name, prop.Type, value); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

func checkType(name, typ string, value any) error {
	if typ == "" || value == nil {
		return nil
	}
	switch typ {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("parameter %q: expected string, got %T", name, value)
		}
	case "number":
		switch value.(type) {
		case float64, float32, int, int32, int64:
		default:
			return fmt.Errorf("parameter %q: expected number, got %T", name, value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("parameter %q: expected boolean, got %T", name, value)
		}
	case "array":
		if _, ok := value.([]any); !ok {
			return fmt.Errorf("parameter %q: expected array, got %T", name, value)
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("parameter %q: expected object, got %T", name, value)
		}
	}
	return nil
}
