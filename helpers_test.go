package bounded_test

import (
	"maps"

	"github.com/reoring/bounded"
)

// mapSchema is a minimal host schema whose instances are maps.
type mapSchema struct {
	name    string
	fields  []bounded.Field
	lenient bool
	newFn   func(map[string]any) (any, error)
}

func model(name string, fields ...bounded.Field) *mapSchema {
	return &mapSchema{name: name, fields: fields}
}

func (s *mapSchema) Name() string                      { return s.name }
func (s *mapSchema) Fields() ([]bounded.Field, error) { return s.fields, nil }
func (s *mapSchema) AllowConstants() bool              { return s.lenient }

func (s *mapSchema) New(values map[string]any) (any, error) {
	if s.newFn != nil {
		return s.newFn(values)
	}
	return maps.Clone(values), nil
}

func ptr(v float64) *float64 { return &v }

func floatField(name string, cs ...bounded.Constraint) bounded.Field {
	return bounded.NewField(name, bounded.Float(), bounded.WithConstraints(cs...))
}

func intField(name string, cs ...bounded.Constraint) bounded.Field {
	return bounded.NewField(name, bounded.Int(), bounded.WithConstraints(cs...))
}
