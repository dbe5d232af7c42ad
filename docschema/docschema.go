// Package docschema exposes JSON Schema documents as bounded schemas.
//
// Object properties become fields in document order and instances are
// map[string]any. Keyword mapping:
//
//	minimum / exclusiveMinimum     -> ge / gt
//	maximum / exclusiveMaximum     -> le / lt
//	maxLength, maxItems            -> max-length
//	minLength, minItems            -> min-length
//	enum                           -> literal
//	type: integer|number|string    -> numeric / text
//	type: boolean                  -> enumeration {false, true}
//	type: array                    -> list (set with uniqueItems)
//	type: object with properties   -> nested schema
//	nullable, "null" in type list  -> optional
//	anyOf / oneOf                  -> union
package docschema

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/bounded"
	js "github.com/reoring/bounded/jsonschema"
)

// Schema adapts an object schema document to bounded.Schema.
type Schema struct {
	name string
	doc  *js.Schema
}

var _ bounded.Schema = (*Schema)(nil)

// New wraps doc, which must describe an object.
func New(doc *js.Schema) (*Schema, error) {
	if doc == nil {
		return nil, fmt.Errorf("docschema: nil schema")
	}
	if len(doc.Type) > 0 && !doc.Type.Has("object") {
		return nil, fmt.Errorf("docschema: root must be an object, got type %v", []string(doc.Type))
	}
	name := doc.Title
	if name == "" {
		name = "root"
	}
	return &Schema{name: name, doc: doc}, nil
}

// LoadJSON parses and wraps a JSON document.
func LoadJSON(data []byte) (*Schema, error) {
	doc, err := js.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// LoadYAML parses and wraps a YAML document.
func LoadYAML(data []byte) (*Schema, error) {
	doc, err := js.ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// LoadFile reads path, choosing the decoder from its extension. Files ending
// in .json are JSON; everything else is read as YAML.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(data)
	}
	return LoadYAML(data)
}

// Document returns the wrapped document.
func (s *Schema) Document() *js.Schema { return s.doc }

func (s *Schema) Name() string { return s.name }

// Fields maps each property to a field.
func (s *Schema) Fields() ([]bounded.Field, error) {
	out := make([]bounded.Field, 0, len(s.doc.Properties))
	for _, p := range s.doc.Properties {
		if p.Schema == nil {
			return nil, fmt.Errorf("docschema: %s.%s: empty property schema", s.name, p.Name)
		}
		f, err := s.field(p.Name, p.Schema)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// New returns a copy of values. Every property is present since sampling
// resolves all fields.
func (s *Schema) New(values map[string]any) (any, error) {
	out := make(map[string]any, len(values))
	for _, name := range s.doc.Properties.Names() {
		v, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("docschema: %s: missing value for %q", s.name, name)
		}
		out[name] = v
	}
	return out, nil
}

func (s *Schema) field(name string, ps *js.Schema) (bounded.Field, error) {
	t, err := s.typeOf(name, ps)
	if err != nil {
		return bounded.Field{}, fmt.Errorf("docschema: %s.%s: %w", s.name, name, err)
	}
	cs := constraints(ps)
	if alt := soleAlternative(ps); alt != nil {
		cs = append(cs, constraints(alt)...)
	}
	opts := []bounded.FieldOption{bounded.WithConstraints(cs...)}
	if ps.Default != nil {
		opts = append(opts, bounded.WithDefault(normalizeDefault(ps)))
	}
	return bounded.NewField(name, t, opts...), nil
}

func (s *Schema) typeOf(name string, ps *js.Schema) (bounded.Type, error) {
	nullable := ps.Nullable || ps.Type.Has("null")
	var t bounded.Type
	switch {
	case len(ps.Enum) > 0:
		members := make([]any, 0, len(ps.Enum))
		for _, m := range ps.Enum {
			if m == nil {
				nullable = true
				continue
			}
			members = append(members, normalizeNumber(ps, m))
		}
		t = bounded.Literal(members...)
	case len(ps.AnyOf) > 0 || len(ps.OneOf) > 0:
		alts := ps.AnyOf
		if len(alts) == 0 {
			alts = ps.OneOf
		}
		branches := make([]bounded.Type, 0, len(alts)+1)
		for i, a := range alts {
			if a == nil {
				return bounded.Type{}, fmt.Errorf("empty alternative %d", i)
			}
			b, err := s.typeOf(name, a)
			if err != nil {
				return bounded.Type{}, err
			}
			branches = append(branches, b)
		}
		if nullable {
			branches = append(branches, bounded.Null())
		}
		return bounded.Union(branches...), nil
	default:
		types := make([]string, 0, len(ps.Type))
		for _, tn := range ps.Type {
			if tn != "null" {
				types = append(types, tn)
			}
		}
		if len(types) == 0 && len(ps.Properties) > 0 {
			types = []string{"object"}
		}
		branches := make([]bounded.Type, 0, len(types))
		for _, tn := range types {
			b, err := s.scalarOrContainer(name, tn, ps)
			if err != nil {
				return bounded.Type{}, err
			}
			branches = append(branches, b)
		}
		switch len(branches) {
		case 0:
			if nullable && len(ps.Type) > 0 {
				return bounded.Null(), nil
			}
			t = bounded.Any()
		case 1:
			t = branches[0]
		default:
			if nullable {
				branches = append(branches, bounded.Null())
			}
			return bounded.Union(branches...), nil
		}
	}
	if nullable {
		return bounded.Optional(t), nil
	}
	return t, nil
}

func (s *Schema) scalarOrContainer(name, tn string, ps *js.Schema) (bounded.Type, error) {
	switch tn {
	case "integer":
		return bounded.Int(), nil
	case "number":
		return bounded.Float(), nil
	case "string":
		return bounded.String(), nil
	case "boolean":
		return bounded.Bool(), nil
	case "array":
		elem := bounded.Any()
		if ps.Items != nil {
			e, err := s.typeOf(name, ps.Items)
			if err != nil {
				return bounded.Type{}, err
			}
			elem = e
		}
		if ps.UniqueItems {
			return bounded.Set(elem), nil
		}
		return bounded.List(elem), nil
	case "object":
		// Free-form objects have no fixed fields.
		if len(ps.Properties) == 0 {
			return bounded.Map(bounded.Any()), nil
		}
		child := ps.Title
		if child == "" {
			child = s.name + "." + name
		}
		return bounded.Nested(&Schema{name: child, doc: ps}), nil
	default:
		return bounded.Type{}, fmt.Errorf("unsupported type %q", tn)
	}
}

// soleAlternative returns the only non-null anyOf/oneOf branch, the OpenAPI 3.1
// spelling of a nullable value. Its bounds belong to the field.
func soleAlternative(ps *js.Schema) *js.Schema {
	alts := ps.AnyOf
	if len(alts) == 0 {
		alts = ps.OneOf
	}
	var sole *js.Schema
	for _, a := range alts {
		if a == nil || (len(a.Type) == 1 && a.Type[0] == "null") {
			continue
		}
		if sole != nil {
			return nil
		}
		sole = a
	}
	return sole
}

func constraints(ps *js.Schema) []bounded.Constraint {
	var cs []bounded.Constraint
	if ps.Minimum != nil {
		cs = append(cs, bounded.Ge(*ps.Minimum))
	}
	if ps.ExclusiveMinimum != nil {
		cs = append(cs, bounded.Gt(*ps.ExclusiveMinimum))
	}
	if ps.Maximum != nil {
		cs = append(cs, bounded.Le(*ps.Maximum))
	}
	if ps.ExclusiveMaximum != nil {
		cs = append(cs, bounded.Lt(*ps.ExclusiveMaximum))
	}
	for _, n := range []*int{ps.MaxLength, ps.MaxItems} {
		if n != nil {
			cs = append(cs, bounded.MaxLen(*n))
		}
	}
	for _, n := range []*int{ps.MinLength, ps.MinItems} {
		if n != nil {
			cs = append(cs, bounded.MinLen(*n))
		}
	}
	return cs
}

func normalizeDefault(ps *js.Schema) any { return normalizeNumber(ps, ps.Default) }

// normalizeNumber turns integral numbers of integer-typed schemas into int64,
// the type sampled integers have. JSON decodes every number as float64 and
// YAML decodes integers as int.
func normalizeNumber(ps *js.Schema, v any) any {
	if !ps.Type.Has("integer") {
		if n, ok := v.(int); ok && ps.Type.Has("number") {
			return float64(n)
		}
		return v
	}
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int64(n)
		}
	case int:
		return int64(n)
	}
	return v
}
