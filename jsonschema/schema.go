package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Schema is the subset of JSON Schema (and the OpenAPI 3 dialect) that
// describes parameter spaces: scalar types with numeric and length bounds,
// enums, arrays, objects with ordered properties, nullability and unions.
type Schema struct {
	// Core
	Type        TypeList `json:"type,omitempty" yaml:"type,omitempty"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Format      string   `json:"format,omitempty" yaml:"format,omitempty"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any    `json:"enum,omitempty" yaml:"enum,omitempty"`
	Nullable    bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`

	// String
	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`

	// Object
	Properties           Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string   `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any        `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems    *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
}

// ParseJSON decodes a schema document.
func ParseJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("jsonschema: invalid JSON: %w", err)
	}
	return &s, nil
}

// ParseYAML decodes a schema document written in YAML.
func ParseYAML(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("jsonschema: invalid YAML: %w", err)
	}
	return &s, nil
}

// TypeList holds the "type" keyword, which is either one name or a list.
type TypeList []string

// Has reports whether name is listed.
func (tl TypeList) Has(name string) bool {
	for _, t := range tl {
		if t == name {
			return true
		}
	}
	return false
}

// MarshalJSON writes a single type as a plain string.
func (tl TypeList) MarshalJSON() ([]byte, error) {
	if len(tl) == 1 {
		return json.Marshal(tl[0])
	}
	return json.Marshal([]string(tl))
}

func (tl *TypeList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*tl = TypeList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("jsonschema: type must be a string or a list of strings: %w", err)
	}
	*tl = many
	return nil
}

func (tl *TypeList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*tl = TypeList{n.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := n.Decode(&many); err != nil {
			return err
		}
		*tl = many
		return nil
	default:
		return fmt.Errorf("jsonschema: line %d: type must be a string or a list of strings", n.Line)
	}
}

// Property is one named entry of an object's properties.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties keeps object properties in document order.
type Properties []Property

// Get returns the schema of the named property, or nil.
func (ps Properties) Get(name string) *Schema {
	for _, p := range ps {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// Names returns the property names in document order.
func (ps Properties) Names() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

// MarshalJSON writes the properties as an object in document order.
func (ps Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Schema)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ps *Properties) UnmarshalJSON(b []byte) error {
	var m map[string]*Schema
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	keys, err := objectKeys(b)
	if err != nil {
		return err
	}
	out := make(Properties, 0, len(keys))
	for _, k := range keys {
		out = append(out, Property{Name: k, Schema: m[k]})
	}
	*ps = out
	return nil
}

func (ps *Properties) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("jsonschema: line %d: properties must be a mapping", n.Line)
	}
	out := make(Properties, 0, len(n.Content)/2)
	seen := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		var s Schema
		if err := n.Content[i+1].Decode(&s); err != nil {
			return err
		}
		if j, dup := seen[name]; dup {
			out[j].Schema = &s
			continue
		}
		seen[name] = len(out)
		out = append(out, Property{Name: name, Schema: &s})
	}
	*ps = out
	return nil
}

// objectKeys streams the top-level keys of a JSON object in document order.
// Repeated keys are reported once, at their first position.
func objectKeys(b []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	var (
		keys      []string
		seen      = map[string]bool{}
		depth     int
		expectKey bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return keys, nil
		}
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
				if depth == 1 {
					expectKey = d == '{'
				}
			default:
				depth--
				if depth == 1 {
					expectKey = true
				}
			}
			continue
		}
		if depth != 1 {
			continue
		}
		if !expectKey {
			expectKey = true
			continue
		}
		expectKey = false
		if k, ok := tok.(string); ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
}
