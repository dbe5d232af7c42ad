package bounded

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrInvalidOverrides reports a malformed override document.
var ErrInvalidOverrides = errors.New("bounded: invalid overrides document")

// ParseOverridesJSON reads an override set keyed by dot-path:
//
//	{
//	  "rate":        {"ge": 0, "le": 1},
//	  "inner.value": {"default": 5}
//	}
//
// Recognised keys per entry are ge, gt, le, lt and default. A default of null
// pins the field to nil.
func ParseOverridesJSON(data []byte) (Overrides, error) {
	var doc map[string]map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOverrides, err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidOverrides)
	}
	return overridesFromDoc(doc)
}

// ParseOverridesYAML reads the YAML form of the ParseOverridesJSON document.
func ParseOverridesYAML(data []byte) (Overrides, error) {
	var doc map[string]map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOverrides, err)
	}
	return overridesFromDoc(doc)
}

func overridesFromDoc(doc map[string]map[string]any) (Overrides, error) {
	paths := make([]string, 0, len(doc))
	for p := range doc {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make(Overrides, len(doc))
	for _, path := range paths {
		if path == "" {
			return nil, fmt.Errorf("%w: empty path", ErrInvalidOverrides)
		}
		var opts []OverrideOption
		for _, k := range sortedKeys(doc[path]) {
			v := doc[path][k]
			switch k {
			case "ge", "gt", "le", "lt":
				f, ok := toFloat(v)
				if !ok {
					return nil, fmt.Errorf("%w: %s.%s: want a number, got %T", ErrInvalidOverrides, path, k, v)
				}
				opts = append(opts, overrideBound(k, f))
			case "default":
				opts = append(opts, OverrideDefault(v))
			default:
				return nil, fmt.Errorf("%w: %s: unknown key %q", ErrInvalidOverrides, path, k)
			}
		}
		o, err := NewFieldOverride(opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidOverrides, path, err)
		}
		out[path] = o
	}
	return out, nil
}

func overrideBound(key string, v float64) OverrideOption {
	switch key {
	case "ge":
		return OverrideGe(v)
	case "gt":
		return OverrideGt(v)
	case "le":
		return OverrideLe(v)
	default:
		return OverrideLt(v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
