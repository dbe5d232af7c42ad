package bounded

import (
	"sort"
	"strings"
)

// FieldOverride patches one field for a single call: it can add bounds to an
// unbounded field or pin the field to a constant. Build it with
// NewFieldOverride so that the default/factory exclusivity is enforced.
type FieldOverride struct {
	Ge, Le, Gt, Lt *float64

	def     any
	hasDef  bool
	factory func() any
}

// OverrideOption configures a FieldOverride.
type OverrideOption func(*FieldOverride)

// OverrideGe adds an inclusive lower bound.
func OverrideGe(v float64) OverrideOption { return func(o *FieldOverride) { o.Ge = &v } }

// OverrideLe adds an inclusive upper bound.
func OverrideLe(v float64) OverrideOption { return func(o *FieldOverride) { o.Le = &v } }

// OverrideGt adds an exclusive lower bound.
func OverrideGt(v float64) OverrideOption { return func(o *FieldOverride) { o.Gt = &v } }

// OverrideLt adds an exclusive upper bound.
func OverrideLt(v float64) OverrideOption { return func(o *FieldOverride) { o.Lt = &v } }

// OverrideDefault pins the field to v.
func OverrideDefault(v any) OverrideOption {
	return func(o *FieldOverride) { o.def, o.hasDef = v, true }
}

// OverrideDefaultFactory pins the field to the value produced by fn at each
// sampling call.
func OverrideDefaultFactory(fn func() any) OverrideOption {
	return func(o *FieldOverride) { o.factory = fn }
}

// NewFieldOverride builds an override. It fails with ErrConflictingDefaults
// when both a default and a default factory are given.
func NewFieldOverride(opts ...OverrideOption) (FieldOverride, error) {
	var o FieldOverride
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasDef && o.factory != nil {
		return FieldOverride{}, ErrConflictingDefaults
	}
	return o, nil
}

// MustFieldOverride is like NewFieldOverride but panics on error.
func MustFieldOverride(opts ...OverrideOption) FieldOverride {
	o, err := NewFieldOverride(opts...)
	if err != nil {
		panic(err)
	}
	return o
}

// HasDefault reports whether the override fixes the field to a constant.
func (o FieldOverride) HasDefault() bool { return o.hasDef || o.factory != nil }

// GetDefault returns the constant, calling the factory when set. Callers are
// expected to check HasDefault first.
func (o FieldOverride) GetDefault() (any, error) {
	switch {
	case o.factory != nil:
		return o.factory(), nil
	case o.hasDef:
		return o.def, nil
	default:
		return nil, ErrMissingDefault
	}
}

// hasBounds reports whether any numeric bound is set.
func (o FieldOverride) hasBounds() bool {
	return o.Ge != nil || o.Le != nil || o.Gt != nil || o.Lt != nil
}

// MergeOverride returns a copy of f with the override applied: one constraint
// per set bound is appended (ge, le, gt, lt in that order) and the default is
// replaced when the override carries one. Existing bounds are never removed.
func MergeOverride(f Field, o FieldOverride) Field {
	out := Field{
		name:        f.name,
		typ:         f.typ,
		constraints: f.Constraints(),
		def:         f.def,
		hasDef:      f.hasDef,
		factory:     f.factory,
	}
	if o.hasBounds() {
		if o.Ge != nil {
			out.constraints = append(out.constraints, Ge(*o.Ge))
		}
		if o.Le != nil {
			out.constraints = append(out.constraints, Le(*o.Le))
		}
		if o.Gt != nil {
			out.constraints = append(out.constraints, Gt(*o.Gt))
		}
		if o.Lt != nil {
			out.constraints = append(out.constraints, Lt(*o.Lt))
		}
	}
	switch {
	case o.hasDef:
		out.def, out.hasDef, out.factory = o.def, true, nil
	case o.factory != nil:
		out.def, out.hasDef, out.factory = nil, false, o.factory
	}
	return out
}

// Overrides maps dot-paths ("rate", "inner.value") to field overrides.
type Overrides map[string]FieldOverride

// Direct returns the override addressed to name itself.
func (ov Overrides) Direct(name string) (FieldOverride, bool) {
	o, ok := ov[name]
	return o, ok
}

// Nested returns the overrides addressed below prefix, with "prefix." stripped
// from their keys. The result is empty, never nil.
func (ov Overrides) Nested(prefix string) Overrides {
	p := prefix + "."
	out := Overrides{}
	for k, o := range ov {
		if rest, ok := strings.CutPrefix(k, p); ok && rest != "" {
			out[rest] = o
		}
	}
	return out
}

// Paths returns the override keys in sorted order.
func (ov Overrides) Paths() []string {
	keys := make([]string, 0, len(ov))
	for k := range ov {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
