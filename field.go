package bounded

// Field is a read-only view of one schema field. Merging an override or
// synthesizing a union branch produces a new Field; the original is never
// modified.
type Field struct {
	name        string
	typ         Type
	constraints []Constraint
	def         any
	hasDef      bool
	factory     func() any
}

// FieldOption configures a Field under construction.
type FieldOption func(*Field)

// WithConstraints appends bound annotations.
func WithConstraints(cs ...Constraint) FieldOption {
	return func(f *Field) { f.constraints = append(f.constraints, cs...) }
}

// WithDefault sets a default value and clears any default factory.
func WithDefault(v any) FieldOption {
	return func(f *Field) {
		f.def, f.hasDef, f.factory = v, true, nil
	}
}

// WithDefaultFactory sets a default factory and clears any default value.
// A nil factory is ignored.
func WithDefaultFactory(fn func() any) FieldOption {
	return func(f *Field) {
		if fn == nil {
			return
		}
		f.def, f.hasDef, f.factory = nil, false, fn
	}
}

// NewField returns a field descriptor.
func NewField(name string, t Type, opts ...FieldOption) Field {
	f := Field{name: name, typ: t}
	for _, o := range opts {
		o(&f)
	}
	return f
}

func (f Field) Name() string { return f.name }
func (f Field) Type() Type   { return f.typ }

// Constraints returns a copy of the field's annotations in declaration order.
func (f Field) Constraints() []Constraint {
	return append([]Constraint(nil), f.constraints...)
}

// Default returns the default value and whether one is set. It does not
// consult the default factory.
func (f Field) Default() (any, bool) { return f.def, f.hasDef }

// DefaultFactory returns the default factory, or nil.
func (f Field) DefaultFactory() func() any { return f.factory }

// HasDefault reports whether a default value or a default factory is set.
func (f Field) HasDefault() bool { return f.hasDef || f.factory != nil }

// Required reports whether the host must be given a value for this field.
func (f Field) Required() bool { return !f.HasDefault() }

// DefaultValue produces the default, calling the factory when one is set.
func (f Field) DefaultValue() (any, error) {
	switch {
	case f.factory != nil:
		return f.factory(), nil
	case f.hasDef:
		return f.def, nil
	default:
		return nil, newFieldError(f.name, f.typ, ErrMissingDefault)
	}
}

// branch synthesizes an unnamed field declared as t that keeps f's
// constraints and drops its defaults. Errors raised on it are reported under
// the enclosing field's path.
func (f Field) branch(t Type) Field {
	return Field{typ: t, constraints: f.Constraints()}
}

// WithName returns a copy of f under a different name.
func (f Field) WithName(name string) Field {
	g := f
	g.name = name
	g.constraints = f.Constraints()
	return g
}
