package bounded

import (
	"fmt"
	"math"
	"reflect"
)

// StructSchema exposes a Go struct type as a Schema. Exported fields become
// schema fields in declaration order (fields promoted from embedded structs
// included), keyed by ResolveStructKey. Bounds, defaults and literal members
// come from the bounded struct tag.
//
// Go kinds map to field types as follows: integers and floats are numeric,
// strings are text, bool and named types with a Members method are
// enumerations, slices are lists, arrays are tuples with an implicit maximum
// length, map[K]struct{} is a set, other maps are maps, structs are nested
// schemas and pointers are optional. Structs without exported fields, such as
// time.Time, are opaque and map to any. Declared bounds on narrow integer
// kinds are clamped to the kind's range.
//
// Optional methods on the struct type (value or pointer receiver):
//
//	AllowConstants() bool                      // see ConstantsAllower
//	DefaultFactories() map[string]func() any   // per-key default factories
//	Validate() error                           // run by New after assignment
type StructSchema struct {
	t reflect.Type
}

// Lenient can be embedded in a struct to make its StructSchema tolerate
// unbounded fields that carry a default.
type Lenient struct{}

func (Lenient) AllowConstants() bool { return true }

// NewStructSchema returns the schema of struct type rt (or a pointer to one).
// The top-level fields and tags are checked eagerly; nested structs are
// checked when first enumerated.
func NewStructSchema(rt reflect.Type) (*StructSchema, error) {
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v is not a struct", ErrUnhandledType, rt)
	}
	s := &StructSchema{t: rt}
	if _, err := s.Fields(); err != nil {
		return nil, err
	}
	return s, nil
}

// SchemaFor returns the schema of struct type T.
func SchemaFor[T any]() (*StructSchema, error) {
	return NewStructSchema(reflect.TypeOf((*T)(nil)).Elem())
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() *StructSchema {
	s, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// Type returns the underlying struct type.
func (s *StructSchema) Type() reflect.Type { return s.t }

func (s *StructSchema) Name() string {
	if n := s.t.Name(); n != "" {
		return n
	}
	return s.t.String()
}

// AllowConstants forwards to the struct type's own AllowConstants method.
func (s *StructSchema) AllowConstants() bool {
	if ca, ok := reflect.New(s.t).Interface().(ConstantsAllower); ok {
		return ca.AllowConstants()
	}
	return false
}

// Fields builds the field descriptors. Descriptors are rebuilt on every call.
func (s *StructSchema) Fields() ([]Field, error) {
	factories := s.defaultFactories()
	sfs := s.structFields()
	out := make([]Field, 0, len(sfs))
	seen := make(map[string]string, len(sfs))
	for _, sf := range sfs {
		key := ResolveStructKey(sf)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s: key %q used by both %s and %s", ErrInvalidTag, s.Name(), key, prev, sf.Name)
		}
		seen[key] = sf.Name
		f, err := structField(key, sf, factories[key])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.Name(), sf.Name, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// New builds a T from values. Missing keys keep the zero value; numeric values
// are converted to the field's Go type.
func (s *StructSchema) New(values map[string]any) (any, error) {
	rv := reflect.New(s.t).Elem()
	for _, sf := range s.structFields() {
		key := ResolveStructKey(sf)
		val, ok := values[key]
		if !ok {
			continue
		}
		if err := assign(rv.FieldByIndex(sf.Index), val); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	if v, ok := rv.Addr().Interface().(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return rv.Interface(), nil
}

func (s *StructSchema) defaultFactories() map[string]func() any {
	if d, ok := reflect.New(s.t).Interface().(interface {
		DefaultFactories() map[string]func() any
	}); ok {
		return d.DefaultFactories()
	}
	return nil
}

// structFields lists the settable exported fields in declaration order.
// Embedded structs contribute their promoted fields unless they are reached
// through a pointer or an unexported embedding.
func (s *StructSchema) structFields() []reflect.StructField {
	var out []reflect.StructField
	for _, sf := range reflect.VisibleFields(s.t) {
		if sf.Anonymous || !sf.IsExported() || !reachable(s.t, sf.Index) {
			continue
		}
		if ResolveStructKey(sf) == "-" {
			continue
		}
		out = append(out, sf)
	}
	return out
}

func reachable(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.Struct {
			return false
		}
		t = f.Type
	}
	return true
}

func structField(key string, sf reflect.StructField, factory func() any) (Field, error) {
	tag, err := parseFieldTag(sf.Tag.Get(TagName))
	if err != nil {
		return Field{}, err
	}
	t, err := goType(sf.Type)
	if err != nil {
		return Field{}, err
	}
	if len(tag.values) > 0 {
		t, err = literalType(tag.values, sf.Type)
		if err != nil {
			return Field{}, err
		}
	}

	opts := []FieldOption{WithConstraints(tag.constraints...)}
	opts = append(opts, WithConstraints(kindBounds(sf.Type, tag.constraints)...))
	if sf.Type.Kind() == reflect.Array && !hasKind(tag.constraints, ConstraintMaxLen) {
		opts = append(opts, WithConstraints(MaxLen(sf.Type.Len())))
	}
	if tag.hasDef {
		v, err := parseScalar(tag.def, sf.Type)
		if err != nil {
			return Field{}, fmt.Errorf("default: %w", err)
		}
		opts = append(opts, WithDefault(v))
	}
	// A factory replaces a tag default.
	opts = append(opts, WithDefaultFactory(factory))
	return NewField(key, t, opts...), nil
}

// kindBounds narrows declared numeric bounds to what the Go integer kind can
// hold. A side without a declared bound stays open, so the field's
// boundedness still comes from its tag.
func kindBounds(rt reflect.Type, declared []Constraint) []Constraint {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	var lo, hi float64
	switch rt.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		bits := rt.Bits()
		lo, hi = -math.Exp2(float64(bits-1)), math.Exp2(float64(bits-1))-1
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		lo, hi = 0, math.Exp2(float64(rt.Bits()))-1
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		lo, hi = 0, math.Inf(1)
	default:
		return nil
	}
	var out []Constraint
	if hasKind(declared, ConstraintGe, ConstraintGt) {
		out = append(out, Ge(lo))
	}
	if !math.IsInf(hi, 1) && hasKind(declared, ConstraintLe, ConstraintLt) {
		out = append(out, Le(hi))
	}
	return out
}

// literalType builds the literal member list of a values=a|b tag, converting
// members to the field's Go type. A pointer field stays optional.
func literalType(raw []string, rt reflect.Type) (Type, error) {
	members := make([]any, len(raw))
	for i, r := range raw {
		v, err := parseScalar(r, rt)
		if err != nil {
			return Type{}, fmt.Errorf("values: %w", err)
		}
		members[i] = v
	}
	lit := Literal(members...)
	base := rt
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	lit.Go = base
	if rt.Kind() == reflect.Pointer {
		return Optional(lit), nil
	}
	return lit, nil
}

// goType maps a Go type onto a field type.
func goType(rt reflect.Type) (Type, error) {
	if members, ok := enumMembers(rt); ok {
		return Type{Kind: KindEnum, Name: rt.String(), Values: members, Go: rt}, nil
	}
	var t Type
	switch rt.Kind() {
	case reflect.Bool:
		t = Bool()
		if rt.Name() != "bool" {
			t.Values = []any{
				reflect.ValueOf(false).Convert(rt).Interface(),
				reflect.ValueOf(true).Convert(rt).Interface(),
			}
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		t = Int()
	case reflect.Float32, reflect.Float64:
		t = Float()
	case reflect.String:
		t = String()
	case reflect.Slice, reflect.Array:
		elem, err := goType(rt.Elem())
		if err != nil {
			return Type{}, err
		}
		if rt.Kind() == reflect.Array {
			t = Tuple(elem)
		} else {
			t = List(elem)
		}
	case reflect.Map:
		if v := rt.Elem(); v.Kind() == reflect.Struct && v.NumField() == 0 {
			key, err := goType(rt.Key())
			if err != nil {
				return Type{}, err
			}
			t = Set(key)
		} else {
			val, err := goType(v)
			if err != nil {
				return Type{}, err
			}
			t = Map(val)
		}
	case reflect.Struct:
		// Opaque structs such as time.Time expose no fields to sample.
		if len((&StructSchema{t: rt}).structFields()) == 0 {
			t = Any()
		} else {
			t = Nested(&StructSchema{t: rt})
		}
	case reflect.Pointer:
		elem, err := goType(rt.Elem())
		if err != nil {
			return Type{}, err
		}
		t = Optional(elem)
	default:
		t = Any()
	}
	t.Name = rt.String()
	t.Go = rt
	return t, nil
}

// enumMembers calls rt's Members method when it has the shape
// func (T) Members() []T.
func enumMembers(rt reflect.Type) ([]any, bool) {
	m, ok := rt.MethodByName("Members")
	if !ok {
		return nil, false
	}
	mt := m.Type
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Slice || mt.Out(0).Elem() != rt {
		return nil, false
	}
	res := m.Func.Call([]reflect.Value{reflect.Zero(rt)})[0]
	out := make([]any, res.Len())
	for i := range out {
		out[i] = res.Index(i).Interface()
	}
	return out, true
}

// assign stores val into fv, converting between numeric types and allocating
// pointers as needed. nil leaves the zero value.
func assign(fv reflect.Value, val any) error {
	if val == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}
	vv := reflect.ValueOf(val)
	switch {
	case vv.Type().AssignableTo(fv.Type()):
		fv.Set(vv)
	case fv.Kind() == reflect.Pointer:
		p := reflect.New(fv.Type().Elem())
		if err := assign(p.Elem(), val); err != nil {
			return err
		}
		fv.Set(p)
	case convertible(vv.Type(), fv.Type()):
		if overflows(vv, fv.Type()) {
			return fmt.Errorf("%v overflows %s", val, fv.Type())
		}
		fv.Set(vv.Convert(fv.Type()))
	default:
		return fmt.Errorf("cannot assign %T to %s", val, fv.Type())
	}
	return nil
}

// overflows reports whether the integer in vv does not fit integer type to.
func overflows(vv reflect.Value, to reflect.Type) bool {
	zero := reflect.Zero(to)
	switch {
	case vv.CanInt() && zero.CanInt():
		return zero.OverflowInt(vv.Int())
	case vv.CanInt() && zero.CanUint():
		return vv.Int() < 0 || zero.OverflowUint(uint64(vv.Int()))
	case vv.CanUint() && zero.CanInt():
		return vv.Uint() > math.MaxInt64 || zero.OverflowInt(int64(vv.Uint()))
	case vv.CanUint() && zero.CanUint():
		return zero.OverflowUint(vv.Uint())
	}
	return false
}

// convertible excludes the integer-to-string conversion reflect allows.
func convertible(from, to reflect.Type) bool {
	if to.Kind() == reflect.String && from.Kind() != reflect.String {
		return false
	}
	return from.ConvertibleTo(to)
}
