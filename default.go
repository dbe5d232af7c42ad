package bounded

import "fmt"

// The functions below run on a fresh NewDefaultRegistry per call. Dimension
// counting and sampling allow constants; use a Registry directly for the
// strict variants.

// IsFieldBounded reports whether f, with o applied when non-nil, is bounded.
func IsFieldBounded(f Field, o *FieldOverride) (bool, error) {
	return NewDefaultRegistry().CheckFieldBoundedness(f, o)
}

// IsModelBounded reports whether every field of s is bounded.
func IsModelBounded(s Schema) (bool, error) {
	return NewDefaultRegistry().CheckModelBoundedness(s)
}

// FieldDimensions counts the unit values f consumes, allowing constants.
func FieldDimensions(f Field, o *FieldOverride) (int, error) {
	return NewDefaultRegistry().FieldDimensions(f, true, o)
}

// ModelDimensions counts the unit values s consumes, allowing constants.
func ModelDimensions(s Schema, ov Overrides) (int, error) {
	return NewDefaultRegistry().ModelDimensions(s, true, ov)
}

// SampleModel samples an instance of s, allowing constants.
func SampleModel(units []float64, s Schema, ov Overrides) (any, error) {
	return NewDefaultRegistry().SampleModel(units, s, true, ov)
}

// SampleStruct samples a T from units. Constants are allowed only when T
// opts in through AllowConstants.
func SampleStruct[T any](r *Registry, units []float64, ov Overrides) (T, error) {
	var zero T
	s, err := SchemaFor[T]()
	if err != nil {
		return zero, err
	}
	v, err := r.SampleModel(units, s, s.AllowConstants(), ov)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s: got %T", ErrConstruct, s.Name(), v)
	}
	return out, nil
}

// StructDimensions counts the unit values SampleStruct consumes for T.
func StructDimensions[T any](r *Registry, ov Overrides) (int, error) {
	s, err := SchemaFor[T]()
	if err != nil {
		return 0, err
	}
	return r.ModelDimensions(s, s.AllowConstants(), ov)
}
