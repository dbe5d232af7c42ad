package bounded

import "fmt"

// OptionalHandler handles optional values (a type united with null) and
// unions of several non-null alternatives.
type OptionalHandler struct{}

func (OptionalHandler) CanHandle(f Field) bool {
	t := f.Type()
	if t.Kind != KindUnion {
		return false
	}
	return t.Nullable() || len(t.NonNull()) >= 2
}

// Bounded checks every non-null alternative as if the field were declared
// with that type, keeping the field's constraints. An optional is bounded when
// its single alternative is; a union when all of them are.
func (h OptionalHandler) Bounded(f Field, r *Registry) (bool, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	for _, b := range f.Type().NonNull() {
		ok, err := r.CheckFieldBoundedness(f.branch(b), nil)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Dimensions is undefined until unions get a branch-selection contract;
// callers can pin such fields with an override default.
func (h OptionalHandler) Dimensions(f Field, _ *Registry) (int, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return 0, fmt.Errorf("%w: %s", ErrSamplingUnsupported, f.Type())
}

func (h OptionalHandler) Sample(_ []float64, f Field, _ *Registry) (any, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return nil, fmt.Errorf("%w: %s", ErrSamplingUnsupported, f.Type())
}
