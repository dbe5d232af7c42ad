package bounded

import "fmt"

// StringHandler handles text scalars. A string is bounded by its maximum
// length; a minimum length is accepted but not required.
type StringHandler struct{}

func (StringHandler) CanHandle(f Field) bool { return f.Type().Kind == KindString }

func (h StringHandler) Bounded(f Field, _ *Registry) (bool, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return hasKind(f.constraints, ConstraintMaxLen), nil
}

func (h StringHandler) Dimensions(f Field, _ *Registry) (int, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return 1, nil
}

// Sample is not defined for strings: there is no agreed decoding of a unit
// value into text. Pin string fields with an override default instead.
func (h StringHandler) Sample(_ []float64, f Field, _ *Registry) (any, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return nil, fmt.Errorf("%w: %s", ErrSamplingUnsupported, f.Type())
}
