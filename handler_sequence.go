package bounded

import "fmt"

// SequenceHandler handles lists, tuples and sets.
//
// A sequence is bounded by its maximum length. When the element type is a
// nested schema, that schema must be bounded too; scalar elements add no
// requirement of their own.
type SequenceHandler struct{}

func (SequenceHandler) CanHandle(f Field) bool { return f.Type().Kind.IsSequence() }

func (h SequenceHandler) Bounded(f Field, r *Registry) (bool, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	if !hasKind(f.constraints, ConstraintMaxLen) {
		return false, nil
	}
	elem := f.Type().Elem
	if elem == nil || elem.Kind != KindSchema {
		return true, nil
	}
	return r.CheckFieldBoundedness(f.branch(*elem), nil)
}

// Dimensions has no fixed-width contract for variable-length containers.
// TODO: settle between sampling a length coordinate first and always sampling
// max-length elements before enabling sequence sampling.
func (h SequenceHandler) Dimensions(f Field, _ *Registry) (int, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return 0, fmt.Errorf("%w: %s", ErrSamplingUnsupported, f.Type())
}

func (h SequenceHandler) Sample(_ []float64, f Field, _ *Registry) (any, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return nil, fmt.Errorf("%w: %s", ErrSamplingUnsupported, f.Type())
}
