package bounded

import "fmt"

// LiteralHandler handles explicit lists of permitted values.
type LiteralHandler struct{}

func (LiteralHandler) CanHandle(f Field) bool { return f.Type().Kind == KindLiteral }

// Bounded is always true: the value space is the member list.
func (h LiteralHandler) Bounded(f Field, _ *Registry) (bool, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return true, nil
}

func (h LiteralHandler) Dimensions(f Field, _ *Registry) (int, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return 1, nil
}

func (h LiteralHandler) Sample(units []float64, f Field, _ *Registry) (any, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return sampleMember(units, f.Type())
}

// EnumHandler handles closed enumeration types.
type EnumHandler struct{}

func (EnumHandler) CanHandle(f Field) bool { return f.Type().Kind == KindEnum }

func (h EnumHandler) Bounded(f Field, _ *Registry) (bool, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return true, nil
}

func (h EnumHandler) Dimensions(f Field, _ *Registry) (int, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return 1, nil
}

func (h EnumHandler) Sample(units []float64, f Field, _ *Registry) (any, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return sampleMember(units, f.Type())
}

// sampleMember picks a member in declaration order: 0 yields the first,
// 1 the last.
func sampleMember(units []float64, t Type) (any, error) {
	u, err := singleUnit(units)
	if err != nil {
		return nil, err
	}
	if len(t.Values) == 0 {
		return nil, fmt.Errorf("%w: %s has no members", ErrEmptyDomain, t)
	}
	return t.Values[unitIndex(u, len(t.Values))], nil
}
