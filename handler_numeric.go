package bounded

import (
	"fmt"
	"math"
)

// int64 admits every integer in [-2^63, 2^63).
const (
	minInt64Float = -(1 << 63)
	maxInt64Float = 1 << 63
)

// NumericHandler handles integer and floating-point scalars.
type NumericHandler struct{}

func (NumericHandler) CanHandle(f Field) bool {
	k := f.Type().Kind
	return k == KindInt || k == KindFloat
}

// Bounded requires at least one lower and one upper bound, inclusive or not.
func (h NumericHandler) Bounded(f Field, _ *Registry) (bool, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	cs := f.constraints
	return hasKind(cs, ConstraintGe, ConstraintGt) && hasKind(cs, ConstraintLe, ConstraintLt), nil
}

func (h NumericHandler) Dimensions(f Field, _ *Registry) (int, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return 1, nil
}

// Sample interpolates floats linearly between the bounds, so u=0 and u=1 hit
// the bound values exactly. Integers are bucketed over the admitted integers:
// exclusive bounds are tightened to the nearest admitted integer, u=1 maps to
// the upper end. Infinite bounds and integer ranges outside int64 fail with
// ErrRangeOverflow.
func (h NumericHandler) Sample(units []float64, f Field, _ *Registry) (any, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	u, err := singleUnit(units)
	if err != nil {
		return nil, err
	}
	lo, okLo := lowerBound(f.constraints)
	hi, okHi := upperBound(f.constraints)
	if !okLo || !okHi {
		return nil, fmt.Errorf("%w: numeric sampling needs both bounds", ErrUnboundedField)
	}

	if math.IsInf(lo.value, 0) || math.IsInf(hi.value, 0) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrRangeOverflow, lo.value, hi.value)
	}

	if f.Type().Kind == KindFloat {
		if lo.value > hi.value {
			return nil, fmt.Errorf("%w: [%v, %v]", ErrEmptyDomain, lo.value, hi.value)
		}
		// hi-lo may overflow to +Inf; the weighted form does not.
		return lo.value*(1-u) + hi.value*u, nil
	}

	first, last := lo.intLow(), hi.intHigh()
	if first > last {
		return nil, fmt.Errorf("%w: no integer in [%v, %v]", ErrEmptyDomain, lo.value, hi.value)
	}
	if first < minInt64Float || last >= maxInt64Float {
		return nil, fmt.Errorf("%w: integers in [%v, %v] exceed int64", ErrRangeOverflow, lo.value, hi.value)
	}
	return int64(math.Min(first+intOffset(u, last-first), last)), nil
}

// intOffset picks one of width+1 integer buckets. The result stays in
// [0, width] even when width+1 rounds in float64.
func intOffset(u, width float64) float64 {
	return math.Min(math.Floor(u*(width+1)), width)
}
