package bounded

import (
	"fmt"
	"math"
)

// Handler decides boundedness, dimensionality and sampling for one class of
// field types. Handlers are stateless; the registry passes itself in so that
// composite handlers can recurse.
//
// Bounded, Dimensions and Sample are only called on fields for which
// CanHandle returned true.
type Handler interface {
	CanHandle(f Field) bool
	Bounded(f Field, r *Registry) (bool, error)
	// Dimensions is the number of unit values Sample consumes. It does not
	// imply the field is bounded.
	Dimensions(f Field, r *Registry) (int, error)
	// Sample decodes exactly Dimensions unit values into a value.
	Sample(units []float64, f Field, r *Registry) (any, error)
}

// unreachable panics: the handler was handed a field its CanHandle rejects.
func unreachable(h Handler, f Field) {
	panic(fmt.Errorf("%w: %T on %s", ErrUnreachableDispatch, h, f.Type()))
}

// singleUnit validates that units holds exactly one value in [0, 1].
func singleUnit(units []float64) (float64, error) {
	if len(units) != 1 {
		return 0, fmt.Errorf("%w: want 1, got %d", ErrDimensionMismatch, len(units))
	}
	return checkUnit(units[0])
}

func checkUnit(u float64) (float64, error) {
	if math.IsNaN(u) || u < 0 || u > 1 {
		return 0, fmt.Errorf("%w: %v", ErrUnitOutOfRange, u)
	}
	return u, nil
}

// unitIndex maps u in [0, 1] onto one of n buckets. u == 1 lands in the last
// bucket instead of one past it.
func unitIndex(u float64, n int) int {
	i := int(math.Floor(u * float64(n)))
	if i > n-1 {
		i = n - 1
	}
	return i
}
