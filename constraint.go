package bounded

import (
	"fmt"
	"math"
	"strings"
)

// ConstraintKind tags a bound annotation.
type ConstraintKind int

const (
	ConstraintInvalid ConstraintKind = iota
	ConstraintGe                     // lower bound, inclusive
	ConstraintGt                     // lower bound, exclusive
	ConstraintLe                     // upper bound, inclusive
	ConstraintLt                     // upper bound, exclusive
	ConstraintMaxLen                 // maximum length
	ConstraintMinLen                 // minimum length
	ConstraintCustom                 // host-specific tag, ignored by built-in handlers
)

// TrimString renders the kind without the "Constraint" prefix.
func (k ConstraintKind) TrimString() string {
	return strings.TrimPrefix(k.String(), "Constraint")
}

// Constraint is one bound annotation attached to a field.
type Constraint struct {
	Kind  ConstraintKind
	Value float64
	// Tag names a ConstraintCustom annotation.
	Tag string
}

func (c Constraint) String() string {
	if c.Kind == ConstraintCustom {
		return fmt.Sprintf("%s: %v", c.Tag, c.Value)
	}
	return fmt.Sprintf("%s: %v", c.Kind.TrimString(), c.Value)
}

// Ge returns an inclusive lower bound.
func Ge(v float64) Constraint { return Constraint{Kind: ConstraintGe, Value: v} }

// Gt returns an exclusive lower bound.
func Gt(v float64) Constraint { return Constraint{Kind: ConstraintGt, Value: v} }

// Le returns an inclusive upper bound.
func Le(v float64) Constraint { return Constraint{Kind: ConstraintLe, Value: v} }

// Lt returns an exclusive upper bound.
func Lt(v float64) Constraint { return Constraint{Kind: ConstraintLt, Value: v} }

// MaxLen returns a maximum length bound for strings and sequences.
func MaxLen(n int) Constraint { return Constraint{Kind: ConstraintMaxLen, Value: float64(n)} }

// MinLen returns a minimum length bound for strings and sequences.
func MinLen(n int) Constraint { return Constraint{Kind: ConstraintMinLen, Value: float64(n)} }

// Custom returns an annotation with a host-specific tag.
func Custom(tag string, v float64) Constraint {
	return Constraint{Kind: ConstraintCustom, Tag: tag, Value: v}
}

// hasKind reports whether any constraint has one of the given kinds.
func hasKind(cs []Constraint, kinds ...ConstraintKind) bool {
	for _, c := range cs {
		for _, k := range kinds {
			if c.Kind == k {
				return true
			}
		}
	}
	return false
}

// bound is the effective limit on one side of a numeric domain.
type bound struct {
	value     float64
	exclusive bool
}

// lowerBound returns the tightest lower bound. Annotations accumulate through
// overrides, so the effective domain is their intersection. On equal values the
// exclusive bound wins.
func lowerBound(cs []Constraint) (bound, bool) {
	var (
		b  bound
		ok bool
	)
	for _, c := range cs {
		if c.Kind != ConstraintGe && c.Kind != ConstraintGt {
			continue
		}
		cand := bound{value: c.Value, exclusive: c.Kind == ConstraintGt}
		if !ok || cand.value > b.value || (cand.value == b.value && cand.exclusive) {
			b, ok = cand, true
		}
	}
	return b, ok
}

// upperBound returns the tightest upper bound, see lowerBound.
func upperBound(cs []Constraint) (bound, bool) {
	var (
		b  bound
		ok bool
	)
	for _, c := range cs {
		if c.Kind != ConstraintLe && c.Kind != ConstraintLt {
			continue
		}
		cand := bound{value: c.Value, exclusive: c.Kind == ConstraintLt}
		if !ok || cand.value < b.value || (cand.value == b.value && cand.exclusive) {
			b, ok = cand, true
		}
	}
	return b, ok
}

// intLow is the smallest integer admitted by b.
func (b bound) intLow() float64 {
	if b.exclusive {
		return math.Floor(b.value) + 1
	}
	return math.Ceil(b.value)
}

// intHigh is the largest integer admitted by b.
func (b bound) intHigh() float64 {
	if b.exclusive {
		return math.Ceil(b.value) - 1
	}
	return math.Floor(b.value)
}
