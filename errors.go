package bounded

import (
	"errors"
	"fmt"
)

// Sentinel errors. Branch on them with errors.Is; call sites attach context
// with %w.
var (
	// ErrUnhandledType: no registered handler claims the field's type.
	ErrUnhandledType = errors.New("bounded: no handler for field type")
	// ErrUnboundedField: the field is unbounded and constants are not allowed.
	ErrUnboundedField = errors.New("bounded: field is not bounded")
	// ErrMissingDefault: the field is unbounded and has no default to fall back to.
	ErrMissingDefault = errors.New("bounded: unbounded field has no default")
	// ErrConflictingDefaults: an override sets both a default and a default factory.
	ErrConflictingDefaults = errors.New("bounded: cannot specify both default and default factory")
	// ErrUnreachableDispatch: a handler was invoked on a type it does not handle.
	ErrUnreachableDispatch = errors.New("bounded: handler invoked on a type it cannot handle")
	// ErrSamplingUnsupported: the handler has no dimension or sampling contract for the type.
	ErrSamplingUnsupported = errors.New("bounded: sampling not supported for field type")
	// ErrDimensionMismatch: the number of unit values differs from the dimensions consumed.
	ErrDimensionMismatch = errors.New("bounded: unit value count does not match dimensions")
	// ErrUnitOutOfRange: a unit value is NaN or outside [0, 1].
	ErrUnitOutOfRange = errors.New("bounded: unit value outside [0, 1]")
	// ErrEmptyDomain: the declared domain admits no value.
	ErrEmptyDomain = errors.New("bounded: empty domain")
	// ErrRangeOverflow: a bound is infinite or an integer bound does not fit int64.
	ErrRangeOverflow = errors.New("bounded: range not representable")
	// ErrNotBounded: a schema failed validation.
	ErrNotBounded = errors.New("bounded: schema is not properly bounded")
	// ErrInvalidTag: a struct tag could not be parsed.
	ErrInvalidTag = errors.New("bounded: invalid struct tag")
	// ErrConstruct: the host could not build an instance from sampled values.
	ErrConstruct = errors.New("bounded: cannot construct instance")
)

// FieldError attaches the field path and declared type to a field-level
// failure.
type FieldError struct {
	Path string // dot-path from the schema root, e.g. "inner.value"
	Type string // declared type as rendered by Type.String
	Err  error
}

func newFieldError(path string, t Type, err error) *FieldError {
	return &FieldError{Path: path, Type: t.String(), Err: err}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q (%s): %v", e.Path, e.Type, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// AsFieldError extracts a *FieldError from err using errors.As.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// prefixPath rebases a field error found inside a nested schema under the
// parent field name. Other errors pass through unchanged.
func prefixPath(parent string, err error) error {
	var fe *FieldError
	if parent == "" || !errors.As(err, &fe) {
		return err
	}
	path := parent
	if fe.Path != "" {
		path += "." + fe.Path
	}
	return &FieldError{Path: path, Type: fe.Type, Err: fe.Err}
}
