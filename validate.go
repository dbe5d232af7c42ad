package bounded

import (
	"fmt"
	"strings"
)

// Validate checks that s is fit for sampling. A strict schema must be bounded
// as a whole. A schema whose AllowConstants reports true may keep unbounded
// fields, provided each of them has a default; that is checked by counting its
// dimensions with constants allowed.
func (r *Registry) Validate(s Schema) error {
	if ca, ok := s.(ConstantsAllower); ok && ca.AllowConstants() {
		if _, err := r.ModelDimensions(s, true, nil); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrNotBounded, s.Name(), err)
		}
		return nil
	}
	ok, err := r.CheckModelBoundedness(s)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotBounded, s.Name(), err)
	}
	if ok {
		return nil
	}
	paths, err := r.UnboundedFields(s, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotBounded, s.Name(), err)
	}
	return fmt.Errorf("%w: %s: unbounded fields: %s", ErrNotBounded, s.Name(), strings.Join(paths, ", "))
}

// ValidateStruct validates the schema of struct type T on a default registry.
func ValidateStruct[T any]() error {
	s, err := SchemaFor[T]()
	if err != nil {
		return err
	}
	return NewDefaultRegistry().Validate(s)
}

// MustValidateStruct is like ValidateStruct but panics on error. It is meant
// for package-level declarations:
//
//	var _ = bounded.MustValidateStruct[SearchSpace]()
func MustValidateStruct[T any]() struct{} {
	if err := ValidateStruct[T](); err != nil {
		panic(err)
	}
	return struct{}{}
}
