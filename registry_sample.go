package bounded

import (
	"fmt"

	"github.com/untillpro/goutils/logger"
)

// fieldPlan is the resolved treatment of one field: either a constant taken
// from its (possibly overridden) default, or dims unit values decoded by
// handler. Dimension counting and sampling share it so that both traversals
// agree on every field.
type fieldPlan struct {
	field    Field
	handler  Handler
	dims     int
	constant bool
}

// planField resolves f under o. An override default short-circuits to a
// constant regardless of allowConstants. Otherwise a bounded field is handed to
// its handler and an unbounded one becomes a constant when allowed and a
// default exists.
func (r *Registry) planField(f Field, allowConstants bool, o *FieldOverride) (fieldPlan, error) {
	eff := f
	if o != nil {
		eff = MergeOverride(f, *o)
		if o.HasDefault() {
			return fieldPlan{field: eff, constant: true}, nil
		}
	}

	h, ok := r.Lookup(eff)
	if !ok {
		if r.failOnNoHandler {
			return fieldPlan{}, newFieldError(eff.Name(), eff.Type(), ErrUnhandledType)
		}
		// Vacuously bounded, but nothing can decode it: the default is the
		// only value it can take.
		if !eff.HasDefault() {
			return fieldPlan{}, newFieldError(eff.Name(), eff.Type(), ErrUnhandledType)
		}
		return fieldPlan{field: eff, constant: true}, nil
	}

	bounded, err := h.Bounded(eff, r)
	if err != nil {
		return fieldPlan{}, wrapField(eff, err)
	}
	if bounded {
		n, err := h.Dimensions(eff, r)
		if err != nil {
			return fieldPlan{}, wrapField(eff, err)
		}
		return fieldPlan{field: eff, handler: h, dims: n}, nil
	}

	if !allowConstants {
		return fieldPlan{}, newFieldError(eff.Name(), eff.Type(), ErrUnboundedField)
	}
	if !eff.HasDefault() {
		return fieldPlan{}, newFieldError(eff.Name(), eff.Type(), ErrMissingDefault)
	}
	return fieldPlan{field: eff, constant: true}, nil
}

// cursor walks the flat unit vector during sampling.
type cursor struct {
	units []float64
	pos   int
}

func (c *cursor) take(n int) ([]float64, error) {
	if c.pos+n > len(c.units) {
		return nil, fmt.Errorf("%w: need %d more after %d, have %d", ErrDimensionMismatch, n, c.pos, len(c.units))
	}
	out := c.units[c.pos : c.pos+n]
	c.pos += n
	if logger.IsTrace() {
		logger.Trace(fmt.Sprintf("bounded: consumed %v, cursor at %d/%d", out, c.pos, len(c.units)))
	}
	return out, nil
}

// SampleField decodes units into a value for f. units must hold exactly the
// number of values FieldDimensions reports for the same arguments.
func (r *Registry) SampleField(units []float64, f Field, allowConstants bool, o *FieldOverride) (any, error) {
	if err := checkUnits(units); err != nil {
		return nil, err
	}
	c := &cursor{units: units}
	v, err := r.sampleField(c, f, allowConstants, o)
	if err != nil {
		return nil, err
	}
	if c.pos != len(units) {
		return nil, fmt.Errorf("%w: consumed %d of %d", ErrDimensionMismatch, c.pos, len(units))
	}
	return v, nil
}

func (r *Registry) sampleField(c *cursor, f Field, allowConstants bool, o *FieldOverride) (any, error) {
	p, err := r.planField(f, allowConstants, o)
	if err != nil {
		return nil, err
	}
	if p.constant {
		return p.field.DefaultValue()
	}
	units, err := c.take(p.dims)
	if err != nil {
		return nil, wrapField(p.field, err)
	}
	v, err := p.handler.Sample(units, p.field, r)
	if err != nil {
		return nil, wrapField(p.field, err)
	}
	return v, nil
}

// SampleModel maps a point of the unit hypercube to an instance of s. Fields
// are visited in declaration order, each consuming as many leading unit values
// as ModelDimensions counts for it with the same arguments; the instance is
// built by s.New once every field is resolved. Supplying more or fewer values
// than ModelDimensions fails with ErrDimensionMismatch.
func (r *Registry) SampleModel(units []float64, s Schema, allowConstants bool, ov Overrides) (any, error) {
	if err := checkUnits(units); err != nil {
		return nil, err
	}
	c := &cursor{units: units}
	v, err := r.sampleModel(c, s, allowConstants, ov)
	if err != nil {
		return nil, err
	}
	if c.pos != len(units) {
		return nil, fmt.Errorf("%w: %s consumed %d of %d", ErrDimensionMismatch, s.Name(), c.pos, len(units))
	}
	return v, nil
}

func (r *Registry) sampleModel(c *cursor, s Schema, allowConstants bool, ov Overrides) (any, error) {
	fields, err := s.Fields()
	if err != nil {
		return nil, err
	}
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		v, err := r.sampleModelField(c, f, allowConstants, ov)
		if err != nil {
			return nil, err
		}
		values[f.Name()] = v
	}
	inst, err := s.New(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConstruct, s.Name(), err)
	}
	return inst, nil
}

func (r *Registry) sampleModelField(c *cursor, f Field, allowConstants bool, ov Overrides) (any, error) {
	name := f.Name()
	direct, hasDirect := ov.Direct(name)
	if hasDirect && direct.HasDefault() {
		v, err := direct.GetDefault()
		if err != nil {
			return nil, wrapField(f, err)
		}
		return v, nil
	}
	if nested := ov.Nested(name); isNestedSchema(f) && (len(nested) > 0 || hasDirect) {
		v, err := r.sampleModel(c, f.Type().Schema, allowConstants, nested)
		if err != nil {
			return nil, prefixPath(name, err)
		}
		return v, nil
	}
	var o *FieldOverride
	if hasDirect {
		o = &direct
	}
	return r.sampleField(c, f, allowConstants, o)
}

func checkUnits(units []float64) error {
	for i, u := range units {
		if _, err := checkUnit(u); err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
	}
	return nil
}
