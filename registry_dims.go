package bounded

// FieldDimensions returns how many unit values f consumes under o: 0 for a
// constant, the handler's count for a bounded field. An unbounded field is an
// ErrUnboundedField unless allowConstants is set, in which case it needs a
// default (ErrMissingDefault otherwise).
func (r *Registry) FieldDimensions(f Field, allowConstants bool, o *FieldOverride) (int, error) {
	p, err := r.planField(f, allowConstants, o)
	if err != nil {
		return 0, err
	}
	return p.dims, nil
}

// ModelDimensions sums FieldDimensions over the fields of s. A nested schema
// field with a direct override or dot-path overrides below it is not treated
// as a unit: the nested schema's own fields are counted with the stripped
// overrides, so parts of it can be bounded or pinned individually. A direct
// override default on the field itself wins and makes it a constant.
func (r *Registry) ModelDimensions(s Schema, allowConstants bool, ov Overrides) (int, error) {
	fields, err := s.Fields()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, f := range fields {
		n, err := r.modelFieldDimensions(f, allowConstants, ov)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (r *Registry) modelFieldDimensions(f Field, allowConstants bool, ov Overrides) (int, error) {
	name := f.Name()
	direct, hasDirect := ov.Direct(name)
	if hasDirect && direct.HasDefault() {
		return 0, nil
	}
	if nested := ov.Nested(name); isNestedSchema(f) && (len(nested) > 0 || hasDirect) {
		n, err := r.ModelDimensions(f.Type().Schema, allowConstants, nested)
		if err != nil {
			return 0, prefixPath(name, err)
		}
		return n, nil
	}
	var o *FieldOverride
	if hasDirect {
		o = &direct
	}
	return r.FieldDimensions(f, allowConstants, o)
}
