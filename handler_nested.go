package bounded

// NestedHandler handles fields whose type is itself a schema. All three
// operations delegate to the registry's whole-schema operations.
type NestedHandler struct{}

func (NestedHandler) CanHandle(f Field) bool {
	t := f.Type()
	return t.Kind == KindSchema && t.Schema != nil
}

func (h NestedHandler) Bounded(f Field, r *Registry) (bool, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return r.CheckModelBoundedness(f.Type().Schema)
}

func (h NestedHandler) Dimensions(f Field, r *Registry) (int, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return r.ModelDimensions(f.Type().Schema, false, nil)
}

func (h NestedHandler) Sample(units []float64, f Field, r *Registry) (any, error) {
	if !h.CanHandle(f) {
		unreachable(h, f)
	}
	return r.SampleModel(units, f.Type().Schema, false, nil)
}
