package bounded

// Schema is the boundary with the host schema framework.
//
// Fields must return descriptors in declaration order; the order defines how
// unit values line up with fields during sampling. New builds an instance from
// a complete name -> value mapping and may reject values that violate host
// invariants unrelated to boundedness.
type Schema interface {
	Name() string
	Fields() ([]Field, error)
	New(values map[string]any) (any, error)
}

// ConstantsAllower is implemented by schemas that tolerate unbounded fields
// as long as they carry a default. See Registry.Validate.
type ConstantsAllower interface {
	AllowConstants() bool
}
