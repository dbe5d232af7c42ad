package bounded_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/bounded"
)

// fixedHandler claims every field of one kind and answers with fixed values.
type fixedHandler struct {
	kind    bounded.TypeKind
	bounded bool
	dims    int
	value   any
}

func (h fixedHandler) CanHandle(f bounded.Field) bool { return f.Type().Kind == h.kind }
func (h fixedHandler) Bounded(bounded.Field, *bounded.Registry) (bool, error) {
	return h.bounded, nil
}
func (h fixedHandler) Dimensions(bounded.Field, *bounded.Registry) (int, error) {
	return h.dims, nil
}
func (h fixedHandler) Sample([]float64, bounded.Field, *bounded.Registry) (any, error) {
	return h.value, nil
}

func TestNewDefaultRegistry_Order(t *testing.T) {
	hs := bounded.NewDefaultRegistry().Handlers()
	require.Len(t, hs, 7)
	assert.IsType(t, bounded.OptionalHandler{}, hs[0])
	assert.IsType(t, bounded.NestedHandler{}, hs[1])
	assert.IsType(t, bounded.SequenceHandler{}, hs[2])
	assert.IsType(t, bounded.LiteralHandler{}, hs[3])
	assert.IsType(t, bounded.EnumHandler{}, hs[4])
	assert.IsType(t, bounded.NumericHandler{}, hs[5])
	assert.IsType(t, bounded.StringHandler{}, hs[6])
}

func TestRegister_PriorityAndTies(t *testing.T) {
	r := bounded.NewRegistry()
	a := fixedHandler{kind: bounded.KindString, value: "a"}
	b := fixedHandler{kind: bounded.KindString, value: "b"}
	c := fixedHandler{kind: bounded.KindString, value: "c"}
	r.Register(a, 50)
	r.Register(b, 10)
	r.Register(c, 50)

	hs := r.Handlers()
	require.Len(t, hs, 3)
	assert.Equal(t, b, hs[0])
	assert.Equal(t, a, hs[1], "ties keep registration order")
	assert.Equal(t, c, hs[2])

	h, ok := r.Lookup(bounded.NewField("s", bounded.String()))
	require.True(t, ok)
	assert.Equal(t, b, h)
}

func TestRegister_CustomHandlerTakesPrecedence(t *testing.T) {
	r := bounded.NewDefaultRegistry()
	custom := fixedHandler{kind: bounded.KindString, bounded: true, dims: 1, value: "fixed"}
	r.Register(custom, bounded.PriorityString-1)

	f := bounded.NewField("s", bounded.String())
	ok, err := r.CheckFieldBoundedness(f, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := r.SampleField([]float64{0.3}, f, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed", v)
}

func TestWithHandlers_RunBeforeBuiltins(t *testing.T) {
	custom := fixedHandler{kind: bounded.KindInt, bounded: true, dims: 1, value: int64(42)}
	r := bounded.NewDefaultRegistry(bounded.WithHandlers(custom))
	v, err := r.SampleField([]float64{0}, intField("n", bounded.Ge(0), bounded.Le(1)), false, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestRegister_NilPanics(t *testing.T) {
	assert.Panics(t, func() { bounded.NewRegistry().Register(nil, 0) })
	assert.Panics(t, func() { bounded.WithHandlers(nil) })
}

func TestNoHandlerPolicy(t *testing.T) {
	f := bounded.NewField("blob", bounded.Any())

	strict := bounded.NewDefaultRegistry()
	_, err := strict.CheckFieldBoundedness(f, nil)
	require.ErrorIs(t, err, bounded.ErrUnhandledType)
	fe, ok := bounded.AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "blob", fe.Path)
	assert.Equal(t, "any", fe.Type)

	permissive := bounded.NewDefaultRegistry(bounded.WithFailOnNoHandler(false))
	ok, err = permissive.CheckFieldBoundedness(f, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = permissive.FieldDimensions(f, true, nil)
	assert.ErrorIs(t, err, bounded.ErrUnhandledType, "nothing can decode a value for it")

	withDefault := bounded.NewField("blob", bounded.Any(), bounded.WithDefault([]byte("x")))
	n, err := permissive.FieldDimensions(withDefault, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCheckFieldBoundedness_Override(t *testing.T) {
	r := bounded.NewDefaultRegistry()
	f := floatField("x")
	ok, err := r.CheckFieldBoundedness(f, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	o := bounded.MustFieldOverride(bounded.OverrideGe(0), bounded.OverrideLe(1))
	ok, err = r.CheckFieldBoundedness(f, &o)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckModelBoundedness_NestedPropagation(t *testing.T) {
	r := bounded.NewDefaultRegistry()
	boundedInner := model("Inner", floatField("value", bounded.Ge(0), bounded.Le(1)))
	unboundedInner := model("Inner", floatField("value"))

	ok, err := r.CheckModelBoundedness(model("Outer", bounded.NewField("inner", bounded.Nested(boundedInner))))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CheckModelBoundedness(model("Outer", bounded.NewField("inner", bounded.Nested(unboundedInner))))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.CheckModelBoundedness(model("Empty"))
	require.NoError(t, err)
	assert.True(t, ok, "a schema without fields is vacuously bounded")
}

func TestUnboundedFields(t *testing.T) {
	r := bounded.NewDefaultRegistry()
	inner := model("Inner", floatField("value"), intField("n", bounded.Ge(0), bounded.Le(3)))
	outer := model("Outer",
		floatField("rate", bounded.Ge(0), bounded.Le(1)),
		floatField("scale"),
		bounded.NewField("inner", bounded.Nested(inner)),
	)

	paths, err := r.UnboundedFields(outer, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"scale", "inner.value"}, paths)

	ov := bounded.Overrides{
		"scale":       bounded.MustFieldOverride(bounded.OverrideGt(0), bounded.OverrideLt(10)),
		"inner.value": bounded.MustFieldOverride(bounded.OverrideDefault(5.0)),
	}
	paths, err = r.UnboundedFields(outer, ov)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := bounded.NewDefaultRegistry()
	s := model("P", floatField("rate", bounded.Ge(0), bounded.Le(1)), intField("n", bounded.Ge(1), bounded.Le(4)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				r.Register(fixedHandler{kind: bounded.KindAny}, 100+i)
			}
			n, err := r.ModelDimensions(s, false, nil)
			assert.NoError(t, err)
			assert.Equal(t, 2, n)
			_, err = r.SampleModel([]float64{0.5, 0.5}, s, false, nil)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
