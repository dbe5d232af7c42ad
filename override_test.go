package bounded_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/bounded"
)

func TestNewFieldOverride_ConflictingDefaults(t *testing.T) {
	_, err := bounded.NewFieldOverride(
		bounded.OverrideDefault(1),
		bounded.OverrideDefaultFactory(func() any { return 2 }),
	)
	assert.ErrorIs(t, err, bounded.ErrConflictingDefaults)
	assert.Panics(t, func() {
		bounded.MustFieldOverride(bounded.OverrideDefault(1), bounded.OverrideDefaultFactory(func() any { return 2 }))
	})
}

func TestFieldOverride_GetDefault(t *testing.T) {
	o := bounded.MustFieldOverride(bounded.OverrideGe(0))
	assert.False(t, o.HasDefault())
	_, err := o.GetDefault()
	assert.ErrorIs(t, err, bounded.ErrMissingDefault)

	o = bounded.MustFieldOverride(bounded.OverrideDefault(nil))
	assert.True(t, o.HasDefault(), "a nil default still pins the field")
	v, err := o.GetDefault()
	require.NoError(t, err)
	assert.Nil(t, v)

	n := 0
	o = bounded.MustFieldOverride(bounded.OverrideDefaultFactory(func() any { n++; return n }))
	first, _ := o.GetDefault()
	second, _ := o.GetDefault()
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestMergeOverride(t *testing.T) {
	f := bounded.NewField("x", bounded.Float(), bounded.WithConstraints(bounded.Ge(-5)), bounded.WithDefault(1.0))
	o := bounded.MustFieldOverride(
		bounded.OverrideLt(9), bounded.OverrideGt(0), bounded.OverrideLe(10), bounded.OverrideGe(1),
		bounded.OverrideDefault(3.0),
	)
	m := bounded.MergeOverride(f, o)

	assert.Equal(t, "x", m.Name())
	assert.Equal(t, bounded.KindFloat, m.Type().Kind)
	assert.Equal(t, []bounded.Constraint{
		bounded.Ge(-5), bounded.Ge(1), bounded.Le(10), bounded.Gt(0), bounded.Lt(9),
	}, m.Constraints())
	def, ok := m.Default()
	require.True(t, ok)
	assert.Equal(t, 3.0, def)

	// the original is untouched
	assert.Equal(t, []bounded.Constraint{bounded.Ge(-5)}, f.Constraints())
	def, _ = f.Default()
	assert.Equal(t, 1.0, def)
}

func TestMergeOverride_FactoryReplacesDefault(t *testing.T) {
	f := bounded.NewField("x", bounded.Int(), bounded.WithDefault(1))
	m := bounded.MergeOverride(f, bounded.MustFieldOverride(bounded.OverrideDefaultFactory(func() any { return 7 })))
	_, ok := m.Default()
	assert.False(t, ok)
	v, err := m.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestMergeOverride_NoDefaultKeepsFieldDefault(t *testing.T) {
	f := bounded.NewField("x", bounded.Int(), bounded.WithDefault(4))
	m := bounded.MergeOverride(f, bounded.MustFieldOverride(bounded.OverrideLe(3)))
	v, err := m.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestOverrides_Nested(t *testing.T) {
	ov := bounded.Overrides{
		"a":       bounded.MustFieldOverride(bounded.OverrideGe(0)),
		"a.b":     bounded.MustFieldOverride(bounded.OverrideLe(1)),
		"a.c.d":   bounded.MustFieldOverride(bounded.OverrideDefault(2)),
		"ab.x":    bounded.MustFieldOverride(bounded.OverrideDefault(3)),
		"other.b": bounded.MustFieldOverride(bounded.OverrideDefault(4)),
	}
	sub := ov.Nested("a")
	assert.Equal(t, []string{"b", "c.d"}, sub.Paths())
	assert.Equal(t, []string{"d"}, sub.Nested("c").Paths())

	empty := ov.Nested("missing")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, ok := ov.Direct("a")
	assert.True(t, ok)
	_, ok = ov.Direct("a.b")
	assert.True(t, ok)
	_, ok = ov.Direct("b")
	assert.False(t, ok)

	var none bounded.Overrides
	assert.Empty(t, none.Nested("a"))
}

func TestField_Accessors(t *testing.T) {
	f := bounded.NewField("x", bounded.Int())
	assert.True(t, f.Required())
	assert.False(t, f.HasDefault())
	_, err := f.DefaultValue()
	assert.ErrorIs(t, err, bounded.ErrMissingDefault)

	g := bounded.NewField("y", bounded.Int(), bounded.WithDefaultFactory(nil))
	assert.True(t, g.Required(), "a nil factory is ignored")

	z := bounded.NewField("z", bounded.Int(), bounded.WithConstraints(bounded.Ge(1)))
	cs := z.Constraints()
	cs[0] = bounded.Le(100)
	assert.Equal(t, "Ge: 1", z.Constraints()[0].String())

	renamed := f.WithName("w")
	assert.Equal(t, "w", renamed.Name())
	assert.Equal(t, "x", f.Name())
}
