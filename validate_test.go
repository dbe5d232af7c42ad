package bounded_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/bounded"
)

type Loose struct {
	Rate float64 `bounded:"ge=0,le=1"`
	Tag  string
}

type LenientMissingDefault struct {
	bounded.Lenient
	Rate float64 `bounded:"ge=0,le=1"`
	Tag  string
}

type LenientWithDefault struct {
	bounded.Lenient
	Rate float64 `bounded:"ge=0,le=1"`
	Tag  string  `bounded:"default=v1"`
}

func TestValidate_Strict(t *testing.T) {
	require.NoError(t, bounded.ValidateStruct[Params]())

	err := bounded.ValidateStruct[Loose]()
	require.ErrorIs(t, err, bounded.ErrNotBounded)
	assert.Contains(t, err.Error(), "Tag")
}

func TestValidate_StrictNested(t *testing.T) {
	r := bounded.NewDefaultRegistry()
	inner := model("Inner", floatField("value"), intField("k", bounded.Ge(0), bounded.Le(1)))
	outer := model("Outer", bounded.NewField("inner", bounded.Nested(inner)))
	err := r.Validate(outer)
	require.ErrorIs(t, err, bounded.ErrNotBounded)
	assert.Contains(t, err.Error(), "inner.value")
}

func TestValidate_AllowConstants(t *testing.T) {
	err := bounded.ValidateStruct[LenientMissingDefault]()
	require.ErrorIs(t, err, bounded.ErrNotBounded)
	assert.ErrorIs(t, err, bounded.ErrMissingDefault)

	require.NoError(t, bounded.ValidateStruct[LenientWithDefault]())

	s := model("P", floatField("x"))
	s.lenient = true
	err = bounded.NewDefaultRegistry().Validate(s)
	assert.ErrorIs(t, err, bounded.ErrMissingDefault)
}

func TestMustValidateStruct(t *testing.T) {
	assert.NotPanics(t, func() { bounded.MustValidateStruct[Window]() })
	assert.Panics(t, func() { bounded.MustValidateStruct[Loose]() })
}

func TestConvenienceFunctions(t *testing.T) {
	s := rateCount()
	ok, err := bounded.IsModelBounded(s)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = bounded.IsFieldBounded(floatField("x"), nil)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := bounded.FieldDimensions(bounded.NewField("x", bounded.Float(), bounded.WithDefault(1.0)), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "constants are allowed")

	withConst := model("P", floatField("rate", bounded.Ge(0), bounded.Le(1)), bounded.NewField("tag", bounded.String(), bounded.WithDefault("t")))
	n, err = bounded.ModelDimensions(withConst, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	v, err := bounded.SampleModel([]float64{1}, withConst, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"rate": 1.0, "tag": "t"}, v)
}
