package bounded_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/reoring/bounded"
)

// unitFuzzer fills float64 values with uniform draws from [0, 1).
func unitFuzzer(seed int64) *fuzz.Fuzzer {
	return fuzz.NewWithSeed(seed).NilChance(0).Funcs(func(f *float64, c fuzz.Continue) {
		*f = c.Float64()
	})
}

func propertySchemas() map[string]bounded.Schema {
	inner := model("Inner",
		floatField("value"),
		intField("k", bounded.Gt(-3), bounded.Lt(3)),
		bounded.NewField("flag", bounded.Bool()),
	)
	return map[string]bounded.Schema{
		"flat": model("Flat",
			floatField("rate", bounded.Ge(0), bounded.Le(1)),
			intField("count", bounded.Ge(1), bounded.Le(10)),
			bounded.NewField("mode", bounded.Literal("a", "b", "c")),
			bounded.NewField("label", bounded.String(), bounded.WithDefault("x")),
		),
		"nested": model("Outer",
			floatField("scale", bounded.Gt(0), bounded.Le(100)),
			bounded.NewField("inner", bounded.Nested(inner)),
		),
		"struct": bounded.MustSchemaFor[Params](),
	}
}

func propertyOverrides() bounded.Overrides {
	return bounded.Overrides{
		"inner.value": bounded.MustFieldOverride(bounded.OverrideGe(-1), bounded.OverrideLe(1)),
	}
}

// Every vector of exactly ModelDimensions unit values samples successfully and
// every sampled numeric value lies inside its declared bounds.
func TestProperty_DimensionsMatchSampling(t *testing.T) {
	r := bounded.NewDefaultRegistry()
	ov := propertyOverrides()
	for name, s := range propertySchemas() {
		t.Run(name, func(t *testing.T) {
			n, err := r.ModelDimensions(s, true, ov)
			require.NoError(t, err)

			f := unitFuzzer(int64(len(name)))
			for i := 0; i < 200; i++ {
				units := make([]float64, n)
				for j := range units {
					f.Fuzz(&units[j])
				}
				v, err := r.SampleModel(units, s, true, ov)
				require.NoError(t, err, spew.Sdump(units))
				checkRanges(t, v, units)

				if n > 0 {
					_, err = r.SampleModel(units[:n-1], s, true, ov)
					require.ErrorIs(t, err, bounded.ErrDimensionMismatch)
				}
				_, err = r.SampleModel(append(units, 0.5), s, true, ov)
				require.ErrorIs(t, err, bounded.ErrDimensionMismatch)
			}
		})
	}
}

// Sampling is a pure function of the unit vector.
func TestProperty_Deterministic(t *testing.T) {
	r := bounded.NewDefaultRegistry()
	ov := propertyOverrides()
	s := propertySchemas()["nested"]
	n, err := r.ModelDimensions(s, true, ov)
	require.NoError(t, err)

	f := unitFuzzer(7)
	for i := 0; i < 50; i++ {
		units := make([]float64, n)
		for j := range units {
			f.Fuzz(&units[j])
		}
		a, err := r.SampleModel(units, s, true, ov)
		require.NoError(t, err)
		b, err := r.SampleModel(units, s, true, ov)
		require.NoError(t, err)
		require.Equal(t, a, b, spew.Sdump(units))
	}
}

func checkRanges(t *testing.T, v any, units []float64) {
	t.Helper()
	switch inst := v.(type) {
	case map[string]any:
		if rate, ok := inst["rate"].(float64); ok {
			require.True(t, rate >= 0 && rate <= 1, "rate %v from %s", rate, spew.Sdump(units))
		}
		if count, ok := inst["count"].(int64); ok {
			require.True(t, count >= 1 && count <= 10, "count %v from %s", count, spew.Sdump(units))
		}
		if scale, ok := inst["scale"].(float64); ok {
			require.True(t, scale >= 0 && scale <= 100, "scale %v", scale)
		}
		if inner, ok := inst["inner"].(map[string]any); ok {
			k := inner["k"].(int64)
			require.True(t, k >= -2 && k <= 2, "k %v from %s", k, spew.Sdump(units))
			value := inner["value"].(float64)
			require.True(t, value >= -1 && value <= 1, "value %v", value)
		}
	case Params:
		require.True(t, inst.Rate >= 0 && inst.Rate <= 1, spew.Sdump(inst))
		require.True(t, inst.Count >= 1 && inst.Count <= 10, spew.Sdump(inst))
		require.Contains(t, []string{"fast", "slow"}, inst.Mode)
	default:
		t.Fatalf("unexpected instance %s", spew.Sdump(v))
	}
}
