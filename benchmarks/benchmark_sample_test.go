package bounded_test

import (
	"fmt"
	"testing"

	"github.com/reoring/bounded"
	"github.com/reoring/bounded/docschema"
)

// ---- Helpers ----

type benchParams struct {
	Rate    float64 `bounded:"ge=0,le=1"`
	Count   int     `bounded:"ge=1,le=100"`
	Mode    string  `bounded:"values=fast|slow|auto"`
	Verbose bool
	Label   string `bounded:"default=bench"`
}

func (benchParams) AllowConstants() bool { return true }

func wideDocSchema(tb testing.TB, n int) *docschema.Schema {
	tb.Helper()
	doc := "type: object\nproperties:\n"
	for i := 0; i < n; i++ {
		doc += fmt.Sprintf("  p%03d: {type: number, minimum: 0, maximum: %d}\n", i, i+1)
	}
	s, err := docschema.LoadYAML([]byte(doc))
	if err != nil {
		tb.Fatalf("schema load failed: %v", err)
	}
	return s
}

func midpoint(n int) []float64 {
	units := make([]float64, n)
	for i := range units {
		units[i] = 0.5
	}
	return units
}

// ---- Benchmarks ----

func Benchmark_SampleStruct_Small(b *testing.B) {
	r := bounded.NewDefaultRegistry()
	n, err := bounded.StructDimensions[benchParams](r, nil)
	if err != nil {
		b.Fatal(err)
	}
	units := midpoint(n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bounded.SampleStruct[benchParams](r, units, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_ModelDimensions_Wide(b *testing.B) {
	r := bounded.NewDefaultRegistry()
	s := wideDocSchema(b, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.ModelDimensions(s, false, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_SampleModel_Wide(b *testing.B) {
	r := bounded.NewDefaultRegistry()
	s := wideDocSchema(b, 256)
	units := midpoint(256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.SampleModel(units, s, false, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_SampleModel_Wide_Overrides(b *testing.B) {
	r := bounded.NewDefaultRegistry()
	s := wideDocSchema(b, 256)
	ov := bounded.Overrides{}
	for i := 0; i < 256; i += 2 {
		ov[fmt.Sprintf("p%03d", i)] = bounded.MustFieldOverride(bounded.OverrideDefault(0.0))
	}
	units := midpoint(128)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.SampleModel(units, s, false, ov); err != nil {
			b.Fatal(err)
		}
	}
}
