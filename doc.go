// Package bounded classifies schema fields as bounded or unbounded and maps
// points of the unit hypercube to instances of bounded schemas.
//
// A field is bounded when its value space is finite or limited by declared
// bounds: numbers with a lower and an upper bound, strings with a maximum
// length, literals and enumerations, sequences with a maximum length, nested
// schemas whose fields are all bounded, and unions whose alternatives are all
// bounded. Only declared bounds count.
//
// For a bounded schema, ModelDimensions counts the unit values one sample
// consumes and SampleModel decodes a vector of that length, field by field in
// declaration order, into an instance built by the host schema. Unbounded
// fields that carry a default can be sampled as constants when allowed, and
// overrides addressed by dot-path add bounds or pin fields per call.
//
// Decisions are made by handlers held in a Registry in priority order; the
// first handler that accepts a field wins. NewDefaultRegistry installs the
// built-in handlers and Register adds custom ones.
//
// Typical usage:
//
//	type Params struct {
//		Rate  float64 `bounded:"ge=0,le=1"`
//		Count int     `bounded:"ge=1,le=10"`
//	}
//
//	r := bounded.NewDefaultRegistry()
//	n, err := bounded.StructDimensions[Params](r, nil)      // 2
//	p, err := bounded.SampleStruct[Params](r, []float64{0.5, 1}, nil)
//	// p == Params{Rate: 0.5, Count: 10}
//
// Schemas described by JSON Schema documents are available through the
// docschema package.
package bounded
