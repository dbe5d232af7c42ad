package bounded

import (
	"fmt"
	"reflect"
	"strings"
)

//go:generate go tool stringer -type=TypeKind,ConstraintKind -output=kind_string.go

// TypeKind classifies a declared field type.
type TypeKind int

const (
	KindInvalid TypeKind = iota
	KindInt              // integer scalar
	KindFloat            // floating-point scalar
	KindString           // text scalar
	KindLiteral          // explicit list of permitted values
	KindEnum             // closed enumeration type (bool included)
	KindList             // variable-length ordered container
	KindTuple            // fixed-capacity ordered container
	KindSet              // unordered container of unique elements
	KindMap              // key/value container
	KindSchema           // nested schema with its own fields
	KindUnion            // union of alternatives (optional when one of them is null)
	KindNull             // the null alternative of a union
	KindAny              // opaque type the host cannot describe further
)

// IsSequence reports whether the kind is one of the sequence containers.
func (k TypeKind) IsSequence() bool {
	switch k {
	case KindList, KindTuple, KindSet:
		return true
	default:
		return false
	}
}

// Type describes the declared type of a field. A Type is a value; handlers
// never mutate it.
type Type struct {
	Kind TypeKind
	// Name is used in diagnostics. Constructors fill it in; hosts may override
	// it with the native type name (for example "int32" or "Color").
	Name string
	// Values lists literal or enum members in declaration order.
	Values []any
	// Elem is the element type of sequences and the value type of maps.
	Elem *Type
	// Branches holds union alternatives, including KindNull when optional.
	Branches []Type
	// Schema is the nested schema for KindSchema.
	Schema Schema
	// Go is the originating Go type when the host is reflection based.
	Go reflect.Type
}

func (t Type) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Kind.String()
}

// NonNull returns the union branches that are not KindNull.
func (t Type) NonNull() []Type {
	out := make([]Type, 0, len(t.Branches))
	for _, b := range t.Branches {
		if b.Kind != KindNull {
			out = append(out, b)
		}
	}
	return out
}

// Nullable reports whether a union type includes the null alternative.
func (t Type) Nullable() bool {
	for _, b := range t.Branches {
		if b.Kind == KindNull {
			return true
		}
	}
	return false
}

// Int returns the integer scalar type.
func Int() Type { return Type{Kind: KindInt, Name: "int"} }

// Float returns the floating-point scalar type.
func Float() Type { return Type{Kind: KindFloat, Name: "float"} }

// String returns the text scalar type.
func String() Type { return Type{Kind: KindString, Name: "string"} }

// Null returns the null type used as a union alternative.
func Null() Type { return Type{Kind: KindNull, Name: "null"} }

// Any returns an opaque type no default handler claims.
func Any() Type { return Type{Kind: KindAny, Name: "any"} }

// Bool returns the closed enumeration {false, true}.
func Bool() Type { return Type{Kind: KindEnum, Name: "bool", Values: []any{false, true}} }

// Literal returns a type permitting exactly the given values, in order.
func Literal(values ...any) Type {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%#v", v)
	}
	return Type{Kind: KindLiteral, Name: "literal[" + strings.Join(parts, ", ") + "]", Values: values}
}

// Enum returns a named closed enumeration with members in declaration order.
func Enum(name string, members ...any) Type {
	return Type{Kind: KindEnum, Name: name, Values: members}
}

// List returns a list type over elem.
func List(elem Type) Type { return container(KindList, "list", elem) }

// Tuple returns a tuple type over elem.
func Tuple(elem Type) Type { return container(KindTuple, "tuple", elem) }

// Set returns a set type over elem.
func Set(elem Type) Type { return container(KindSet, "set", elem) }

// Map returns a map type with the given value type.
func Map(value Type) Type { return container(KindMap, "map", value) }

func container(k TypeKind, name string, elem Type) Type {
	e := elem
	return Type{Kind: k, Name: name + "[" + elem.String() + "]", Elem: &e}
}

// Nested returns a type whose value space is the given schema.
func Nested(s Schema) Type {
	return Type{Kind: KindSchema, Name: s.Name(), Schema: s}
}

// Union returns a union over the given alternatives.
func Union(branches ...Type) Type {
	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.String()
	}
	return Type{Kind: KindUnion, Name: strings.Join(names, " | "), Branches: branches}
}

// Optional returns the union of t and null.
func Optional(t Type) Type { return Union(t, Null()) }
