package bounded

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// TagName is the struct tag read by StructSchema.
const TagName = "bounded"

// ResolveStructKey returns the schema key of a struct field.
// Priority: bounded:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if bt, ok := sf.Tag.Lookup(TagName); ok {
		if strings.TrimSpace(bt) == "-" {
			return "-"
		}
		for _, p := range strings.Split(bt, ",") {
			p = strings.TrimSpace(p)
			if name, ok := strings.CutPrefix(p, "name="); ok {
				return name
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if i == 0 {
				return sf.Name
			}
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// fieldTag is the parsed form of a bounded:"..." tag.
type fieldTag struct {
	constraints []Constraint
	def         string
	hasDef      bool
	values      []string
}

// parseFieldTag parses comma-separated key=value pairs:
//
//	bounded:"ge=0,lt=100,default=10"
//	bounded:"maxlen=32"
//	bounded:"values=red|green|blue,default=red"
//
// The default is kept raw; it is converted once the Go type is known.
func parseFieldTag(tag string) (fieldTag, error) {
	var ft fieldTag
	if strings.TrimSpace(tag) == "" {
		return ft, nil
	}
	for _, p := range strings.Split(tag, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key, val, ok := strings.Cut(p, "=")
		if !ok {
			return ft, fmt.Errorf("%w: %q: expected key=value", ErrInvalidTag, p)
		}
		switch key {
		case "name":
		case "ge", "gt", "le", "lt":
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return ft, fmt.Errorf("%w: %s: %w", ErrInvalidTag, key, err)
			}
			ft.constraints = append(ft.constraints, boundConstraint(key, v))
		case "maxlen", "minlen":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return ft, fmt.Errorf("%w: %s=%q: want a non-negative integer", ErrInvalidTag, key, val)
			}
			if key == "maxlen" {
				ft.constraints = append(ft.constraints, MaxLen(n))
			} else {
				ft.constraints = append(ft.constraints, MinLen(n))
			}
		case "default":
			ft.def, ft.hasDef = val, true
		case "values":
			if val == "" {
				return ft, fmt.Errorf("%w: values: empty member list", ErrInvalidTag)
			}
			ft.values = strings.Split(val, "|")
		default:
			return ft, fmt.Errorf("%w: unknown key %q", ErrInvalidTag, key)
		}
	}
	return ft, nil
}

func boundConstraint(key string, v float64) Constraint {
	switch key {
	case "ge":
		return Ge(v)
	case "gt":
		return Gt(v)
	case "le":
		return Le(v)
	default:
		return Lt(v)
	}
}

// parseScalar converts raw into a value of Go type rt. Pointers are parsed as
// their element type. Enumeration types with a Members method are matched by
// their formatted member value.
func parseScalar(raw string, rt reflect.Type) (any, error) {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if members, ok := enumMembers(rt); ok {
		for _, m := range members {
			if fmt.Sprint(m) == raw {
				return m, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not a member of %s", ErrInvalidTag, raw, rt)
	}
	var v any
	switch rt.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTag, raw, err)
		}
		v = b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, rt.Bits())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTag, raw, err)
		}
		v = n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, rt.Bits())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTag, raw, err)
		}
		v = n
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, rt.Bits())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTag, raw, err)
		}
		v = f
	case reflect.String:
		v = raw
	default:
		return nil, fmt.Errorf("%w: cannot parse %q as %s", ErrInvalidTag, raw, rt)
	}
	return reflect.ValueOf(v).Convert(rt).Interface(), nil
}
