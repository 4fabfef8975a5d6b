package jsonvalue

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

type field struct {
	name      string
	index     []int
	omitEmpty bool
	optional  bool // may be absent when decoding
}

// fields lists the coded fields of struct type t. Embedded structs without
// a tag name are flattened; on a name clash the shallower field wins and
// among equals the first declared wins.
func (c *Coder) fields(t reflect.Type) []field {
	var out []field
	c.collect(t, nil, 0, &out, map[string]slot{})
	return out
}

type slot struct{ pos, depth int }

func (c *Coder) collect(t reflect.Type, prefix []int, level int, out *[]field, seen map[string]slot) {
	var embedded []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if sf.Anonymous {
			if !sf.IsExported() && (ft.Kind() != reflect.Struct || sf.Type.Kind() == reflect.Pointer) {
				continue
			}
		} else if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get(c.tag)
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if sf.Anonymous && name == "" && ft.Kind() == reflect.Struct {
			embedded = append(embedded, sf)
			continue
		}
		if name == "" {
			name = c.keyFor(sf.Name)
		}
		omit := hasOption(opts, "omitempty")
		f := field{
			name:      name,
			index:     appendIndex(prefix, sf.Index[0]),
			omitEmpty: omit,
			optional:  omit || sf.Type.Kind() == reflect.Pointer,
		}
		if prev, dup := seen[name]; dup {
			if prev.depth <= level {
				continue
			}
			(*out)[prev.pos] = f
			seen[name] = slot{pos: prev.pos, depth: level}
			continue
		}
		seen[name] = slot{pos: len(*out), depth: level}
		*out = append(*out, f)
	}
	for _, sf := range embedded {
		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		c.collect(ft, appendIndex(prefix, sf.Index[0]), level+1, out, seen)
	}
}

func (c *Coder) keyFor(goName string) string {
	switch c.keys {
	case KeySnake:
		return strcase.ToSnake(goName)
	case KeyCamel:
		return strcase.ToLowerCamel(goName)
	case KeyKebab:
		return strcase.ToKebab(goName)
	case KeyScreamingSnake:
		return strcase.ToScreamingSnake(goName)
	default:
		return goName
	}
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}

func appendIndex(prefix []int, i int) []int {
	out := make([]int, len(prefix), len(prefix)+1)
	copy(out, prefix)
	return append(out, i)
}

// fieldOf reads the field at index for encoding. It reports false when a
// nil embedded pointer is in the way.
func fieldOf(rv reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return reflect.Value{}, false
			}
			rv = rv.Elem()
		}
		rv = rv.Field(x)
	}
	return rv, true
}

// settableField reaches the field at index for decoding, allocating nil
// embedded pointers on the way.
func settableField(rv reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				if !rv.CanSet() {
					return reflect.Value{}, false
				}
				rv.Set(reflect.New(rv.Type().Elem()))
			}
			rv = rv.Elem()
		}
		rv = rv.Field(x)
	}
	return rv, rv.CanSet()
}
