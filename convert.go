package jsonvalue

import (
	"encoding/json"
	"math"
	"reflect"
)

// FromAny converts plain Go data into a Value. It accepts what generic
// decoders produce: nil, bool, string, every integer and float kind,
// json.Number, []any, map[string]any and map[any]any with string keys, as
// well as Value and Number. Unsigned integers above math.MaxInt64 become
// Double. Anything else fails with *UnsupportedTypeError; use Encode for
// structs and typed slices and maps.
func FromAny(x any) (Value, error) {
	return fromAny(x, nil)
}

// MustFromAny is like FromAny but panics on error. Meant for literals in
// tests and examples.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

func fromAny(x any, path Path) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case Number:
		return Num(t), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return fromUint(uint64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return fromUint(t), nil
	case float32:
		return Float(t), nil
	case float64:
		return Double(t), nil
	case json.Number:
		return numberFromText(string(t)), nil
	case []Value:
		return Array(t...), nil
	case map[string]Value:
		return Object(t), nil
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			v, err := fromAny(e, path.WithIndex(i))
			if err != nil {
				return Null(), err
			}
			arr[i] = v
		}
		return Value{kind: ArrayKind, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := fromAny(e, path.WithKey(k))
			if err != nil {
				return Null(), err
			}
			obj[k] = v
		}
		return Value{kind: ObjectKind, obj: obj}, nil
	case map[any]any:
		// CBOR and YAML decoders produce these for maps.
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return Null(), &UnsupportedTypeError{Path: path, Type: reflect.TypeOf(k)}
			}
			v, err := fromAny(e, path.WithKey(ks))
			if err != nil {
				return Null(), err
			}
			obj[ks] = v
		}
		return Value{kind: ObjectKind, obj: obj}, nil
	default:
		return Null(), &UnsupportedTypeError{Path: path, Type: reflect.TypeOf(x)}
	}
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Double(float64(u))
	}
	return Int(int64(u))
}

// ToAny converts v to plain Go data: nil, bool, string, int64, float32,
// float64, []any and map[string]any.
func (v Value) ToAny() any {
	switch v.kind {
	case BoolKind:
		return v.b
	case StringKind:
		return v.s
	case NumberKind:
		return v.n.any()
	case ArrayKind:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToAny()
		}
		return out
	case ObjectKind:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.ToAny()
		}
		return out
	default:
		return nil
	}
}
