package jsonvalue

import (
	"sort"
)

// Kind is the shape of a Value.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	StringKind
	NumberKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	case NumberKind:
		return "number"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a dynamically shaped JSON value: null, bool, string, number, array
// or object. The zero Value is null.
//
// Values behave like values. Mutating a copy never changes the Value it was
// copied from; every mutating method copies the containers it writes to
// before writing.
type Value struct {
	kind Kind
	b    bool
	s    string
	n    Number
	arr  []Value
	obj  map[string]Value
}

func Null() Value              { return Value{} }
func Bool(b bool) Value        { return Value{kind: BoolKind, b: b} }
func String(s string) Value    { return Value{kind: StringKind, s: s} }
func Num(n Number) Value       { return Value{kind: NumberKind, n: n} }
func Int(n int64) Value        { return Num(IntNum(n)) }
func Float(f float32) Value    { return Num(FloatNum(f)) }
func Double(f float64) Value   { return Num(DoubleNum(f)) }
func Array(elems ...Value) Value {
	arr := make([]Value, len(elems))
	copy(arr, elems)
	return Value{kind: ArrayKind, arr: arr}
}

// Object builds an object value. The map is copied.
func Object(fields map[string]Value) Value {
	obj := make(map[string]Value, len(fields))
	for k, v := range fields {
		obj[k] = v
	}
	return Value{kind: ObjectKind, obj: obj}
}

func emptyArray() Value  { return Value{kind: ArrayKind, arr: []Value{}} }
func emptyObject() Value { return Value{kind: ObjectKind, obj: map[string]Value{}} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == NullKind }
func (v Value) IsBool() bool   { return v.kind == BoolKind }
func (v Value) IsString() bool { return v.kind == StringKind }
func (v Value) IsNumber() bool { return v.kind == NumberKind }
func (v Value) IsArray() bool  { return v.kind == ArrayKind }
func (v Value) IsObject() bool { return v.kind == ObjectKind }

func (v Value) AsBool() (bool, bool) {
	if v.kind != BoolKind {
		return false, false
	}
	return v.b, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.s, true
}

func (v Value) AsNumber() (Number, bool) {
	if v.kind != NumberKind {
		return Number{}, false
	}
	return v.n, true
}

// AsInt returns the integer only when the value holds an Int number.
func (v Value) AsInt() (int64, bool) {
	if v.kind != NumberKind || v.n.kind != IntNumber {
		return 0, false
	}
	return v.n.i, true
}

// AsFloat returns the float only when the value holds a Float number.
func (v Value) AsFloat() (float32, bool) {
	if v.kind != NumberKind || v.n.kind != FloatNumber {
		return 0, false
	}
	return float32(v.n.f), true
}

// AsDouble returns the float only when the value holds a Double number.
func (v Value) AsDouble() (float64, bool) {
	if v.kind != NumberKind || v.n.kind != DoubleNumber {
		return 0, false
	}
	return v.n.f, true
}

// AsArray returns a copy of the elements.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != ArrayKind {
		return nil, false
	}
	out := make([]Value, len(v.arr))
	copy(out, v.arr)
	return out, true
}

// AsObject returns a copy of the members.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != ObjectKind {
		return nil, false
	}
	out := make(map[string]Value, len(v.obj))
	for k, e := range v.obj {
		out[k] = e
	}
	return out, true
}

// The Set* methods replace the whole node, whatever shape it had before.

func (v *Value) SetNull()            { *v = Null() }
func (v *Value) SetBool(b bool)      { *v = Bool(b) }
func (v *Value) SetString(s string)  { *v = String(s) }
func (v *Value) SetInt(n int64)      { *v = Int(n) }
func (v *Value) SetFloat(f float32)  { *v = Float(f) }
func (v *Value) SetDouble(f float64) { *v = Double(f) }
func (v *Value) SetArray(elems []Value) {
	*v = Array(elems...)
}
func (v *Value) SetObject(fields map[string]Value) {
	*v = Object(fields)
}

// Count returns the number of elements or members. ok is false for scalars.
func (v Value) Count() (n int, ok bool) {
	switch v.kind {
	case ArrayKind:
		return len(v.arr), true
	case ObjectKind:
		return len(v.obj), true
	default:
		return 0, false
	}
}

// Keys returns the member names of an object in sorted order, nil otherwise.
func (v Value) Keys() []string {
	if v.kind != ObjectKind {
		return nil
	}
	return sortedKeys(v.obj)
}

// Clone returns a deep copy that shares no storage with v.
func (v Value) Clone() Value {
	switch v.kind {
	case ArrayKind:
		arr := make([]Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = e.Clone()
		}
		return Value{kind: ArrayKind, arr: arr}
	case ObjectKind:
		obj := make(map[string]Value, len(v.obj))
		for k, e := range v.obj {
			obj[k] = e.Clone()
		}
		return Value{kind: ObjectKind, obj: obj}
	default:
		return v
	}
}

// Equal reports structural equality. Numbers must agree on representation
// as well as on value, so Int(1) is not equal to Double(1).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case StringKind:
		return v.s == o.s
	case NumberKind:
		return v.n.Equal(o.n)
	case ArrayKind:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, e := range v.obj {
			oe, ok := o.obj[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v as compact JSON text. Values that JSON cannot carry
// (NaN, infinities) are rendered with their Go formatting.
func (v Value) String() string {
	var w textWriter
	w.lenient = true
	_ = w.write(v)
	return w.buf.String()
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
