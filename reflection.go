package jsonvalue

import (
	"encoding"
	"encoding/base64"
	"reflect"
	"sort"
)

var (
	marshalerType       = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType     = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// put replaces the node this encoder owns.
func (e *encoder) put(v Value) {
	updateIn(&e.b.root, e.loc, false, func(slot *Value) { *slot = v })
}

// valueOf encodes rv with a fresh encoder at path and returns its tree.
func (c *Coder) valueOf(rv reflect.Value, path Path) (Value, error) {
	sub := newEncoder(c, path)
	if err := c.encode(sub, rv); err != nil {
		return Null(), err
	}
	return sub.b.root, nil
}

func (c *Coder) encode(e *encoder, rv reflect.Value) error {
	if !rv.IsValid() {
		e.put(Null())
		return nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			e.put(Null())
			return nil
		}
	}

	t := rv.Type()
	switch t {
	case valueType:
		e.put(rv.Interface().(Value).Clone())
		return nil
	case numberType:
		e.put(Num(rv.Interface().(Number)))
		return nil
	}
	if m, ok := implementer[Marshaler](rv, marshalerType); ok {
		return m.MarshalValue(e)
	}
	if m, ok := implementer[encoding.TextMarshaler](rv, textMarshalerType); ok {
		text, err := m.MarshalText()
		if err != nil {
			return err
		}
		e.put(String(string(text)))
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		e.put(Bool(rv.Bool()))
	case reflect.String:
		e.put(String(rv.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.put(Int(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.put(fromUint(rv.Uint()))
	case reflect.Float32:
		e.put(Float(float32(rv.Float())))
	case reflect.Float64:
		e.put(Double(rv.Float()))
	case reflect.Pointer, reflect.Interface:
		return c.encode(e, rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			e.put(Null())
			return nil
		}
		if t.Elem().Kind() == reflect.Uint8 && !reflect.PointerTo(t.Elem()).Implements(marshalerType) {
			e.put(String(base64.StdEncoding.EncodeToString(rv.Bytes())))
			return nil
		}
		return c.encodeList(e, rv)
	case reflect.Array:
		return c.encodeList(e, rv)
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &UnsupportedTypeError{Path: e.path, Type: t}
		}
		if rv.IsNil() {
			e.put(Null())
			return nil
		}
		return c.encodeMap(e, rv)
	case reflect.Struct:
		return c.encodeStruct(e, rv)
	default:
		return &UnsupportedTypeError{Path: e.path, Type: t}
	}
	return nil
}

func (c *Coder) encodeList(e *encoder, rv reflect.Value) error {
	x := e.IndexedContainer().(*indexedEncoder)
	for i := 0; i < rv.Len(); i++ {
		v, err := c.valueOf(rv.Index(i), x.path.WithIndex(i))
		if err != nil {
			return err
		}
		_ = x.put(v)
	}
	return nil
}

func (c *Coder) encodeMap(e *encoder, rv reflect.Value) error {
	k := e.KeyedContainer().(*keyedEncoder)
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, key := range keys {
		name := key.String()
		v, err := c.valueOf(rv.MapIndex(key), k.path.WithKey(name))
		if err != nil {
			return err
		}
		_ = k.put(name, v)
	}
	return nil
}

func (c *Coder) encodeStruct(e *encoder, rv reflect.Value) error {
	k := e.KeyedContainer().(*keyedEncoder)
	for _, f := range c.fields(rv.Type()) {
		fv, ok := fieldOf(rv, f.index)
		if !ok || (f.omitEmpty && isEmptyValue(fv)) {
			continue
		}
		v, err := c.valueOf(fv, k.path.WithKey(f.name))
		if err != nil {
			return err
		}
		_ = k.put(f.name, v)
	}
	return nil
}

// implementer reports whether rv, or a pointer to it, implements iface.
// Unaddressable values whose pointer type implements iface are copied into
// a fresh pointer first.
func implementer[T any](rv reflect.Value, iface reflect.Type) (T, bool) {
	var zero T
	if !rv.CanInterface() {
		return zero, false
	}
	t := rv.Type()
	if t.Implements(iface) {
		return rv.Interface().(T), true
	}
	if t.Kind() == reflect.Pointer || !reflect.PointerTo(t).Implements(iface) {
		return zero, false
	}
	if rv.CanAddr() {
		return rv.Addr().Interface().(T), true
	}
	cp := reflect.New(t)
	cp.Elem().Set(rv)
	return cp.Interface().(T), true
}

func (c *Coder) decode(v Value, path Path, rv reflect.Value) error {
	t := rv.Type()
	switch t {
	case valueType:
		rv.Set(reflect.ValueOf(v))
		return nil
	case numberType:
		n, err := projectNumber(v, path, t)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(n))
		return nil
	}
	if t.Kind() != reflect.Pointer && rv.CanAddr() && rv.Addr().CanInterface() {
		p := rv.Addr()
		if p.Type().Implements(unmarshalerType) {
			return p.Interface().(Unmarshaler).UnmarshalValue(&decoder{coder: c, value: v, path: path})
		}
		if p.Type().Implements(textUnmarshalerType) {
			s, err := projectString(v, path)
			if err != nil {
				return err
			}
			return p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		b, err := projectBool(v, path)
		if err != nil {
			return err
		}
		rv.SetBool(b)
	case reflect.String:
		s, err := projectString(v, path)
		if err != nil {
			return err
		}
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := projectNumber(v, path, t)
		if err != nil {
			return err
		}
		rv.SetInt(n.Int64())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := projectNumber(v, path, t)
		if err != nil {
			return err
		}
		rv.SetUint(n.Uint64())
	case reflect.Float32, reflect.Float64:
		n, err := projectNumber(v, path, t)
		if err != nil {
			return err
		}
		rv.SetFloat(n.Float64())
	case reflect.Pointer:
		if v.kind == NullKind {
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(t.Elem()))
		}
		return c.decode(v, path, rv.Elem())
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return &UnsupportedShapeError{Path: path, Kind: v.kind, Type: t}
		}
		if v.kind == NullKind {
			rv.SetZero()
			return nil
		}
		rv.Set(reflect.ValueOf(v.ToAny()))
	case reflect.Slice:
		return c.decodeSlice(v, path, rv)
	case reflect.Array:
		return c.decodeArray(v, path, rv)
	case reflect.Map:
		return c.decodeMap(v, path, rv)
	case reflect.Struct:
		return c.decodeStruct(v, path, rv)
	default:
		return &UnsupportedTypeError{Path: path, Type: t}
	}
	return nil
}

func (c *Coder) decodeSlice(v Value, path Path, rv reflect.Value) error {
	t := rv.Type()
	switch {
	case v.kind == NullKind:
		rv.SetZero()
		return nil
	case v.kind == StringKind && t.Elem().Kind() == reflect.Uint8:
		b, err := base64.StdEncoding.DecodeString(v.s)
		if err != nil {
			return err
		}
		rv.SetBytes(b)
		return nil
	case v.kind != ArrayKind:
		return mismatch(v, path, ArrayKind, t)
	}
	out := reflect.MakeSlice(t, len(v.arr), len(v.arr))
	for i, e := range v.arr {
		if err := c.decode(e, path.WithIndex(i), out.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

// decodeArray fills a Go array from the front; missing elements are zeroed
// and surplus ones ignored.
func (c *Coder) decodeArray(v Value, path Path, rv reflect.Value) error {
	if v.kind != ArrayKind {
		return mismatch(v, path, ArrayKind, rv.Type())
	}
	for i := 0; i < rv.Len(); i++ {
		if i >= len(v.arr) {
			rv.Index(i).SetZero()
			continue
		}
		if err := c.decode(v.arr[i], path.WithIndex(i), rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coder) decodeMap(v Value, path Path, rv reflect.Value) error {
	t := rv.Type()
	if t.Key().Kind() != reflect.String {
		return &UnsupportedTypeError{Path: path, Type: t}
	}
	if v.kind == NullKind {
		rv.SetZero()
		return nil
	}
	if v.kind != ObjectKind {
		return mismatch(v, path, ObjectKind, t)
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMapWithSize(t, len(v.obj)))
	}
	for _, key := range sortedKeys(v.obj) {
		ev := reflect.New(t.Elem()).Elem()
		if err := c.decode(v.obj[key], path.WithKey(key), ev); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), ev)
	}
	return nil
}

func (c *Coder) decodeStruct(v Value, path Path, rv reflect.Value) error {
	if v.kind != ObjectKind {
		return mismatch(v, path, ObjectKind, rv.Type())
	}
	for _, f := range c.fields(rv.Type()) {
		member, ok := v.obj[f.name]
		if !ok {
			if f.optional {
				continue
			}
			return &MissingKeyError{Path: path.WithKey(f.name), Key: f.name}
		}
		fv, ok := settableField(rv, f.index)
		if !ok {
			continue
		}
		if err := c.decode(member, path.WithKey(f.name), fv); err != nil {
			return err
		}
	}
	return nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	case reflect.Struct:
		if v.Type() == valueType {
			return v.Interface().(Value).IsNull()
		}
	}
	return false
}
