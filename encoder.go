package jsonvalue

import (
	"fmt"
	"reflect"
	"strconv"
)

// Encoder is handed to a Marshaler. The Marshaler asks for exactly one
// container, matching the shape it wants to produce, and writes into it.
type Encoder interface {
	CodingPath() Path
	KeyedContainer() KeyedEncoder
	IndexedContainer() IndexedEncoder
	SingleValueContainer() SingleValueEncoder
}

// KeyedEncoder writes object members.
//
// Encode accepts any Go value. Primitives and Values are stored directly;
// anything else is encoded by a fresh encoder scoped at the key and the
// resulting subtree is stored.
type KeyedEncoder interface {
	CodingPath() Path
	EncodeNil(key string) error
	EncodeBool(key string, b bool) error
	EncodeString(key string, s string) error
	EncodeInt(key string, n int64) error
	EncodeFloat(key string, f float32) error
	EncodeDouble(key string, f float64) error
	Encode(key string, v any) error
	NestedKeyedContainer(key string) KeyedEncoder
	NestedIndexedContainer(key string) IndexedEncoder
}

// IndexedEncoder appends array elements in call order.
type IndexedEncoder interface {
	CodingPath() Path
	Count() int
	EncodeNil() error
	EncodeBool(b bool) error
	EncodeString(s string) error
	EncodeInt(n int64) error
	EncodeFloat(f float32) error
	EncodeDouble(f float64) error
	Encode(v any) error
	NestedKeyedContainer() KeyedEncoder
	NestedIndexedContainer() IndexedEncoder
}

// SingleValueEncoder holds exactly one value. Encoding a second value into
// the same container is a programming error and panics.
type SingleValueEncoder interface {
	CodingPath() Path
	EncodeNil() error
	EncodeBool(b bool) error
	EncodeString(s string) error
	EncodeInt(n int64) error
	EncodeFloat(f float32) error
	EncodeDouble(f float64) error
	Encode(v any) error
}

type encoder struct {
	coder *Coder
	b     *builder
	loc   []string // where in b this encoder writes
	path  Path
}

func newEncoder(c *Coder, path Path) *encoder {
	return &encoder{coder: c, b: &builder{}, path: path}
}

func (e *encoder) CodingPath() Path { return e.path }

func (e *encoder) KeyedContainer() KeyedEncoder {
	e.b.ensure(e.loc, ObjectKind)
	return &keyedEncoder{enc: e, loc: e.loc, path: e.path}
}

func (e *encoder) IndexedContainer() IndexedEncoder {
	e.b.ensure(e.loc, ArrayKind)
	return &indexedEncoder{enc: e, loc: e.loc, path: e.path}
}

func (e *encoder) SingleValueContainer() SingleValueEncoder {
	return &singleEncoder{enc: e}
}

// child produces the Value for v, encoding compound values with a fresh
// encoder whose coding path is path.
func (e *encoder) child(v any, path Path) (Value, error) {
	if pv, ok := primitive(v); ok {
		return pv, nil
	}
	sub := newEncoder(e.coder, path)
	if err := e.coder.encode(sub, reflect.ValueOf(v)); err != nil {
		return Null(), err
	}
	return sub.b.root, nil
}

func extend(loc []string, seg string) []string {
	out := make([]string, len(loc), len(loc)+1)
	copy(out, loc)
	return append(out, seg)
}

type keyedEncoder struct {
	enc  *encoder
	loc  []string
	path Path
}

func (k *keyedEncoder) CodingPath() Path { return k.path }

func (k *keyedEncoder) put(key string, v Value) error {
	k.enc.b.assignKey(k.loc, key, v)
	return nil
}

func (k *keyedEncoder) EncodeNil(key string) error              { return k.put(key, Null()) }
func (k *keyedEncoder) EncodeBool(key string, b bool) error      { return k.put(key, Bool(b)) }
func (k *keyedEncoder) EncodeString(key string, s string) error  { return k.put(key, String(s)) }
func (k *keyedEncoder) EncodeInt(key string, n int64) error      { return k.put(key, Int(n)) }
func (k *keyedEncoder) EncodeFloat(key string, f float32) error  { return k.put(key, Float(f)) }
func (k *keyedEncoder) EncodeDouble(key string, f float64) error { return k.put(key, Double(f)) }

func (k *keyedEncoder) Encode(key string, v any) error {
	sub, err := k.enc.child(v, k.path.WithKey(key))
	if err != nil {
		return err
	}
	return k.put(key, sub)
}

func (k *keyedEncoder) NestedKeyedContainer(key string) KeyedEncoder {
	loc := extend(k.loc, key)
	k.enc.b.ensure(loc, ObjectKind)
	return &keyedEncoder{enc: k.enc, loc: loc, path: k.path.WithKey(key)}
}

func (k *keyedEncoder) NestedIndexedContainer(key string) IndexedEncoder {
	loc := extend(k.loc, key)
	k.enc.b.ensure(loc, ArrayKind)
	return &indexedEncoder{enc: k.enc, loc: loc, path: k.path.WithKey(key)}
}

type indexedEncoder struct {
	enc  *encoder
	loc  []string
	path Path
}

func (x *indexedEncoder) CodingPath() Path { return x.path }

// Count is the current length of the array this container appends to.
func (x *indexedEncoder) Count() int { return x.enc.b.count(x.loc) }

func (x *indexedEncoder) put(v Value) error {
	x.enc.b.assign(x.loc, v)
	return nil
}

func (x *indexedEncoder) EncodeNil() error              { return x.put(Null()) }
func (x *indexedEncoder) EncodeBool(b bool) error      { return x.put(Bool(b)) }
func (x *indexedEncoder) EncodeString(s string) error  { return x.put(String(s)) }
func (x *indexedEncoder) EncodeInt(n int64) error      { return x.put(Int(n)) }
func (x *indexedEncoder) EncodeFloat(f float32) error  { return x.put(Float(f)) }
func (x *indexedEncoder) EncodeDouble(f float64) error { return x.put(Double(f)) }

func (x *indexedEncoder) Encode(v any) error {
	sub, err := x.enc.child(v, x.path.WithIndex(x.Count()))
	if err != nil {
		return err
	}
	return x.put(sub)
}

func (x *indexedEncoder) NestedKeyedContainer() KeyedEncoder {
	i := x.Count()
	loc := extend(x.loc, strconv.Itoa(i))
	x.enc.b.ensure(loc, ObjectKind)
	return &keyedEncoder{enc: x.enc, loc: loc, path: x.path.WithIndex(i)}
}

func (x *indexedEncoder) NestedIndexedContainer() IndexedEncoder {
	i := x.Count()
	loc := extend(x.loc, strconv.Itoa(i))
	x.enc.b.ensure(loc, ArrayKind)
	return &indexedEncoder{enc: x.enc, loc: loc, path: x.path.WithIndex(i)}
}

type singleEncoder struct {
	enc  *encoder
	done bool
}

func (s *singleEncoder) CodingPath() Path { return s.enc.path }

func (s *singleEncoder) claim() {
	if s.done {
		panic(fmt.Sprintf("jsonvalue: single value container at %s already holds a value", s.enc.path))
	}
	s.done = true
}

func (s *singleEncoder) put(v Value) error {
	s.claim()
	s.enc.put(v)
	return nil
}

func (s *singleEncoder) EncodeNil() error              { return s.put(Null()) }
func (s *singleEncoder) EncodeBool(b bool) error      { return s.put(Bool(b)) }
func (s *singleEncoder) EncodeString(str string) error { return s.put(String(str)) }
func (s *singleEncoder) EncodeInt(n int64) error      { return s.put(Int(n)) }
func (s *singleEncoder) EncodeFloat(f float32) error  { return s.put(Float(f)) }
func (s *singleEncoder) EncodeDouble(f float64) error { return s.put(Double(f)) }

// Encode stores a primitive directly. A compound value runs its own encode
// logic against the encoder that owns this container.
func (s *singleEncoder) Encode(v any) error {
	if pv, ok := primitive(v); ok {
		return s.put(pv)
	}
	s.claim()
	return s.enc.coder.encode(s.enc, reflect.ValueOf(v))
}
