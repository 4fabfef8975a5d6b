package jsonvalue

// Decoder is handed to an Unmarshaler. It wraps one node of the tree; the
// Unmarshaler asks for the container that matches the shape it expects.
// Decoding only reads: the tree is never modified.
type Decoder interface {
	CodingPath() Path
	KeyedContainer() (KeyedDecoder, error)
	IndexedContainer() (IndexedDecoder, error)
	SingleValueContainer() SingleValueDecoder
}

// KeyedDecoder reads members of an object. Reading an absent key fails with
// *MissingKeyError; reading a member as the wrong shape fails with *ShapeError.
//
// Decode takes a non-nil pointer. Primitive targets are projected directly,
// any other target is decoded from the member as if by a top-level Decode.
type KeyedDecoder interface {
	CodingPath() Path
	Keys() []string
	Contains(key string) bool
	DecodeNil(key string) (bool, error)
	DecodeBool(key string) (bool, error)
	DecodeString(key string) (string, error)
	DecodeInt(key string) (int64, error)
	DecodeFloat(key string) (float32, error)
	DecodeDouble(key string) (float64, error)
	Decode(key string, target any) error
	NestedKeyedContainer(key string) (KeyedDecoder, error)
	NestedIndexedContainer(key string) (IndexedDecoder, error)
}

// IndexedDecoder reads array elements in order. The cursor moves past an
// element only when it was decoded successfully; DecodeNil moves it only
// when the element is null. Reading at the end fails with
// *IndexOutOfRangeError.
type IndexedDecoder interface {
	CodingPath() Path
	Count() int
	CurrentIndex() int
	IsAtEnd() bool
	DecodeNil() (bool, error)
	DecodeBool() (bool, error)
	DecodeString() (string, error)
	DecodeInt() (int64, error)
	DecodeFloat() (float32, error)
	DecodeDouble() (float64, error)
	Decode(target any) error
	NestedKeyedContainer() (KeyedDecoder, error)
	NestedIndexedContainer() (IndexedDecoder, error)
}

// SingleValueDecoder reads the wrapped node itself, whatever its shape.
type SingleValueDecoder interface {
	CodingPath() Path
	DecodeNil() bool
	DecodeBool() (bool, error)
	DecodeString() (string, error)
	DecodeInt() (int64, error)
	DecodeFloat() (float32, error)
	DecodeDouble() (float64, error)
	Decode(target any) error
}

type decoder struct {
	coder *Coder
	value Value
	path  Path
}

func (d *decoder) CodingPath() Path { return d.path }

func (d *decoder) KeyedContainer() (KeyedDecoder, error) {
	return d.coder.keyed(d.value, d.path, "keyed container")
}

func (d *decoder) IndexedContainer() (IndexedDecoder, error) {
	return d.coder.indexed(d.value, d.path, "indexed container")
}

func (d *decoder) SingleValueContainer() SingleValueDecoder {
	return &singleDecoder{coder: d.coder, value: d.value, path: d.path}
}

func (c *Coder) keyed(v Value, path Path, op string) (KeyedDecoder, error) {
	if v.kind != ObjectKind {
		return nil, &ShapeError{Path: path, Op: op, Expected: ObjectKind, Actual: v.kind}
	}
	return &keyedDecoder{coder: c, obj: v.obj, path: path}, nil
}

func (c *Coder) indexed(v Value, path Path, op string) (IndexedDecoder, error) {
	if v.kind != ArrayKind {
		return nil, &ShapeError{Path: path, Op: op, Expected: ArrayKind, Actual: v.kind}
	}
	return &indexedDecoder{coder: c, arr: v.arr, path: path}, nil
}

type keyedDecoder struct {
	coder *Coder
	obj   map[string]Value
	path  Path
}

func (k *keyedDecoder) CodingPath() Path { return k.path }
func (k *keyedDecoder) Keys() []string   { return sortedKeys(k.obj) }

func (k *keyedDecoder) Contains(key string) bool {
	_, ok := k.obj[key]
	return ok
}

func (k *keyedDecoder) lookup(key string) (Value, Path, error) {
	p := k.path.WithKey(key)
	v, ok := k.obj[key]
	if !ok {
		return Null(), p, &MissingKeyError{Path: p, Key: key}
	}
	return v, p, nil
}

func (k *keyedDecoder) DecodeNil(key string) (bool, error) {
	v, _, err := k.lookup(key)
	if err != nil {
		return false, err
	}
	return v.kind == NullKind, nil
}

func (k *keyedDecoder) DecodeBool(key string) (bool, error) {
	return keyedProject(k, key, projectBool)
}

func (k *keyedDecoder) DecodeString(key string) (string, error) {
	return keyedProject(k, key, projectString)
}

func (k *keyedDecoder) DecodeInt(key string) (int64, error) {
	return keyedProject(k, key, projectInt)
}

func (k *keyedDecoder) DecodeFloat(key string) (float32, error) {
	return keyedProject(k, key, projectFloat)
}

func (k *keyedDecoder) DecodeDouble(key string) (float64, error) {
	return keyedProject(k, key, projectDouble)
}

func (k *keyedDecoder) Decode(key string, target any) error {
	v, p, err := k.lookup(key)
	if err != nil {
		return err
	}
	return k.coder.decodeInto(v, p, target)
}

func (k *keyedDecoder) NestedKeyedContainer(key string) (KeyedDecoder, error) {
	v, p, err := k.lookup(key)
	if err != nil {
		return nil, err
	}
	return k.coder.keyed(v, p, "nested keyed container")
}

func (k *keyedDecoder) NestedIndexedContainer(key string) (IndexedDecoder, error) {
	v, p, err := k.lookup(key)
	if err != nil {
		return nil, err
	}
	return k.coder.indexed(v, p, "nested indexed container")
}

func keyedProject[T any](k *keyedDecoder, key string, project func(Value, Path) (T, error)) (T, error) {
	v, p, err := k.lookup(key)
	if err != nil {
		var zero T
		return zero, err
	}
	return project(v, p)
}

type indexedDecoder struct {
	coder *Coder
	arr   []Value
	path  Path
	idx   int
}

func (x *indexedDecoder) CodingPath() Path  { return x.path }
func (x *indexedDecoder) Count() int        { return len(x.arr) }
func (x *indexedDecoder) CurrentIndex() int { return x.idx }
func (x *indexedDecoder) IsAtEnd() bool     { return x.idx >= len(x.arr) }

func (x *indexedDecoder) peek() (Value, Path, error) {
	if x.IsAtEnd() {
		return Null(), x.path, &IndexOutOfRangeError{Path: x.path, Index: x.idx, Count: len(x.arr)}
	}
	return x.arr[x.idx], x.path.WithIndex(x.idx), nil
}

func (x *indexedDecoder) DecodeNil() (bool, error) {
	v, _, err := x.peek()
	if err != nil {
		return false, err
	}
	if v.kind != NullKind {
		return false, nil
	}
	x.idx++
	return true, nil
}

func (x *indexedDecoder) DecodeBool() (bool, error)      { return indexedProject(x, projectBool) }
func (x *indexedDecoder) DecodeString() (string, error)  { return indexedProject(x, projectString) }
func (x *indexedDecoder) DecodeInt() (int64, error)      { return indexedProject(x, projectInt) }
func (x *indexedDecoder) DecodeFloat() (float32, error)  { return indexedProject(x, projectFloat) }
func (x *indexedDecoder) DecodeDouble() (float64, error) { return indexedProject(x, projectDouble) }

func (x *indexedDecoder) Decode(target any) error {
	v, p, err := x.peek()
	if err != nil {
		return err
	}
	if err := x.coder.decodeInto(v, p, target); err != nil {
		return err
	}
	x.idx++
	return nil
}

func (x *indexedDecoder) NestedKeyedContainer() (KeyedDecoder, error) {
	v, p, err := x.peek()
	if err != nil {
		return nil, err
	}
	kd, err := x.coder.keyed(v, p, "nested keyed container")
	if err != nil {
		return nil, err
	}
	x.idx++
	return kd, nil
}

func (x *indexedDecoder) NestedIndexedContainer() (IndexedDecoder, error) {
	v, p, err := x.peek()
	if err != nil {
		return nil, err
	}
	id, err := x.coder.indexed(v, p, "nested indexed container")
	if err != nil {
		return nil, err
	}
	x.idx++
	return id, nil
}

func indexedProject[T any](x *indexedDecoder, project func(Value, Path) (T, error)) (T, error) {
	v, p, err := x.peek()
	if err != nil {
		var zero T
		return zero, err
	}
	out, err := project(v, p)
	if err != nil {
		return out, err
	}
	x.idx++
	return out, nil
}

type singleDecoder struct {
	coder *Coder
	value Value
	path  Path
}

func (s *singleDecoder) CodingPath() Path { return s.path }
func (s *singleDecoder) DecodeNil() bool  { return s.value.kind == NullKind }

func (s *singleDecoder) DecodeBool() (bool, error)      { return projectBool(s.value, s.path) }
func (s *singleDecoder) DecodeString() (string, error)  { return projectString(s.value, s.path) }
func (s *singleDecoder) DecodeInt() (int64, error)      { return projectInt(s.value, s.path) }
func (s *singleDecoder) DecodeFloat() (float32, error)  { return projectFloat(s.value, s.path) }
func (s *singleDecoder) DecodeDouble() (float64, error) { return projectDouble(s.value, s.path) }

func (s *singleDecoder) Decode(target any) error {
	return s.coder.decodeInto(s.value, s.path, target)
}

// DecodeKey decodes one object member into a new T.
func DecodeKey[T any](k KeyedDecoder, key string) (T, error) {
	var out T
	err := k.Decode(key, &out)
	return out, err
}

// DecodeNext decodes the element under the cursor into a new T.
func DecodeNext[T any](x IndexedDecoder) (T, error) {
	var out T
	err := x.Decode(&out)
	return out, err
}
