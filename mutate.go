package jsonvalue

// Append adds elem to the end of an array.
func (v *Value) Append(elem Value) error {
	if v.kind != ArrayKind {
		return &ShapeError{Op: "append", Expected: ArrayKind, Actual: v.kind}
	}
	arr := make([]Value, len(v.arr), len(v.arr)+1)
	copy(arr, v.arr)
	v.arr = append(arr, elem)
	return nil
}

// Insert places elem at index at of an array, shifting later elements.
// at may equal the current length, which appends.
func (v *Value) Insert(elem Value, at int) error {
	if v.kind != ArrayKind {
		return &ShapeError{Op: "insert", Expected: ArrayKind, Actual: v.kind}
	}
	if at < 0 || at > len(v.arr) {
		return &IndexOutOfRangeError{Index: at, Count: len(v.arr)}
	}
	arr := make([]Value, 0, len(v.arr)+1)
	arr = append(arr, v.arr[:at]...)
	arr = append(arr, elem)
	arr = append(arr, v.arr[at:]...)
	v.arr = arr
	return nil
}

// SetKey sets one member of an object.
func (v *Value) SetKey(key string, elem Value) error {
	if v.kind != ObjectKind {
		return &ShapeError{Op: "set key", Expected: ObjectKind, Actual: v.kind}
	}
	obj := make(map[string]Value, len(v.obj)+1)
	for k, e := range v.obj {
		obj[k] = e
	}
	obj[key] = elem
	v.obj = obj
	return nil
}

// Merge returns the shallow union of two objects. Members of other win on
// conflict; nested objects are replaced, not merged. Neither operand is
// modified.
func (v Value) Merge(other Value) (Value, error) {
	if v.kind != ObjectKind || other.kind != ObjectKind {
		return Null(), &MergeError{Left: v.kind, Right: other.kind}
	}
	obj := make(map[string]Value, len(v.obj)+len(other.obj))
	for k, e := range v.obj {
		obj[k] = e
	}
	for k, e := range other.obj {
		obj[k] = e
	}
	return Value{kind: ObjectKind, obj: obj}, nil
}
