package jsonvalue

import "strconv"

// Get walks path from v and returns what it finds. It never fails:
//   - at an object the segment is a key; an absent key yields null
//   - at an array a segment that is an in-range index selects that element,
//     any other segment fans out: the remaining path (segment included) is
//     applied to every element and the results are collected into an array
//   - at a scalar any remaining path yields null
//
// An empty path returns v itself.
func (v Value) Get(path ...string) Value {
	cur := v
	for i, seg := range path {
		switch cur.kind {
		case ObjectKind:
			cur = cur.obj[seg]
		case ArrayKind:
			if idx, ok := arrayIndex(seg); ok && idx < len(cur.arr) {
				cur = cur.arr[idx]
				continue
			}
			rest := path[i:]
			out := make([]Value, len(cur.arr))
			for j, e := range cur.arr {
				out[j] = e.Get(rest...)
			}
			return Value{kind: ArrayKind, arr: out}
		default:
			return Null()
		}
	}
	return cur
}

// Lookup is the strict form of Get. Every segment has to resolve: keys must
// exist, array segments must be in-range indices, and scalars cannot be
// walked into. It never fans out. A segment that does not resolve fails
// with *PathError.
func (v Value) Lookup(path ...string) (Value, error) {
	cur := v
	for i, seg := range path {
		switch cur.kind {
		case ObjectKind:
			next, ok := cur.obj[seg]
			if !ok {
				return Null(), &PathError{Path: append([]string(nil), path[:i+1]...), Segment: seg, Kind: cur.kind}
			}
			cur = next
		case ArrayKind:
			idx, ok := arrayIndex(seg)
			if !ok || idx >= len(cur.arr) {
				return Null(), &PathError{Path: append([]string(nil), path[:i+1]...), Segment: seg, Kind: cur.kind}
			}
			cur = cur.arr[idx]
		default:
			return Null(), &PathError{Path: append([]string(nil), path[:i+1]...), Segment: seg, Kind: cur.kind}
		}
	}
	return cur, nil
}

// Set writes to at the location named by path, creating structure on the
// way. An array followed by an index segment is left-padded with nulls up
// to that index; any other non-object node on the path is replaced by an
// empty object. Set always targets exactly one location. An empty path
// replaces v.
func (v *Value) Set(path []string, to Value) {
	updateIn(v, path, true, func(slot *Value) { *slot = to })
}

// Remove deletes the object member named by the last segment of path.
// Only objects are walked. If any step of the path does not resolve to an
// object, or the key is absent, Remove does nothing and returns false.
func (v *Value) Remove(path ...string) bool {
	if len(path) == 0 {
		return false
	}
	parent, key := *v, path[len(path)-1]
	for _, seg := range path[:len(path)-1] {
		if parent.kind != ObjectKind {
			return false
		}
		next, ok := parent.obj[seg]
		if !ok {
			return false
		}
		parent = next
	}
	if parent.kind != ObjectKind {
		return false
	}
	if _, ok := parent.obj[key]; !ok {
		return false
	}
	updateIn(v, path[:len(path)-1], true, func(slot *Value) {
		obj := make(map[string]Value, len(slot.obj))
		for k, e := range slot.obj {
			if k != key {
				obj[k] = e
			}
		}
		slot.obj = obj
	})
	return true
}

// updateIn walks path from v, creating objects (or padding arrays) as it
// goes, and applies fn to the final slot. When cow is set every container on
// the way is copied before it is written, so storage shared with other
// Values is never touched. Without cow the tree is modified in place, which
// is only safe for trees owned by a single builder.
func updateIn(v *Value, path []string, cow bool, fn func(*Value)) {
	if len(path) == 0 {
		fn(v)
		return
	}
	seg, rest := path[0], path[1:]
	if v.kind == ArrayKind {
		if idx, ok := arrayIndex(seg); ok {
			if cow {
				arr := make([]Value, len(v.arr), max(len(v.arr), idx+1))
				copy(arr, v.arr)
				v.arr = arr
			}
			for len(v.arr) <= idx {
				v.arr = append(v.arr, Value{})
			}
			updateIn(&v.arr[idx], rest, cow, fn)
			return
		}
	}
	switch {
	case v.kind != ObjectKind:
		*v = emptyObject()
	case cow:
		obj := make(map[string]Value, len(v.obj)+1)
		for k, e := range v.obj {
			obj[k] = e
		}
		v.obj = obj
	}
	child := v.obj[seg]
	updateIn(&child, rest, cow, fn)
	v.obj[seg] = child
}

// arrayIndex accepts plain non-negative decimal integers only.
func arrayIndex(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return n, true
}
