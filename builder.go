package jsonvalue

// builder owns the tree under construction during one encode pass. Every
// container created from the same top-level encoder writes through the same
// builder, each at its own location, so nested containers and siblings
// written across several calls end up in one coherent tree.
//
// The builder mutates its tree in place. Values coming from outside (a
// Value field of a struct being encoded, for example) are cloned on the way
// in so that no caller-visible storage is ever modified.
type builder struct {
	root Value
}

func (b *builder) at(loc []string) Value { return b.root.Get(loc...) }

// ensure makes sure loc holds a container of the given kind, creating an
// empty one if it holds anything else. Existing containers of the right
// kind are kept, which lets sibling containers add to them incrementally.
func (b *builder) ensure(loc []string, kind Kind) {
	updateIn(&b.root, loc, false, func(slot *Value) {
		if slot.kind == kind {
			return
		}
		switch kind {
		case ArrayKind:
			*slot = emptyArray()
		case ObjectKind:
			*slot = emptyObject()
		default:
			*slot = Null()
		}
	})
}

// assignKey replaces whatever is stored at loc+key.
func (b *builder) assignKey(loc []string, key string, v Value) {
	updateIn(&b.root, append(loc[:len(loc):len(loc)], key), false, func(slot *Value) { *slot = v })
}

// assign appends v when loc already holds an array and replaces the slot
// otherwise.
func (b *builder) assign(loc []string, v Value) {
	updateIn(&b.root, loc, false, func(slot *Value) {
		if slot.kind == ArrayKind {
			slot.arr = append(slot.arr, v)
			return
		}
		*slot = v
	})
}

// count is the length of the array at loc, 0 if there is none.
func (b *builder) count(loc []string) int {
	if v := b.at(loc); v.kind == ArrayKind {
		return len(v.arr)
	}
	return 0
}
