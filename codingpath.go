package jsonvalue

import (
	"strconv"
	"strings"
)

// PathSegment is one step of a coding path: an object key or an array index.
type PathSegment struct {
	Key     string
	Index   int
	IsIndex bool
}

func KeySegment(key string) PathSegment { return PathSegment{Key: key} }
func IndexSegment(i int) PathSegment {
	return PathSegment{Key: strconv.Itoa(i), Index: i, IsIndex: true}
}

func (s PathSegment) String() string { return s.Key }

// Path is the coding path of an encode or decode pass: where in the nested
// structure the pass currently is. It is diagnostic only.
type Path []PathSegment

// With returns a new path extended by seg. p itself is never modified, so
// containers can hand out extended paths without affecting their own.
func (p Path) With(seg PathSegment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

func (p Path) WithKey(key string) Path { return p.With(KeySegment(key)) }
func (p Path) WithIndex(i int) Path    { return p.With(IndexSegment(i)) }

// Strings returns the string form of every segment; usable with Value.Get.
func (p Path) Strings() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Key
	}
	return out
}

func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range p {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(s.Key)
			b.WriteByte(']')
			continue
		}
		b.WriteByte('.')
		b.WriteString(s.Key)
	}
	return b.String()
}
