package jsonvalue

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrShapeMismatch    = errors.New("jsonvalue: shape mismatch")
	ErrMissingKey       = errors.New("jsonvalue: missing key")
	ErrIndexOutOfRange  = errors.New("jsonvalue: index out of range")
	ErrMerge            = errors.New("jsonvalue: cannot merge")
	ErrBadPath          = errors.New("jsonvalue: bad path")
	ErrUnsupportedShape = errors.New("jsonvalue: unsupported shape")
	ErrUnsupportedType  = errors.New("jsonvalue: unsupported type")
	ErrInvalidTarget    = errors.New("jsonvalue: invalid decode target")
)

// ShapeError reports that an operation needed one shape and found another.
// Decoding a value into a Go type it cannot project to also yields a
// ShapeError, with Type set to the target.
type ShapeError struct {
	Path     Path
	Op       string
	Expected Kind
	Actual   Kind
	Type     reflect.Type // decode target, if any
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	b.WriteString("jsonvalue: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "expected %s, found %s", e.Expected, e.Actual)
	if e.Type != nil {
		fmt.Fprintf(&b, " (decoding %s)", e.Type)
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	return b.String()
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

// MissingKeyError reports a keyed decode of a key the object does not hold.
// Path includes the key.
type MissingKeyError struct {
	Path Path
	Key  string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("jsonvalue: no value for key %q at %s", e.Key, e.Path)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

// IndexOutOfRangeError reports an indexed read past the last element, or an
// insert outside the array bounds.
type IndexOutOfRangeError struct {
	Path  Path
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("jsonvalue: index %d out of range [0,%d) at %s", e.Index, e.Count, e.Path)
	}
	return fmt.Sprintf("jsonvalue: index %d out of range [0,%d)", e.Index, e.Count)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

type MergeError struct {
	Left, Right Kind
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("jsonvalue: cannot merge %s with %s; both must be objects", e.Left, e.Right)
}

func (e *MergeError) Unwrap() error { return ErrMerge }

// PathError reports a path segment that does not resolve through the tree.
// Path holds the segments up to and including the failing one, Kind the
// shape of the node the segment was applied to.
type PathError struct {
	Path    []string
	Segment string
	Kind    Kind
}

func (e *PathError) Error() string {
	return fmt.Sprintf("jsonvalue: no element for %q in %s at %s", e.Segment, e.Kind, strings.Join(e.Path, "."))
}

func (e *PathError) Unwrap() error { return ErrBadPath }

// UnsupportedShapeError means a value has no projection to the requested
// type. A well-formed Value never triggers it.
type UnsupportedShapeError struct {
	Path Path
	Kind Kind
	Type reflect.Type
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("jsonvalue: no projection of %s to %v at %s", e.Kind, e.Type, e.Path)
}

func (e *UnsupportedShapeError) Unwrap() error { return ErrUnsupportedShape }

// UnsupportedTypeError is returned when encoding or decoding a Go type that
// has no JSON counterpart, such as a channel, a function or a map with
// non-string keys.
type UnsupportedTypeError struct {
	Path Path
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("jsonvalue: unsupported type %v at %s", e.Type, e.Path)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// InvalidTargetError is returned by Decode when the target is not a non-nil pointer.
type InvalidTargetError struct {
	Type reflect.Type
}

func (e *InvalidTargetError) Error() string {
	if e.Type == nil {
		return "jsonvalue: Decode(nil)"
	}
	if e.Type.Kind() != reflect.Pointer {
		return "jsonvalue: Decode(non-pointer " + e.Type.String() + ")"
	}
	return "jsonvalue: Decode(nil " + e.Type.String() + ")"
}

func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }
