package jsonvalue

import (
	"errors"
	"fmt"
	"reflect"
)

// Marshaler is implemented by types that describe their own tree shape.
// MarshalValue asks e for exactly one container and writes into it.
type Marshaler interface {
	MarshalValue(e Encoder) error
}

// Unmarshaler is implemented by types that read themselves from a tree.
type Unmarshaler interface {
	UnmarshalValue(d Decoder) error
}

// KeyStrategy derives object keys for struct fields that carry no name in
// their tag.
type KeyStrategy int

const (
	KeyAsIs KeyStrategy = iota // Go field name
	KeySnake
	KeyCamel // lower camel
	KeyKebab
	KeyScreamingSnake
)

type Options struct {
	// Logger receives a Debug line for every failed Encode or Decode.
	// Nil means NopLogger.
	Logger Logger
	// TagName is the struct tag read for field names and options. Default "json".
	TagName string
	// KeyStrategy applies to untagged fields. Default KeyAsIs.
	KeyStrategy KeyStrategy
}

// Coder converts between Go values and Value trees. It holds only
// configuration and is safe for concurrent use.
type Coder struct {
	log  Logger
	tag  string
	keys KeyStrategy
}

func NewCoder(opts Options) *Coder {
	var log Logger = NopLogger{}
	if opts.Logger != nil {
		log = opts.Logger
	}
	return &Coder{
		log:  log,
		tag:  coalesce(opts.TagName, "json"),
		keys: opts.KeyStrategy,
	}
}

var defaultCoder = NewCoder(Options{})

// Encode converts v to a Value with the default Coder.
func Encode(v any) (Value, error) { return defaultCoder.Encode(v) }

// Decode fills the value target points to from v with the default Coder.
func Decode(v Value, target any) error { return defaultCoder.Decode(v, target) }

// DecodeAs decodes v into a new T with the default Coder.
func DecodeAs[T any](v Value) (T, error) { return DecodeWith[T](defaultCoder, v) }

// DecodeWith decodes v into a new T with c.
func DecodeWith[T any](c *Coder, v Value) (T, error) {
	var out T
	err := c.Decode(v, &out)
	return out, err
}

// Encode converts v to a Value. Values are returned as independent copies,
// primitives map to their scalar shape, everything else goes through
// Marshaler, encoding.TextMarshaler or reflection, in that order.
func (c *Coder) Encode(v any) (Value, error) {
	if pv, ok := primitive(v); ok {
		return pv, nil
	}
	e := newEncoder(c, nil)
	if err := c.encode(e, reflect.ValueOf(v)); err != nil {
		c.failed("encode", fmt.Sprintf("%T", v), err)
		return Null(), err
	}
	return e.b.root, nil
}

// Decode fills the value target points to from v. target must be a non-nil
// pointer. The first error aborts the whole pass; target may be partially
// written by then.
func (c *Coder) Decode(v Value, target any) error {
	if err := c.decodeInto(v, nil, target); err != nil {
		c.failed("decode", fmt.Sprintf("%T", target), err)
		return err
	}
	return nil
}

func (c *Coder) failed(op, typ string, err error) {
	c.log.Debug("jsonvalue: "+op+" failed", Fields{
		"type":  typ,
		"path":  errPath(err).String(),
		"error": err.Error(),
	})
}

// decodeInto is the entry point shared by Decode and every container's
// Decode. Common primitive targets skip reflection.
func (c *Coder) decodeInto(v Value, path Path, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &InvalidTargetError{Type: reflect.TypeOf(target)}
	}
	switch t := target.(type) {
	case *Value:
		*t = v
		return nil
	case *bool:
		return set(t, v, path, projectBool)
	case *string:
		return set(t, v, path, projectString)
	case *int64:
		return set(t, v, path, projectInt)
	case *int:
		n, err := projectInt(v, path)
		if err == nil {
			*t = int(n)
		}
		return err
	case *float64:
		return set(t, v, path, projectDouble)
	case *float32:
		return set(t, v, path, projectFloat)
	case *any:
		*t = v.ToAny()
		return nil
	}
	return c.decode(v, path, rv.Elem())
}

func set[T any](dst *T, v Value, path Path, project func(Value, Path) (T, error)) error {
	out, err := project(v, path)
	if err != nil {
		return err
	}
	*dst = out
	return nil
}

// primitive maps the scalar Go types, Value and Number straight to a Value.
// Named types are not matched and take the Marshaler/reflection route.
func primitive(v any) (Value, bool) {
	switch t := v.(type) {
	case nil:
		return Null(), true
	case Value:
		return t.Clone(), true
	case Number:
		return Num(t), true
	case bool:
		return Bool(t), true
	case string:
		return String(t), true
	case int:
		return Int(int64(t)), true
	case int8:
		return Int(int64(t)), true
	case int16:
		return Int(int64(t)), true
	case int32:
		return Int(int64(t)), true
	case int64:
		return Int(t), true
	case uint:
		return fromUint(uint64(t)), true
	case uint8:
		return Int(int64(t)), true
	case uint16:
		return Int(int64(t)), true
	case uint32:
		return Int(int64(t)), true
	case uint64:
		return fromUint(t), true
	case float32:
		return Float(t), true
	case float64:
		return Double(t), true
	}
	return Value{}, false
}

// errPath digs the coding path out of a pass error, if it carries one.
func errPath(err error) Path {
	var (
		se *ShapeError
		me *MissingKeyError
		ie *IndexOutOfRangeError
		ue *UnsupportedShapeError
		te *UnsupportedTypeError
	)
	switch {
	case errors.As(err, &se):
		return se.Path
	case errors.As(err, &me):
		return me.Path
	case errors.As(err, &ie):
		return ie.Path
	case errors.As(err, &ue):
		return ue.Path
	case errors.As(err, &te):
		return te.Path
	}
	return nil
}
