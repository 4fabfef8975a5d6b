package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	_ json.Marshaler   = Value{}
	_ json.Unmarshaler = (*Value)(nil)
)

// Parse reads one JSON text into a Value. Integral numbers that fit in an
// int64 become Int numbers, all other numbers become Double. Trailing data
// after the value is an error.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Null(), err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Null(), fmt.Errorf("jsonvalue: trailing data after JSON value")
	}
	return fromDecoded(raw), nil
}

// Bytes renders v as compact JSON text with object keys sorted. Float and
// Double numbers always carry a fraction or exponent so that Parse reads
// them back as Double. NaN and infinities cannot be rendered and fail.
func (v Value) Bytes() ([]byte, error) {
	var w textWriter
	if err := w.write(v); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

func (v Value) MarshalJSON() ([]byte, error) { return v.Bytes() }

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// fromDecoded converts the output of encoding/json (with UseNumber).
func fromDecoded(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case json.Number:
		return numberFromText(string(x))
	case []any:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = fromDecoded(e)
		}
		return Value{kind: ArrayKind, arr: arr}
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, e := range x {
			obj[k] = fromDecoded(e)
		}
		return Value{kind: ObjectKind, obj: obj}
	default:
		// encoding/json produces nothing else with UseNumber.
		return Null()
	}
}

func numberFromText(s string) Value {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(n)
		}
	}
	f, _ := strconv.ParseFloat(s, 64)
	return Double(f)
}

type textWriter struct {
	buf     bytes.Buffer
	strs    *json.Encoder
	lenient bool
}

func (w *textWriter) write(v Value) error {
	switch v.kind {
	case NullKind:
		w.buf.WriteString("null")
	case BoolKind:
		w.buf.WriteString(strconv.FormatBool(v.b))
	case StringKind:
		w.writeString(v.s)
	case NumberKind:
		return w.writeNumber(v.n)
	case ArrayKind:
		w.buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.write(e); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
	case ObjectKind:
		w.buf.WriteByte('{')
		for i, k := range sortedKeys(v.obj) {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.writeString(k)
			w.buf.WriteByte(':')
			if err := w.write(v.obj[k]); err != nil {
				return err
			}
		}
		w.buf.WriteByte('}')
	}
	return nil
}

func (w *textWriter) writeNumber(n Number) error {
	if !n.IsFinite() {
		if !w.lenient {
			return fmt.Errorf("jsonvalue: unsupported number %s", n)
		}
		w.buf.WriteString(n.String())
		return nil
	}
	s := n.String()
	w.buf.WriteString(s)
	if n.kind != IntNumber && !strings.ContainsAny(s, ".eE") {
		w.buf.WriteString(".0")
	}
	return nil
}

// writeString quotes s the way encoding/json does, minus HTML escaping.
func (w *textWriter) writeString(s string) {
	if w.strs == nil {
		w.strs = json.NewEncoder(&w.buf)
		w.strs.SetEscapeHTML(false)
	}
	// a string always encodes; Encode terminates it with a newline
	_ = w.strs.Encode(s)
	w.buf.Truncate(w.buf.Len() - 1)
}
