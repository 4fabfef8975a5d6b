package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/jsonvalue"
)

// Msgpack is a Value codec backed by vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Msgpack has distinct float32 and float64 encodings, so every Number
// representation round-trips.
type Msgpack struct{}

var _ Codec[jsonvalue.Value] = Msgpack{}

func (Msgpack) Encode(v jsonvalue.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v.ToAny()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack) Decode(b []byte) (jsonvalue.Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	raw, err := dec.DecodeInterface()
	if err != nil {
		return jsonvalue.Null(), err
	}
	return jsonvalue.FromAny(raw)
}
