package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/unkn0wn-root/jsonvalue"
)

// CBOR is a Value codec backed by fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// when you need byte-for-byte stable outputs (e.g., hashing/content addressing).
// Otherwise PreferredUnsortedEncOptions are used.
//
// CBOR keeps integers and floats apart but decodes every float as float64,
// so Float values come back as Double.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[jsonvalue.Value] = CBOR{}

var mapStringAny = reflect.TypeOf(map[string]any(nil))

func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: mapStringAny,
	}.DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests/examples.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR) Encode(v jsonvalue.Value) ([]byte, error) {
	return c.enc.Marshal(v.ToAny())
}

func (c CBOR) Decode(b []byte) (jsonvalue.Value, error) {
	var raw any
	if err := c.dec.Unmarshal(b, &raw); err != nil {
		return jsonvalue.Null(), err
	}
	return jsonvalue.FromAny(raw)
}
