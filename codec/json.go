package codec

import "encoding/json"

// JSON is a Codec backed by encoding/json. With V = jsonvalue.Value it
// produces canonical text: sorted keys, and floats always carry a fraction
// so Int and Double survive the round trip.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
