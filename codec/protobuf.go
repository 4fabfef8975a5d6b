package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/unkn0wn-root/jsonvalue"
)

// Protobuf stores a Value as a google.protobuf.Value message. The message
// has a single number type, so every Number decodes as Double.
type Protobuf struct{}

var _ Codec[jsonvalue.Value] = Protobuf{}

func (Protobuf) Encode(v jsonvalue.Value) ([]byte, error) {
	pv, err := structpb.NewValue(v.ToAny())
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pv)
}

func (Protobuf) Decode(b []byte) (jsonvalue.Value, error) {
	pv := &structpb.Value{}
	if err := proto.Unmarshal(b, pv); err != nil {
		return jsonvalue.Null(), err
	}
	return jsonvalue.FromAny(pv.AsInterface())
}
