// Package jsonvalue is an in-memory JSON value model with a structured
// encode/decode bridge between Go types and trees.
//
// Components:
//   - Value: a tagged union of null, bool, string, number, array and object
//     with value semantics. Copies never observe each other's mutations.
//   - Number: int64, float32 or float64, kept apart. Int(1) != Double(1).
//   - Paths: Get (lenient, fans out across arrays), Lookup (strict), Set
//     (creates structure), Remove (objects only, silent no-op otherwise).
//   - Coder: Encode/Decode through Marshaler/Unmarshaler, TextMarshaler or
//     reflection. Types that implement Marshaler talk to keyed, indexed and
//     single-value containers.
//
// Decoding a user type:
//
//	func (p *Point) UnmarshalValue(d jsonvalue.Decoder) error {
//		k, err := d.KeyedContainer()
//		if err != nil {
//			return err
//		}
//		if p.X, err = k.DecodeDouble("x"); err != nil {
//			return err
//		}
//		p.Y, err = k.DecodeDouble("y")
//		return err
//	}
//
// Every error raised during a pass carries the coding path to the failure,
// e.g. $.items[2].price, and wraps one of the Err sentinels.
package jsonvalue
