package store

import (
	"context"
	"time"
)

// Load reads the document at key and decodes it into a T with the store's
// Coder. A miss returns ok=false and a nil error. A document that does not
// fit T is reported as the Coder's error and left in place.
func Load[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T
	doc, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := s.Coder().Decode(doc, &out); err != nil {
		return out, false, err
	}
	return out, true, nil
}

// Save encodes v with the store's Coder and writes it under the CAS rule of
// SetWithGen.
func Save[T any](ctx context.Context, s Store, key string, v T, observedGen uint64, ttl time.Duration) error {
	doc, err := s.Coder().Encode(v)
	if err != nil {
		return err
	}
	return s.SetWithGen(ctx, key, doc, observedGen, ttl)
}
