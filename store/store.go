package store

import (
	"context"
	"sort"
	"time"

	"github.com/unkn0wn-root/jsonvalue"
	"github.com/unkn0wn-root/jsonvalue/codec"
	gen "github.com/unkn0wn-root/jsonvalue/genstore"
	"github.com/unkn0wn-root/jsonvalue/internal/util"
	"github.com/unkn0wn-root/jsonvalue/internal/wire"
	pr "github.com/unkn0wn-root/jsonvalue/provider"
)

const (
	defaultTTL          = 10 * time.Minute
	defaultGenRetention = 30 * 24 * time.Hour
	defaultSweep        = time.Hour
)

type store struct {
	ns       string
	provider pr.Provider
	codec    codec.Codec[jsonvalue.Value]
	coder    *jsonvalue.Coder
	log      jsonvalue.Logger
	hooks    Hooks

	enabled     bool
	bulkEnabled bool

	defaultTTL     time.Duration
	bulkTTL        time.Duration
	computeSetCost SetCostFunc
	gen            gen.GenStore
}

func newStore(opts Options) (*store, error) {
	if opts.Provider == nil {
		return nil, ErrNoProvider
	}
	if opts.Namespace == "" {
		return nil, ErrNoNamespace
	}

	s := &store{
		ns:          opts.Namespace,
		provider:    opts.Provider,
		enabled:     !opts.Disabled,
		bulkEnabled: !opts.DisableBulk,
	}

	s.log = coalesce[jsonvalue.Logger](opts.Logger, jsonvalue.NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	s.codec = coalesce[codec.Codec[jsonvalue.Value]](opts.Codec, codec.JSON[jsonvalue.Value]{})
	s.defaultTTL = coalesce(opts.DefaultTTL, defaultTTL)
	s.bulkTTL = coalesce(opts.BulkTTL, defaultTTL)

	if opts.Coder != nil {
		s.coder = opts.Coder
	} else {
		s.coder = jsonvalue.NewCoder(jsonvalue.Options{Logger: s.log})
	}
	if opts.ComputeSetCost != nil {
		s.computeSetCost = opts.ComputeSetCost
	} else {
		s.computeSetCost = func(string, []byte, bool, int) int64 { return 1 }
	}

	if opts.GenStore != nil {
		s.gen = opts.GenStore
	} else {
		s.gen = gen.NewLocal(
			coalesce(opts.CleanupInterval, defaultSweep),
			coalesce(opts.GenRetention, defaultGenRetention),
		)
		if s.enabled && s.bulkEnabled {
			s.hooks.LocalGenWithBulk()
		}
	}
	return s, nil
}

func (s *store) Enabled() bool           { return s.enabled }
func (s *store) Coder() *jsonvalue.Coder { return s.coder }

func (s *store) Close(ctx context.Context) error {
	// gen store first, best effort
	_ = s.gen.Close(ctx)
	return s.provider.Close(ctx)
}

func (s *store) Get(ctx context.Context, key string) (jsonvalue.Value, bool, error) {
	if !s.enabled {
		return jsonvalue.Null(), false, nil
	}
	k := s.singleKey(key)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil || !ok {
		return jsonvalue.Null(), false, err
	}
	g, payload, err := wire.DecodeSingle(raw)
	if err != nil {
		s.selfHeal(ctx, k, "corrupt")
		return jsonvalue.Null(), false, nil
	}
	cur, err := s.snapshotGen(ctx, k)
	if err != nil || g != cur {
		s.selfHeal(ctx, k, "gen_mismatch")
		return jsonvalue.Null(), false, nil
	}
	v, err := s.codec.Decode(payload)
	if err != nil {
		s.log.Debug("stored document failed to decode", jsonvalue.Fields{"key": key, "err": err})
		s.selfHeal(ctx, k, "value_decode")
		return jsonvalue.Null(), false, nil
	}
	return v, true, nil
}

func (s *store) GetPath(ctx context.Context, key string, path ...string) (jsonvalue.Value, bool, error) {
	doc, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return jsonvalue.Null(), false, err
	}
	v, err := doc.Lookup(path...)
	if err != nil {
		return jsonvalue.Null(), false, err
	}
	return v, true, nil
}

func (s *store) SetWithGen(ctx context.Context, key string, value jsonvalue.Value, observedGen uint64, ttl time.Duration) error {
	if !s.enabled {
		return nil
	}
	k := s.singleKey(key)
	if cur, err := s.snapshotGen(ctx, k); err != nil || cur != observedGen {
		s.log.Debug("SetWithGen skipped (gen mismatch)", jsonvalue.Fields{"key": key, "obs": observedGen})
		return nil
	}
	return s.write(ctx, k, value, observedGen, coalesce(ttl, s.defaultTTL))
}

func (s *store) write(ctx context.Context, storageKey string, value jsonvalue.Value, g uint64, ttl time.Duration) error {
	payload, err := s.codec.Encode(value)
	if err != nil {
		return err
	}
	frame := wire.EncodeSingle(g, payload)
	ok, err := s.provider.Set(ctx, storageKey, frame, s.computeSetCost(storageKey, frame, false, 1), ttl)
	if err != nil {
		return err
	}
	if !ok {
		s.hooks.ProviderSetRejected(storageKey, false)
		s.log.Debug("document write rejected by provider (pressure)", jsonvalue.Fields{"key": storageKey})
	}
	return nil
}

func (s *store) MergeWithGen(ctx context.Context, key string, patch jsonvalue.Value, observedGen uint64, ttl time.Duration) error {
	if !s.enabled {
		return nil
	}
	k := s.singleKey(key)
	if cur, err := s.snapshotGen(ctx, k); err != nil || cur != observedGen {
		s.hooks.MergeSkipped(k, "gen_mismatch")
		s.log.Debug("MergeWithGen skipped (gen mismatch)", jsonvalue.Fields{"key": key, "obs": observedGen})
		return nil
	}
	base, ok, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		base = jsonvalue.Object(nil)
	}
	merged, err := base.Merge(patch)
	if err != nil {
		s.hooks.MergeSkipped(k, "not_object")
		return err
	}
	return s.write(ctx, k, merged, observedGen, coalesce(ttl, s.defaultTTL))
}

func (s *store) Invalidate(ctx context.Context, key string) error {
	if !s.enabled {
		return nil
	}
	k := s.singleKey(key)
	newGen, bumpErr := s.bumpGen(ctx, k)
	delErr := s.provider.Del(ctx, k)

	switch {
	case bumpErr != nil && delErr != nil:
		s.hooks.InvalidateOutage(key, bumpErr, delErr)
		s.log.Error("invalidate failed: gen bump and delete failed", jsonvalue.Fields{
			"key": key, "bumpErr": bumpErr, "delErr": delErr,
		})
		return &InvalidateError{Key: key, BumpErr: bumpErr, DelErr: delErr}
	case bumpErr != nil:
		// the document is gone; a concurrent stale write can still land
		s.log.Warn("invalidate: gen bump failed, document deleted", jsonvalue.Fields{"key": key, "err": bumpErr})
	case delErr != nil:
		// the bumped generation makes the old document unreadable
		s.log.Warn("invalidate: delete failed, gen bumped", jsonvalue.Fields{"key": key, "err": delErr})
	default:
		s.log.Debug("invalidated document (bumped gen + deleted)", jsonvalue.Fields{"key": key, "newGen": newGen})
	}
	return nil
}

func (s *store) GetBulk(ctx context.Context, keys []string) (map[string]jsonvalue.Value, []string, error) {
	out := make(map[string]jsonvalue.Value, len(keys))
	if !s.enabled {
		missing := make([]string, 0, len(keys))
		missing = append(missing, keys...)
		return out, missing, nil
	}
	if len(keys) == 0 {
		return out, nil, nil
	}

	if s.bulkEnabled {
		sorted := uniqSorted(keys)
		bk := s.bulkKeySorted(sorted)
		if raw, ok, err := s.provider.Get(ctx, bk); err == nil && ok {
			if s.readBulk(ctx, bk, sorted, raw, out) {
				return out, missingFrom(keys, out), nil
			}
			_ = s.provider.Del(ctx, bk)
		}
	}

	// singles
	for _, k := range keys {
		if _, done := out[k]; done {
			continue
		}
		if v, ok, _ := s.Get(ctx, k); ok {
			out[k] = v
		}
	}
	return out, missingFrom(keys, out), nil
}

// readBulk fills out from a bulk frame. It reports false, leaving out
// untouched, when the frame is corrupt, stale or incomplete.
func (s *store) readBulk(ctx context.Context, bk string, sorted []string, raw []byte, out map[string]jsonvalue.Value) bool {
	items, err := wire.DecodeBulk(raw)
	if err != nil {
		s.hooks.BulkRejected(s.ns, len(sorted), "decode_error")
		return false
	}
	if !s.bulkValid(ctx, sorted, items) {
		s.hooks.BulkRejected(s.ns, len(sorted), "invalid_or_stale")
		return false
	}
	decoded := make(map[string]jsonvalue.Value, len(items))
	gens := make(map[string]uint64, len(items))
	for _, it := range items {
		v, err := s.codec.Decode(it.Payload)
		if err != nil {
			s.hooks.BulkRejected(s.ns, len(sorted), "decode_error")
			return false
		}
		decoded[it.Key] = v
		gens[it.Key] = it.Gen
	}
	for _, k := range sorted {
		out[k] = decoded[k]
		// warm the single, still CAS-protected
		_ = s.SetWithGen(ctx, k, decoded[k], gens[k], s.defaultTTL)
	}
	s.log.Debug("bulk hit", jsonvalue.Fields{"bulkKey": bk, "n": len(sorted)})
	return true
}

func (s *store) SetBulkWithGens(ctx context.Context, items map[string]jsonvalue.Value, observedGens map[string]uint64, ttl time.Duration) error {
	if !s.enabled || len(items) == 0 {
		return nil
	}
	ttl = coalesce(ttl, s.bulkTTL)

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if !s.bulkEnabled {
		s.seedSingles(ctx, keys, items, observedGens)
		return nil
	}

	storage := make([]string, len(keys))
	for i, k := range keys {
		storage[i] = s.singleKey(k)
	}
	current, err := s.gen.SnapshotMany(ctx, storage)
	if err != nil {
		s.hooks.GenSnapshotError(len(storage), err)
		s.seedSingles(ctx, keys, items, observedGens)
		return nil
	}
	for i, k := range keys {
		obs, ok := observedGens[k]
		if !ok || current[storage[i]] != obs {
			s.log.Debug("SetBulkWithGens skipped (gen mismatch)", jsonvalue.Fields{"key": k})
			s.seedSingles(ctx, keys, items, observedGens)
			return nil
		}
	}

	wireItems := make([]wire.BulkItem, 0, len(items))
	for _, k := range keys {
		payload, err := s.codec.Encode(items[k])
		if err != nil {
			return err
		}
		wireItems = append(wireItems, wire.BulkItem{Key: k, Gen: observedGens[k], Payload: payload})
	}
	frame, err := wire.EncodeBulk(wireItems)
	if err != nil {
		return err
	}

	bk := s.bulkKeySorted(keys)
	ok, err := s.provider.Set(ctx, bk, frame, s.computeSetCost(bk, frame, true, len(items)), ttl)
	if err != nil {
		return err
	}
	if !ok {
		s.hooks.ProviderSetRejected(bk, true)
		s.log.Debug("bulk Set rejected; seeding singles", jsonvalue.Fields{"bulkKey": bk})
	}
	s.seedSingles(ctx, keys, items, observedGens)
	return nil
}

// seedSingles writes every item that has an observed generation; each
// write is CAS-checked on its own.
func (s *store) seedSingles(ctx context.Context, keys []string, items map[string]jsonvalue.Value, observedGens map[string]uint64) {
	for _, k := range keys {
		if obs, ok := observedGens[k]; ok {
			_ = s.SetWithGen(ctx, k, items[k], obs, s.defaultTTL)
		}
	}
}

func (s *store) SnapshotGen(key string) uint64 {
	g, _ := s.snapshotGen(context.Background(), s.singleKey(key))
	return g
}

func (s *store) SnapshotGens(keys []string) map[string]uint64 {
	out := make(map[string]uint64, len(keys))
	if len(keys) == 0 {
		return out
	}
	storage := make([]string, len(keys))
	for i, k := range keys {
		storage[i] = s.singleKey(k)
	}
	m, err := s.gen.SnapshotMany(context.Background(), storage)
	if err != nil {
		s.hooks.GenSnapshotError(len(keys), err)
		// conservative: one by one
		for _, k := range keys {
			out[k] = s.SnapshotGen(k)
		}
		return out
	}
	for i, k := range keys {
		out[k] = m[storage[i]]
	}
	return out
}

// snapshotGen reports errors so callers can skip writes; a failed snapshot
// is never treated as a matching generation.
func (s *store) snapshotGen(ctx context.Context, storageKey string) (uint64, error) {
	g, err := s.gen.Snapshot(ctx, storageKey)
	if err != nil {
		s.hooks.GenSnapshotError(1, err)
		s.log.Warn("gen snapshot error", jsonvalue.Fields{"key": storageKey, "err": err})
		return 0, err
	}
	return g, nil
}

func (s *store) bumpGen(ctx context.Context, storageKey string) (uint64, error) {
	g, err := s.gen.Bump(ctx, storageKey)
	if err != nil {
		s.hooks.GenBumpError(storageKey, err)
		s.log.Error("gen bump error", jsonvalue.Fields{"key": storageKey, "err": err})
		return 0, err
	}
	return g, nil
}

func (s *store) selfHeal(ctx context.Context, storageKey, reason string) {
	_ = s.provider.Del(ctx, storageKey)
	s.hooks.SelfHealSingle(storageKey, reason)
}

func (s *store) singleKey(userKey string) string {
	return "doc:" + s.ns + ":" + userKey
}

// bulkKeySorted expects sorted, de-duplicated keys.
func (s *store) bulkKeySorted(sorted []string) string {
	return util.BulkKey("docs:"+s.ns, sorted)
}

// bulkValid requires every requested member to be present in the frame at
// its current generation. Extra members in the frame are ignored.
func (s *store) bulkValid(ctx context.Context, sorted []string, items []wire.BulkItem) bool {
	byKey := make(map[string]uint64, len(items))
	for _, it := range items {
		byKey[it.Key] = it.Gen
	}
	storage := make([]string, len(sorted))
	for i, k := range sorted {
		if _, ok := byKey[k]; !ok {
			return false
		}
		storage[i] = s.singleKey(k)
	}
	current, err := s.gen.SnapshotMany(ctx, storage)
	if err != nil {
		s.hooks.GenSnapshotError(len(storage), err)
		return false
	}
	for i, k := range sorted {
		if current[storage[i]] != byKey[k] {
			return false
		}
	}
	return true
}

func uniqSorted(keys []string) []string {
	s := make([]string, len(keys))
	copy(s, keys)
	sort.Strings(s)
	out := s[:0]
	for _, k := range s {
		if len(out) == 0 || k != out[len(out)-1] {
			out = append(out, k)
		}
	}
	return out
}

func missingFrom(keys []string, found map[string]jsonvalue.Value) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := found[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
