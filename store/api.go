package store

import (
	"context"
	"time"

	"github.com/unkn0wn-root/jsonvalue"
	"github.com/unkn0wn-root/jsonvalue/codec"
	gen "github.com/unkn0wn-root/jsonvalue/genstore"
	pr "github.com/unkn0wn-root/jsonvalue/provider"
)

type SetCostFunc func(key string, raw []byte, isBulk bool, bulkCount int) int64

// Store is a provider-agnostic document store. Each key holds one
// jsonvalue.Value; writes are guarded by per-key generations so a writer
// that read stale source data can never overwrite a newer invalidation.
type Store interface {
	Enabled() bool
	Close(context.Context) error

	// Coder is used by Load and Save.
	Coder() *jsonvalue.Coder

	// Single
	Get(ctx context.Context, key string) (v jsonvalue.Value, ok bool, err error)
	// GetPath reads one node of a stored document. A path that does not
	// resolve fails with *jsonvalue.PathError.
	GetPath(ctx context.Context, key string, path ...string) (v jsonvalue.Value, ok bool, err error)
	SetWithGen(ctx context.Context, key string, value jsonvalue.Value, observedGen uint64, ttl time.Duration) error
	// MergeWithGen merges patch into the stored object (patch keys win) and
	// writes the result under the same CAS rule as SetWithGen. A missing
	// document merges into an empty object.
	MergeWithGen(ctx context.Context, key string, patch jsonvalue.Value, observedGen uint64, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error

	// Bulk (order-agnostic return; use your own ordering by keys slice)
	GetBulk(ctx context.Context, keys []string) (values map[string]jsonvalue.Value, missing []string, err error)
	SetBulkWithGens(ctx context.Context, items map[string]jsonvalue.Value, observedGens map[string]uint64, ttl time.Duration) error

	// Generation snapshots (take before reading the source of truth)
	SnapshotGen(key string) uint64
	SnapshotGens(keys []string) map[string]uint64
}

// Options tune the store. Only Namespace and Provider are required.
type Options struct {
	// Required
	Namespace string // logical namespace to avoid collisions. e.g. "user", "order"
	Provider  pr.Provider

	Codec           codec.Codec[jsonvalue.Value] // nil => codec.JSON
	Coder           *jsonvalue.Coder             // nil => coder logging to Logger
	Logger          jsonvalue.Logger             // nil => NopLogger
	Hooks           Hooks                        // nil => NopHooks
	DefaultTTL      time.Duration                // singles; 0 => 10m
	BulkTTL         time.Duration                // bulks; 0 => 10m
	CleanupInterval time.Duration                // local gens; 0 => 1h
	GenRetention    time.Duration                // local gens; 0 => 30d
	Disabled        bool
	ComputeSetCost  SetCostFunc   // default 1
	GenStore        gen.GenStore  // nil => genstore.Local
	DisableBulk     bool
}

func New(opts Options) (Store, error) {
	return newStore(opts)
}
