// Package genstore keeps the per-document generation counters that make
// store writes compare-and-swap safe.
package genstore

import (
	"context"
	"time"
)

// GenStore abstracts where generations live.
// Use Local (default) for in-process generations, or Redis to share them
// across replicas and restarts.
type GenStore interface {
	// Snapshot returns the current generation; missing => 0.
	Snapshot(ctx context.Context, storageKey string) (uint64, error)
	// SnapshotMany returns gens for many keys; missing => 0.
	SnapshotMany(ctx context.Context, storageKeys []string) (map[string]uint64, error)
	// Bump atomically increments and returns the new generation.
	Bump(ctx context.Context, storageKey string) (uint64, error)
	// Cleanup prunes entries not bumped within retention and reports how
	// many it removed. No-op for stores with native expiry.
	Cleanup(retention time.Duration) int
	// Close releases resources. Safe to call more than once.
	Close(context.Context) error
}
