// Package store is a provider-agnostic document store for jsonvalue trees
// with compare-and-swap (CAS) safety via per-key generations. Single-key
// reads never return stale documents; bulk results are validated on read
// (per member) and rejected if any member is stale.
//
// Components:
//   - Provider: byte store with TTL (Ristretto, BigCache, Redis).
//   - Codec: jsonvalue.Value <-> []byte (JSON by default, CBOR, Msgpack,
//     Protobuf, YAML).
//   - GenStore: generation counter per key. Local (in-process) by default,
//     Redis for multi-replica setups or restart persistence.
//   - Coder: typed access through Load and Save.
//
// Keys:
//
//	doc:<ns>:<key>    - single documents
//	docs:<ns>:<hash>  - set-shaped entries (hash over sorted keys)
//
// CAS pattern:
//
//	obs := st.SnapshotGen(k)  // before reading the source of truth
//	u   := readFromDB(k)
//	_   = store.Save(ctx, st, k, u, obs, 0) // written iff current gen == obs
package store
