// Package sparse implements a direct-addressed associative store.
//
// # Overview
//
// A Store maps keys to values through a caller-supplied injective projection
// index(key) -> slot. There is no hashing and no probing: every operation is a
// bounds check plus one slice access.
//
//	s := sparse.New(func(h types.NodeHandle) int { return h.Slot() }, 0)
//	_ = s.Add(h, 42, sparse.DoubleSize)
//	v, ok, err := s.TryGet(h)
//
// # Slots
//
// Each slot is a Pair{Key, Value}. A slot is empty when its key equals the
// zero value of K, so the zero key can never be stored. Removal resets the
// slot to {zero, init} instead of compacting, and capacity never shrinks.
// Lookups compare the whole key, so a key that projects onto an occupied slot
// but differs from the stored key (for example a stale generational handle)
// is reported as absent.
//
// # Growth
//
// Reserve grows to exactly the requested capacity. Add and TryAdd take a
// GrowthPolicy per call:
//   - ExactSize: grow to exactly index(key)+1 (tight memory)
//   - DoubleSize: grow to max(index(key)+1, 2*capacity) (amortized O(1))
//
// AddNoResize and TryAddNoResize never grow and fail when the slot is outside
// the current capacity.
//
// # Errors
//
// Read operations (Get, Set, TryGet, ContainsKey) return an ErrKindIndexRange
// error when index(key) is negative or beyond the capacity. Get returns an
// ErrKindKeyNotFound error for an empty slot; TryGet reports it with a bool.
// Add returns an ErrKindDuplicateKey error when the slot is occupied.
//
// # Thread Safety
//
// Store instances are not thread-safe.
package sparse
