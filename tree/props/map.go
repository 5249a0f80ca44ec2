// Package props provides per-node property storage.
//
// Map[V] is a typed view of a sparse.Store keyed by node handle with the
// projection index(h) = h.ID - 1. Fixed-size payloads live directly in the
// store slots.
//
// String and raw byte properties are variable-length and owned by the tree;
// StringProperty and RawProperty forward to an Owner under a PropertyID.
package props

import (
	"iter"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/sparse"
)

// Map stores one V per node.
type Map[V any] struct {
	store  *sparse.Store[types.NodeHandle, V]
	policy sparse.GrowthPolicy
}

func slotOf(h types.NodeHandle) int { return h.Slot() }

// NewMap creates a map with room for capacity nodes. policy is used by Add
// and TryAdd when no policy is given explicitly.
func NewMap[V any](capacity int, policy sparse.GrowthPolicy) (*Map[V], error) {
	var init V
	return NewMapWithInit(capacity, policy, init)
}

// NewMapWithInit is NewMap with a custom value for empty slots.
func NewMapWithInit[V any](capacity int, policy sparse.GrowthPolicy, init V) (*Map[V], error) {
	m := &Map[V]{store: sparse.New(slotOf, init), policy: policy}
	if err := m.store.Reserve(capacity); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns the value of h.
func (m *Map[V]) Get(h types.NodeHandle) (V, error) { return m.store.Get(h) }

// Set stores v for h. The slot of h must be within the capacity.
func (m *Map[V]) Set(h types.NodeHandle, v V) error { return m.store.Set(h, v) }

// Add stores v for h using the map's growth policy.
func (m *Map[V]) Add(h types.NodeHandle, v V) error { return m.store.Add(h, v, m.policy) }

// AddWith stores v for h using policy.
func (m *Map[V]) AddWith(h types.NodeHandle, v V, policy sparse.GrowthPolicy) error {
	return m.store.Add(h, v, policy)
}

// TryAdd stores v unless h already has a value.
func (m *Map[V]) TryAdd(h types.NodeHandle, v V) (bool, error) {
	return m.store.TryAdd(h, v, m.policy)
}

// AddNoResize stores v without growing the map.
func (m *Map[V]) AddNoResize(h types.NodeHandle, v V) error { return m.store.AddNoResize(h, v) }

// TryAddNoResize stores v unless present, without growing the map.
func (m *Map[V]) TryAddNoResize(h types.NodeHandle, v V) (bool, error) {
	return m.store.TryAddNoResize(h, v)
}

// Upsert stores v for h, growing the map when needed.
func (m *Map[V]) Upsert(h types.NodeHandle, v V) error {
	if h.Slot() >= m.store.Capacity() {
		return m.store.Add(h, v, m.policy)
	}
	return m.store.Set(h, v)
}

// Remove deletes the value of h.
func (m *Map[V]) Remove(h types.NodeHandle) (bool, error) { return m.store.Remove(h) }

// Clear removes every value.
func (m *Map[V]) Clear() { m.store.Clear() }

// Reserve grows the map to capacity slots.
func (m *Map[V]) Reserve(capacity int) error { return m.store.Reserve(capacity) }

// Capacity returns the number of addressable slots.
func (m *Map[V]) Capacity() int { return m.store.Capacity() }

// Count returns the number of stored values.
func (m *Map[V]) Count() int { return m.store.Count() }

// ContainsKey reports whether h has a value.
func (m *Map[V]) ContainsKey(h types.NodeHandle) (bool, error) { return m.store.ContainsKey(h) }

// TryGetValue returns the value of h and whether it is present.
func (m *Map[V]) TryGetValue(h types.NodeHandle) (V, bool, error) { return m.store.TryGet(h) }

// Has is ContainsKey for callers that treat out-of-range as absent.
func (m *Map[V]) Has(h types.NodeHandle) bool {
	if h.Slot() >= m.store.Capacity() {
		return false
	}
	ok, err := m.store.ContainsKey(h)
	return err == nil && ok
}

// All yields every (handle, value) pair in id order.
func (m *Map[V]) All() iter.Seq2[types.NodeHandle, V] { return m.store.All() }

// Release drops the backing store.
func (m *Map[V]) Release() { m.store.Release() }
