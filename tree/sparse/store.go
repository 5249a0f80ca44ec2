package sparse

import (
	"iter"

	"github.com/joshuapare/nodetree/internal/buf"
	"github.com/joshuapare/nodetree/pkg/types"
)

// GrowthPolicy selects how Add grows a store that is too small.
type GrowthPolicy uint8

const (
	// ExactSize grows to exactly the required capacity.
	ExactSize GrowthPolicy = iota
	// DoubleSize grows to max(required, 2*capacity).
	DoubleSize
)

func (p GrowthPolicy) String() string {
	switch p {
	case ExactSize:
		return "exact"
	case DoubleSize:
		return "double"
	default:
		return "unknown"
	}
}

// Pair is one slot of the store.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Store is a direct-addressed map from K to V.
type Store[K comparable, V any] struct {
	index    func(K) int
	init     V
	slots    []Pair[K, V]
	count    int
	released bool
}

// New creates an empty store. init is the value written into empty and
// removed slots.
func New[K comparable, V any](index func(K) int, init V) *Store[K, V] {
	if index == nil {
		panic("sparse: nil index projection")
	}
	return &Store[K, V]{index: index, init: init}
}

// Count returns the number of occupied slots.
func (s *Store[K, V]) Count() int { return s.count }

// Capacity returns the number of addressable slots.
func (s *Store[K, V]) Capacity() int { return len(s.slots) }

// Reserve grows the store to exactly capacity slots. It never shrinks.
func (s *Store[K, V]) Reserve(capacity int) error {
	if s.released {
		return types.ErrClosed
	}
	if capacity < 0 {
		return types.Errorf(types.ErrKindArgument, "sparse: negative capacity %d", capacity)
	}
	if capacity > len(s.slots) {
		s.grow(capacity)
	}
	return nil
}

// grow resizes to n slots, filling the new tail with the init value.
func (s *Store[K, V]) grow(n int) {
	old := len(s.slots)
	next := make([]Pair[K, V], n)
	copy(next, s.slots)
	s.slots = next
	fill(s.slots[old:], Pair[K, V]{Value: s.init})
}

// fill replicates v over dst by doubling copies.
func fill[T any](dst []T, v T) {
	if len(dst) == 0 {
		return
	}
	dst[0] = v
	for n := 1; n < len(dst); n *= 2 {
		copy(dst[n:], dst[:n])
	}
}

func (s *Store[K, V]) isEmpty(i int) bool {
	var zero K
	return s.slots[i].Key == zero
}

// slot resolves key to an in-range slot index.
func (s *Store[K, V]) slot(key K) (int, error) {
	if s.released {
		return 0, types.ErrClosed
	}
	i := s.index(key)
	if err := buf.CheckIndex(i, len(s.slots)); err != nil {
		return 0, err
	}
	return i, nil
}

// Get returns the value stored for key.
func (s *Store[K, V]) Get(key K) (V, error) {
	v, ok, err := s.TryGet(key)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, types.Errorf(types.ErrKindKeyNotFound, "sparse: key %v not found", key)
	}
	return v, nil
}

// TryGet returns the value stored for key and whether it is present.
func (s *Store[K, V]) TryGet(key K) (V, bool, error) {
	i, err := s.slot(key)
	if err != nil {
		var zero V
		return zero, false, err
	}
	if p := s.slots[i]; !s.isEmpty(i) && p.Key == key {
		return p.Value, true, nil
	}
	return s.init, false, nil
}

// ContainsKey reports whether key is present.
func (s *Store[K, V]) ContainsKey(key K) (bool, error) {
	_, ok, err := s.TryGet(key)
	return ok, err
}

// Set stores value for key, replacing whatever the slot held.
func (s *Store[K, V]) Set(key K, value V) error {
	if err := s.checkKey(key); err != nil {
		return err
	}
	i, err := s.slot(key)
	if err != nil {
		return err
	}
	if s.isEmpty(i) {
		s.count++
	}
	s.slots[i] = Pair[K, V]{Key: key, Value: value}
	return nil
}

func (s *Store[K, V]) checkKey(key K) error {
	var zero K
	if key == zero {
		return types.Errorf(types.ErrKindArgument, "sparse: zero key cannot be stored")
	}
	return nil
}

// Add stores value for key, growing the store according to policy.
func (s *Store[K, V]) Add(key K, value V, policy GrowthPolicy) error {
	ok, err := s.TryAdd(key, value, policy)
	if err != nil {
		return err
	}
	if !ok {
		return types.Errorf(types.ErrKindDuplicateKey, "sparse: key %v already present", key)
	}
	return nil
}

// TryAdd stores value for key unless the slot is occupied.
// It returns false, nil for an occupied slot.
func (s *Store[K, V]) TryAdd(key K, value V, policy GrowthPolicy) (bool, error) {
	if s.released {
		return false, types.ErrClosed
	}
	if err := s.checkKey(key); err != nil {
		return false, err
	}
	i := s.index(key)
	if i >= len(s.slots) {
		n, err := buf.NextCapacity(len(s.slots), i, policy == DoubleSize)
		if err != nil {
			return false, err
		}
		s.grow(n)
	}
	return s.tryAddAt(key, value)
}

// AddNoResize is Add without implicit growth.
func (s *Store[K, V]) AddNoResize(key K, value V) error {
	ok, err := s.TryAddNoResize(key, value)
	if err != nil {
		return err
	}
	if !ok {
		return types.Errorf(types.ErrKindDuplicateKey, "sparse: key %v already present", key)
	}
	return nil
}

// TryAddNoResize is TryAdd without implicit growth.
func (s *Store[K, V]) TryAddNoResize(key K, value V) (bool, error) {
	if err := s.checkKey(key); err != nil {
		return false, err
	}
	return s.tryAddAt(key, value)
}

func (s *Store[K, V]) tryAddAt(key K, value V) (bool, error) {
	i, err := s.slot(key)
	if err != nil {
		return false, err
	}
	if !s.isEmpty(i) {
		return false, nil
	}
	s.slots[i] = Pair[K, V]{Key: key, Value: value}
	s.count++
	return true, nil
}

// Remove resets the slot of key. It returns false when key is absent,
// including slots beyond the capacity.
func (s *Store[K, V]) Remove(key K) (bool, error) {
	if s.released {
		return false, types.ErrClosed
	}
	i := s.index(key)
	if i < 0 {
		return false, types.Errorf(types.ErrKindIndexRange, "sparse: negative index %d", i)
	}
	if i >= len(s.slots) || s.isEmpty(i) || s.slots[i].Key != key {
		return false, nil
	}
	s.slots[i] = Pair[K, V]{Value: s.init}
	s.count--
	return true, nil
}

// Clear resets every slot. The capacity is kept.
func (s *Store[K, V]) Clear() {
	fill(s.slots, Pair[K, V]{Value: s.init})
	s.count = 0
}

// All yields the occupied pairs in slot order.
func (s *Store[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range s.slots {
			if s.isEmpty(i) {
				continue
			}
			if !yield(s.slots[i].Key, s.slots[i].Value) {
				return
			}
		}
	}
}

// Release drops the backing slots. Any later operation returns ErrClosed.
func (s *Store[K, V]) Release() {
	s.slots = nil
	s.count = 0
	s.released = true
}
