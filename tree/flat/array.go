package flat

import (
	"slices"

	"github.com/joshuapare/nodetree/internal/buf"
	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/props"
	"github.com/joshuapare/nodetree/tree/sparse"
)

// initialStackCapacity is the pre-allocated depth of the rebuild stack.
const initialStackCapacity = 64

// Source is the structural query surface views are built on.
type Source interface {
	types.Versioned
	Len() int
	At(i int) (types.FlattenedNode, error)
	IndexOf(h types.NodeHandle) (int, error)
	ChildrenCount(h types.NodeHandle) (int, error)
	Contains(h types.NodeHandle) bool
}

// ChildrenFunc appends the ordered children of h to dst.
type ChildrenFunc func(h types.NodeHandle, dst []types.NodeHandle) ([]types.NodeHandle, error)

// Array is the flattened pre-order sequence of a tree.
//
// NOT thread-safe.
type Array struct {
	owner   types.Versioned
	entries []types.FlattenedNode
	pos     *props.Map[int32]

	// rebuild scratch, kept between rebuilds
	stack   []frame
	scratch []types.NodeHandle
}

// frame is one open parent during a rebuild. Its pending children are
// scratch[next:end].
type frame struct {
	start, next, end int
	prev             int // entry index of the previously emitted child, -1 before the first
}

// New creates an empty array reporting owner's version.
func New(owner types.Versioned, capacity int) (*Array, error) {
	pos, err := props.NewMapWithInit[int32](capacity, sparse.DoubleSize, -1)
	if err != nil {
		return nil, err
	}
	return &Array{
		owner:   owner,
		entries: make([]types.FlattenedNode, 0, capacity),
		pos:     pos,
		stack:   make([]frame, 0, initialStackCapacity),
	}, nil
}

// FromEntries builds an array from a prepared entry sequence after checking
// the layout invariants.
func FromEntries(owner types.Versioned, entries []types.FlattenedNode) (*Array, error) {
	a, err := New(owner, len(entries))
	if err != nil {
		return nil, err
	}
	a.entries = append(a.entries, entries...)
	for i, e := range entries {
		if err := a.place(e.Node, i); err != nil {
			return nil, err
		}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Array) place(h types.NodeHandle, i int) error {
	if h.IsNull() {
		return types.Errorf(types.ErrKindArgument, "flat: null handle at index %d", i)
	}
	if a.pos.Has(h) {
		return types.Errorf(types.ErrKindArgument, "flat: node %v reachable twice", h)
	}
	return a.pos.Upsert(h, int32(i))
}

// Rebuild replaces the contents with the pre-order walk from root.
func (a *Array) Rebuild(root types.NodeHandle, childrenOf ChildrenFunc) error {
	a.entries = a.entries[:0]
	a.pos.Clear()
	a.stack = a.stack[:0]
	a.scratch = a.scratch[:0]

	if err := a.place(root, 0); err != nil {
		return err
	}
	a.entries = append(a.entries, types.FlattenedNode{Node: root})
	if err := a.open(0, root, childrenOf); err != nil {
		return err
	}

	for len(a.stack) > 0 {
		top := len(a.stack) - 1
		f := &a.stack[top]
		if f.next == f.end {
			a.scratch = a.scratch[:f.start]
			a.stack = a.stack[:top]
			continue
		}

		child := a.scratch[f.next]
		f.next++
		idx := len(a.entries)
		if f.prev >= 0 {
			a.entries[f.prev].NextSiblingOffset = int32(idx - f.prev)
		}
		f.prev = idx

		if err := a.place(child, idx); err != nil {
			return err
		}
		a.entries = append(a.entries, types.FlattenedNode{Node: child})
		// f is not used past this point: open may grow the stack.
		if err := a.open(idx, child, childrenOf); err != nil {
			return err
		}
	}
	return nil
}

// open collects the children of the entry at idx and pushes a frame for them.
func (a *Array) open(idx int, h types.NodeHandle, childrenOf ChildrenFunc) error {
	start := len(a.scratch)
	var err error
	a.scratch, err = childrenOf(h, a.scratch)
	if err != nil {
		return err
	}
	n := len(a.scratch) - start
	a.entries[idx].ChildrenCount = int32(n)
	if n > 0 {
		a.stack = append(a.stack, frame{start: start, next: start, end: start + n, prev: -1})
	}
	return nil
}

// Validate checks the layout invariants: pre-order, first child directly
// after its parent, sibling hops landing on siblings, last child offsets <= 0.
func (a *Array) Validate() error {
	if len(a.entries) == 0 {
		return nil
	}
	next, err := a.validateSubtree(0)
	if err != nil {
		return err
	}
	if next != len(a.entries) {
		return types.Errorf(types.ErrKindArgument, "flat: %d entries outside the root subtree", len(a.entries)-next)
	}
	return nil
}

// validateSubtree checks the subtree at i and returns the index just past it.
func (a *Array) validateSubtree(i int) (int, error) {
	e := a.entries[i]
	if e.ChildrenCount < 0 {
		return 0, types.Errorf(types.ErrKindArgument, "flat: negative children count at %d", i)
	}
	cur := i + 1
	for k := range int(e.ChildrenCount) {
		if cur >= len(a.entries) {
			return 0, types.Errorf(types.ErrKindArgument, "flat: child %d of entry %d out of bounds", k, i)
		}
		end, err := a.validateSubtree(cur)
		if err != nil {
			return 0, err
		}
		off := a.entries[cur].NextSiblingOffset
		last := k == int(e.ChildrenCount)-1
		switch {
		case last && off > 0:
			return 0, types.Errorf(types.ErrKindArgument, "flat: last child at %d has sibling offset %d", cur, off)
		case !last && int(off) != end-cur:
			return 0, types.Errorf(types.ErrKindArgument, "flat: child at %d has sibling offset %d, want %d", cur, off, end-cur)
		}
		cur = end
	}
	return cur, nil
}

// Version returns the owner's version.
func (a *Array) Version() int { return a.owner.Version() }

// Len returns the number of entries, root included.
func (a *Array) Len() int { return len(a.entries) }

// At returns the entry at index i.
func (a *Array) At(i int) (types.FlattenedNode, error) {
	if err := buf.CheckIndex(i, len(a.entries)); err != nil {
		return types.FlattenedNode{}, err
	}
	return a.entries[i], nil
}

// IndexOf returns the position of h in O(1).
func (a *Array) IndexOf(h types.NodeHandle) (int, error) {
	if h.Slot() < 0 || h.Slot() >= a.pos.Capacity() {
		return -1, types.Errorf(types.ErrKindNodeNotFound, "flat: node %v not in tree", h)
	}
	i, ok, err := a.pos.TryGetValue(h)
	if err != nil {
		return -1, err
	}
	if !ok {
		return -1, types.Errorf(types.ErrKindNodeNotFound, "flat: node %v not in tree", h)
	}
	return int(i), nil
}

// Contains reports whether h is in the array.
func (a *Array) Contains(h types.NodeHandle) bool {
	return a.pos.Has(h)
}

// ChildrenCount returns the number of direct children of h.
func (a *Array) ChildrenCount(h types.NodeHandle) (int, error) {
	i, err := a.IndexOf(h)
	if err != nil {
		return 0, err
	}
	return int(a.entries[i].ChildrenCount), nil
}

// Entries returns a copy of the entries.
func (a *Array) Entries() []types.FlattenedNode {
	return slices.Clone(a.entries)
}

// Release drops the backing memory.
func (a *Array) Release() {
	a.entries = nil
	a.stack = nil
	a.scratch = nil
	a.pos.Release()
}
