// Package children holds per-node child lists with small-vector storage.
//
// A List keeps up to InlineCapacity handles inside the record itself and
// moves them to a heap block once a fifth child arrives. Only the owning
// aggregate mutates lists; readers go through a version-checked View.
package children

import (
	"slices"

	"github.com/joshuapare/nodetree/internal/buf"
	"github.com/joshuapare/nodetree/pkg/types"
)

// InlineCapacity is the number of handles stored without a heap block.
const InlineCapacity = 4

// demoteAt is the heap length at which a list moves back inline.
const demoteAt = InlineCapacity / 2

// Storage reports where a list keeps its handles.
type Storage uint8

const (
	Inline Storage = iota
	Heap
)

func (s Storage) String() string {
	if s == Heap {
		return "heap"
	}
	return "inline"
}

// List is an ordered child list.
//
// The zero value is an empty inline list.
type List struct {
	storage Storage
	n       uint8
	inline  [InlineCapacity]types.NodeHandle
	heap    []types.NodeHandle
}

// Storage returns the current storage mode.
func (l *List) Storage() Storage { return l.storage }

// Len returns the number of children.
func (l *List) Len() int {
	if l.storage == Heap {
		return len(l.heap)
	}
	return int(l.n)
}

func (l *List) items() []types.NodeHandle {
	if l.storage == Heap {
		return l.heap
	}
	return l.inline[:l.n]
}

// At returns the i-th child.
func (l *List) At(i int) (types.NodeHandle, error) {
	items := l.items()
	if err := buf.CheckIndex(i, len(items)); err != nil {
		return types.Null, err
	}
	return items[i], nil
}

// IndexOf returns the position of h, or -1.
func (l *List) IndexOf(h types.NodeHandle) int {
	return slices.Index(l.items(), h)
}

// AppendTo appends the children to dst in order.
func (l *List) AppendTo(dst []types.NodeHandle) []types.NodeHandle {
	return append(dst, l.items()...)
}

// Append adds h as the last child.
func (l *List) Append(h types.NodeHandle) error {
	return l.Insert(l.Len(), h)
}

// Insert places h at position at (0 <= at <= Len), promoting the list to
// heap storage when the inline slots are full.
func (l *List) Insert(at int, h types.NodeHandle) error {
	if h.IsNull() {
		return types.Errorf(types.ErrKindArgument, "children: cannot insert null handle")
	}
	n := l.Len()
	if at < 0 || at > n {
		return types.Errorf(types.ErrKindIndexRange, "children: insert position %d out of range [0,%d]", at, n)
	}

	if l.storage == Inline && n == InlineCapacity {
		l.promote()
	}

	if l.storage == Heap {
		l.heap = slices.Insert(l.heap, at, h)
		return nil
	}

	copy(l.inline[at+1:n+1], l.inline[at:n])
	l.inline[at] = h
	l.n++
	return nil
}

// RemoveAt deletes and returns the child at position i, demoting a heap
// list that has shrunk to demoteAt children.
func (l *List) RemoveAt(i int) (types.NodeHandle, error) {
	n := l.Len()
	if err := buf.CheckIndex(i, n); err != nil {
		return types.Null, err
	}

	if l.storage == Heap {
		h := l.heap[i]
		l.heap = slices.Delete(l.heap, i, i+1)
		if len(l.heap) <= demoteAt {
			l.demote()
		}
		return h, nil
	}

	h := l.inline[i]
	copy(l.inline[i:n-1], l.inline[i+1:n])
	l.inline[n-1] = types.Null
	l.n--
	return h, nil
}

// Remove deletes h and reports whether it was present.
func (l *List) Remove(h types.NodeHandle) bool {
	i := l.IndexOf(h)
	if i < 0 {
		return false
	}
	_, _ = l.RemoveAt(i)
	return true
}

// Reset empties the list and drops any heap block.
func (l *List) Reset() {
	*l = List{}
}

func (l *List) promote() {
	block := make([]types.NodeHandle, InlineCapacity, 2*InlineCapacity)
	copy(block, l.inline[:])
	l.inline = [InlineCapacity]types.NodeHandle{}
	l.n = 0
	l.heap = block
	l.storage = Heap
}

func (l *List) demote() {
	var inline [InlineCapacity]types.NodeHandle
	n := copy(inline[:], l.heap)
	l.inline = inline
	l.n = uint8(n)
	l.heap = nil
	l.storage = Inline
}
