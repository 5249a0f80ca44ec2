// Package dirty records which nodes a mutation batch touched.
//
// The tracker is an append-only log during the batch; Nodes and Types
// coalesce it (sort + dedupe) when the batch commits, so Add stays a plain
// slice append on the mutation path.
package dirty

import (
	"cmp"
	"slices"

	"github.com/joshuapare/nodetree/pkg/types"
)

// defaultCapacity is the pre-allocated capacity for touched entries.
const defaultCapacity = 64

// Change classifies a structural change.
type Change uint8

const (
	Created Change = iota + 1
	Removed
	Moved
	Reordered
)

func (c Change) String() string {
	switch c {
	case Created:
		return "created"
	case Removed:
		return "removed"
	case Moved:
		return "moved"
	case Reordered:
		return "reordered"
	default:
		return "unknown"
	}
}

// Entry is one recorded change.
type Entry struct {
	Node   types.NodeHandle
	Type   types.NodeType
	Change Change
}

// DirtyTracker is the minimal interface for components that only report changes.
type DirtyTracker interface {
	Add(h types.NodeHandle, typ types.NodeType, c Change)
}

// Tracker accumulates the changes of one batch.
//
// NOT thread-safe.
type Tracker struct {
	entries []Entry
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make([]Entry, 0, defaultCapacity)}
}

// Add records a change.
func (t *Tracker) Add(h types.NodeHandle, typ types.NodeType, c Change) {
	t.entries = append(t.entries, Entry{Node: h, Type: typ, Change: c})
}

// Len returns the number of raw entries.
func (t *Tracker) Len() int { return len(t.entries) }

// Entries returns a copy of the raw entries in recording order.
func (t *Tracker) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Nodes returns every touched handle once, ordered by id then version.
func (t *Tracker) Nodes() []types.NodeHandle {
	out := make([]types.NodeHandle, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.Node)
	}
	slices.SortFunc(out, func(a, b types.NodeHandle) int {
		if c := cmp.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		return cmp.Compare(a.Version, b.Version)
	})
	return slices.Compact(out)
}

// Types returns every touched node type once, in ascending order.
func (t *Tracker) Types() []types.NodeType {
	out := make([]types.NodeType, 0, 4)
	for _, e := range t.entries {
		out = append(out, e.Type)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// NodesOf returns the distinct handles of the given type.
func (t *Tracker) NodesOf(typ types.NodeType) []types.NodeHandle {
	var out []types.NodeHandle
	for _, e := range t.entries {
		if e.Type == typ && !slices.Contains(out, e.Node) {
			out = append(out, e.Node)
		}
	}
	return out
}

// Reset clears all entries, keeping capacity.
func (t *Tracker) Reset() {
	t.entries = t.entries[:0]
}
