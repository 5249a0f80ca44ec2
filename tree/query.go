package tree

import (
	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/flat"
	"github.com/joshuapare/nodetree/tree/handler"
)

var _ flat.Source = (*Tree)(nil)

// Len returns the number of entries in the flattened array, root included.
func (t *Tree) Len() int {
	if t.closed {
		return 0
	}
	return t.flat.Len()
}

// At returns the flattened entry at index i.
func (t *Tree) At(i int) (types.FlattenedNode, error) {
	if err := t.checkOpen(); err != nil {
		return types.FlattenedNode{}, err
	}
	return t.flat.At(i)
}

// IndexOf returns the flattened index of h.
func (t *Tree) IndexOf(h types.NodeHandle) (int, error) {
	if err := t.checkOpen(); err != nil {
		return -1, err
	}
	return t.flat.IndexOf(h)
}

// ChildrenCount returns the committed number of children of h.
func (t *Tree) ChildrenCount(h types.NodeHandle) (int, error) {
	if err := t.checkOpen(); err != nil {
		return 0, err
	}
	return t.flat.ChildrenCount(h)
}

// Contains reports whether h is in the committed flattened array.
func (t *Tree) Contains(h types.NodeHandle) bool {
	return !t.closed && t.flat.Contains(h)
}

// Flattened returns a copy of the committed flattened array.
func (t *Tree) Flattened() []types.FlattenedNode {
	if t.closed {
		return nil
	}
	return t.flat.Entries()
}

// Snapshot returns a version-checked indexer over the flattened array.
func (t *Tree) Snapshot() flat.Snapshot { return flat.NewSnapshot(t) }

// Children returns a view over the direct children of h.
func (t *Tree) Children(h types.NodeHandle) *flat.ChildrenView {
	return flat.NewChildrenView(t, h)
}

// Filter returns a lazy pre-order view of the non-root nodes accepted by
// pred.
func (t *Tree) Filter(flags uint32, pred flat.Predicate) *flat.FilteredView {
	return flat.NewFilteredView(t, flags, pred)
}

// Search returns the non-root nodes matching f, in pre-order.
//
// Candidates and leaf status come from the last committed layout. Types
// and names are read live, so inside an open batch a node removed by the
// batch is never reported and a renamed node matches by its new name.
//
// Every registered handler sees SearchBegin before the scan and SearchEnd
// after it. Each candidate is matched by the handler of its own type.
func (t *Tree) Search(f handler.Filter) ([]types.NodeHandle, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	q := handler.NewQuery(f)
	hs := t.handlers.Handlers()
	for i, h := range hs {
		if err := h.SearchBegin(t, q); err != nil {
			for _, started := range hs[:i] {
				started.SearchEnd(t, q)
			}
			return nil, err
		}
	}
	defer func() {
		for _, h := range hs {
			h.SearchEnd(t, q)
		}
	}()

	v := t.Filter(f.Flags, func(n types.NodeHandle, flags uint32) bool {
		if !t.isLive(n) {
			return false
		}
		r, err := t.nodes.Get(n)
		if err != nil || !q.MatchType(r.typ) {
			return false
		}
		if flags&handler.FlagLeaves != 0 {
			if c, err := t.flat.ChildrenCount(n); err != nil || c > 0 {
				return false
			}
		}
		return t.handlers.Lookup(r.typ).SearchMatch(t, n, q)
	})
	out, err := v.Collect()
	if err != nil {
		return nil, err
	}
	t.log.Debug("search", "tree", t.id, "text", f.Text, "matches", len(out))
	return out, nil
}
