// Package walker traverses a flattened tree in pre-order with depth
// information, without recursion and without touching the child lists.
package walker

import (
	"errors"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/children"
	"github.com/joshuapare/nodetree/tree/flat"
)

// ErrSkipChildren returned by a VisitFunc skips the subtree below the entry.
var ErrSkipChildren = errors.New("walker: skip children")

// ErrStop returned by a VisitFunc ends the walk without error.
var ErrStop = errors.New("walker: stop")

// VisitFunc is called once per entry. depth is 0 for the starting node.
type VisitFunc func(e types.FlattenedNode, depth int) error

// Walk visits every entry of src, root first.
func Walk(src flat.Source, fn VisitFunc) error {
	return walkFrom(src, 0, fn)
}

// WalkSubtree visits h and its descendants.
func WalkSubtree(src flat.Source, h types.NodeHandle, fn VisitFunc) error {
	i, err := src.IndexOf(h)
	if err != nil {
		return err
	}
	return walkFrom(src, i, fn)
}

func walkFrom(src flat.Source, start int, fn VisitFunc) error {
	version := src.Version()
	// remaining[d] is the number of unvisited children of the open node at depth d
	remaining := make([]int32, 0, 32)
	skipTo := -1

	for i := start; i < src.Len(); i++ {
		if v := src.Version(); v != version {
			return types.Errorf(types.ErrKindStaleView, "walker: tree changed from version %d to %d", version, v)
		}
		e, err := src.At(i)
		if err != nil {
			return err
		}
		depth := len(remaining)
		if depth > 0 {
			remaining[depth-1]--
		}
		if e.ChildrenCount > 0 {
			remaining = append(remaining, e.ChildrenCount)
		}

		if skipTo < 0 || depth < skipTo {
			skipTo = -1
			switch err := fn(e, depth); {
			case errors.Is(err, ErrStop):
				return nil
			case errors.Is(err, ErrSkipChildren):
				skipTo = depth + 1
			case err != nil:
				return err
			}
		}

		for len(remaining) > 0 && remaining[len(remaining)-1] == 0 {
			remaining = remaining[:len(remaining)-1]
		}
		if len(remaining) == 0 {
			return nil
		}
	}
	return nil
}

// ChildLister is implemented by sources that expose their child lists.
type ChildLister interface {
	ChildList(h types.NodeHandle) (children.View, error)
}

// Stats describes the shape of a tree.
type Stats struct {
	Nodes     int
	Leaves    int
	MaxDepth  int
	MaxFanout int

	// Child list storage, counted when the source is a ChildLister. Lists
	// are read live, so nodes removed in an open batch are not counted.
	InlineLists int
	HeapLists   int

	// NodesAtDepth[d] is the number of nodes at depth d.
	NodesAtDepth []int
}

// Collect walks src and returns its Stats.
func Collect(src flat.Source) (*Stats, error) {
	st := &Stats{}
	lister, _ := src.(ChildLister)
	err := Walk(src, func(e types.FlattenedNode, depth int) error {
		st.Nodes++
		if e.ChildrenCount == 0 {
			st.Leaves++
		}
		st.MaxDepth = max(st.MaxDepth, depth)
		st.MaxFanout = max(st.MaxFanout, int(e.ChildrenCount))
		for len(st.NodesAtDepth) <= depth {
			st.NodesAtDepth = append(st.NodesAtDepth, 0)
		}
		st.NodesAtDepth[depth]++

		if lister != nil {
			v, err := lister.ChildList(e.Node)
			if errors.Is(err, types.ErrNodeNotFound) {
				// removed in a batch that is not committed yet
				return nil
			}
			if err != nil {
				return err
			}
			s, err := v.Storage()
			if err != nil {
				return err
			}
			if s == children.Heap {
				st.HeapLists++
			} else {
				st.InlineLists++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}
