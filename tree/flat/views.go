package flat

import (
	"github.com/joshuapare/nodetree/pkg/types"
)

func staleErr(captured, current int) error {
	return types.Errorf(types.ErrKindStaleView, "flat: view at version %d, tree at %d", captured, current)
}

// Snapshot is a version-checked indexer over a Source.
type Snapshot struct {
	src     Source
	version int
}

// NewSnapshot captures the current version of src.
func NewSnapshot(src Source) Snapshot {
	return Snapshot{src: src, version: src.Version()}
}

// Version returns the captured version.
func (s Snapshot) Version() int { return s.version }

func (s Snapshot) check() error {
	if v := s.src.Version(); v != s.version {
		return staleErr(s.version, v)
	}
	return nil
}

// Len returns the number of entries.
func (s Snapshot) Len() (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.src.Len(), nil
}

// At returns the entry at index i.
func (s Snapshot) At(i int) (types.FlattenedNode, error) {
	if err := s.check(); err != nil {
		return types.FlattenedNode{}, err
	}
	return s.src.At(i)
}

// IndexOf returns the position of h.
func (s Snapshot) IndexOf(h types.NodeHandle) (int, error) {
	if err := s.check(); err != nil {
		return -1, err
	}
	return s.src.IndexOf(h)
}

// ChildrenCount returns the number of direct children of h.
func (s Snapshot) ChildrenCount(h types.NodeHandle) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.src.ChildrenCount(h)
}

// Contains reports whether h is in the tree.
func (s Snapshot) Contains(h types.NodeHandle) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	return s.src.Contains(h), nil
}

// Children returns a children view bound to the captured version.
func (s Snapshot) Children(h types.NodeHandle) *ChildrenView {
	v := NewChildrenView(s.src, h)
	v.version = s.version
	return v
}

type viewState uint8

const (
	notStarted viewState = iota
	positioned
	exhausted
)

// ChildrenView iterates the direct children of one node through the
// flattened array.
//
//	v := flat.NewChildrenView(src, node)
//	for v.Next() {
//		use(v.Node())
//	}
//	if err := v.Err(); err != nil { ... }
type ChildrenView struct {
	src     Source
	parent  types.NodeHandle
	version int

	state   viewState
	index   int
	sibling int
	count   int
	cur     types.NodeHandle
	err     error
}

// NewChildrenView creates a view over the children of parent.
func NewChildrenView(src Source, parent types.NodeHandle) *ChildrenView {
	return &ChildrenView{src: src, parent: parent, version: src.Version()}
}

// Version returns the captured version.
func (v *ChildrenView) Version() int { return v.version }

func (v *ChildrenView) fail(err error) bool {
	v.err = err
	v.state = exhausted
	v.cur = types.Null
	return false
}

func (v *ChildrenView) exhaust() bool {
	v.state = exhausted
	v.cur = types.Null
	return false
}

// Next advances to the next child.
func (v *ChildrenView) Next() bool {
	if v.state == exhausted {
		return false
	}
	if cur := v.src.Version(); cur != v.version {
		return v.fail(staleErr(v.version, cur))
	}

	switch v.state {
	case notStarted:
		idx, err := v.src.IndexOf(v.parent)
		if err != nil {
			return v.fail(err)
		}
		e, err := v.src.At(idx)
		if err != nil {
			return v.fail(err)
		}
		v.count = int(e.ChildrenCount)
		if v.count <= 0 || idx+1 >= v.src.Len() {
			return v.exhaust()
		}
		return v.position(idx+1, 0)

	case positioned:
		if v.sibling+1 >= v.count {
			return v.exhaust()
		}
		e, err := v.src.At(v.index)
		if err != nil {
			return v.fail(err)
		}
		if e.NextSiblingOffset <= 0 {
			return v.exhaust()
		}
		next := v.index + int(e.NextSiblingOffset)
		if next >= v.src.Len() {
			return v.exhaust()
		}
		return v.position(next, v.sibling+1)
	}
	return false
}

func (v *ChildrenView) position(index, sibling int) bool {
	e, err := v.src.At(index)
	if err != nil {
		return v.fail(err)
	}
	v.state = positioned
	v.index = index
	v.sibling = sibling
	v.cur = e.Node
	return true
}

// Node returns the current child, or Null outside a positioned state.
// A view gone stale since the last Next returns Null and reports the
// stale error through Err.
func (v *ChildrenView) Node() types.NodeHandle {
	if v.state != positioned {
		return types.Null
	}
	if cur := v.src.Version(); cur != v.version {
		v.fail(staleErr(v.version, cur))
		return types.Null
	}
	return v.cur
}

// Index returns the flattened index of the current child.
func (v *ChildrenView) Index() int {
	if v.state != positioned {
		return -1
	}
	return v.index
}

// Err returns the error that ended the iteration, if any.
func (v *ChildrenView) Err() error { return v.err }

// Count returns the number of children of the parent.
func (v *ChildrenView) Count() (int, error) {
	if cur := v.src.Version(); cur != v.version {
		return 0, staleErr(v.version, cur)
	}
	return v.src.ChildrenCount(v.parent)
}

// Collect drains the view.
func (v *ChildrenView) Collect() ([]types.NodeHandle, error) {
	var out []types.NodeHandle
	for v.Next() {
		n := v.Node()
		if n.IsNull() {
			break
		}
		out = append(out, n)
	}
	return out, v.Err()
}

// Predicate decides whether a node is yielded by a FilteredView.
type Predicate func(h types.NodeHandle, flags uint32) bool

// FilteredView lazily yields the non-root nodes accepted by a predicate,
// in pre-order. It is single-pass.
type FilteredView struct {
	src     Source
	flags   uint32
	pred    Predicate
	version int

	next int
	cur  types.NodeHandle
	done bool
	err  error
}

// NewFilteredView creates a filtered view over src.
func NewFilteredView(src Source, flags uint32, pred Predicate) *FilteredView {
	return &FilteredView{src: src, flags: flags, pred: pred, version: src.Version(), next: 1}
}

// Version returns the captured version.
func (f *FilteredView) Version() int { return f.version }

// Next advances to the next accepted node.
func (f *FilteredView) Next() bool {
	if f.done {
		return false
	}
	for {
		if cur := f.src.Version(); cur != f.version {
			f.err = staleErr(f.version, cur)
			break
		}
		if f.next >= f.src.Len() {
			break
		}
		e, err := f.src.At(f.next)
		if err != nil {
			f.err = err
			break
		}
		f.next++
		if f.pred == nil || f.pred(e.Node, f.flags) {
			f.cur = e.Node
			return true
		}
	}
	f.done = true
	f.cur = types.Null
	return false
}

// Node returns the current node. Like ChildrenView.Node it returns Null
// once the source has moved on.
func (f *FilteredView) Node() types.NodeHandle {
	if f.done {
		return types.Null
	}
	if cur := f.src.Version(); cur != f.version {
		f.err = staleErr(f.version, cur)
		f.done = true
		f.cur = types.Null
	}
	return f.cur
}

// Err returns the error that ended the iteration, if any.
func (f *FilteredView) Err() error { return f.err }

// Collect drains the view.
func (f *FilteredView) Collect() ([]types.NodeHandle, error) {
	var out []types.NodeHandle
	for f.Next() {
		n := f.Node()
		if n.IsNull() {
			break
		}
		out = append(out, n)
	}
	return out, f.Err()
}
