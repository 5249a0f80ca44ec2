package tree

import (
	"github.com/joshuapare/nodetree/internal/buf"
	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/dirty"
)

// Begin opens a batch. Calling Begin inside a batch is a no-op.
func (t *Tree) Begin() error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.txm.Begin()
	return nil
}

// Commit closes the batch: handlers integrate the recorded changes, the
// flattened array is rebuilt and the version advances once. A batch that
// changed nothing leaves the version alone.
func (t *Tree) Commit() error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	return t.commit()
}

// InBatch reports whether a batch is open.
func (t *Tree) InBatch() bool { return t.txm.InTransaction() }

// Update runs fn inside a batch and commits it, even when fn fails.
// Inside an open batch fn simply joins it.
func (t *Tree) Update(fn func() error) error {
	if t.InBatch() {
		return fn()
	}
	if err := t.Begin(); err != nil {
		return err
	}
	err := fn()
	return joinErr(err, t.Commit())
}

func (t *Tree) commit() error {
	if t.committing {
		return nil
	}
	t.committing = true
	defer func() { t.committing = false }()

	return t.txm.Commit(func(dt *dirty.Tracker) error {
		var err error
		for _, typ := range dt.Types() {
			h := t.handlers.Lookup(typ)
			if !h.ChangesPending(t) {
				continue
			}
			if ierr := h.IntegrateChanges(t, dt.NodesOf(typ)); ierr != nil {
				t.log.Warn("handler integration failed", "tree", t.id, "type", typ, "error", ierr)
				err = joinErr(err, ierr)
			}
		}
		if rerr := t.flat.Rebuild(t.root, t.childrenOf); rerr != nil {
			return joinErr(err, rerr)
		}
		t.log.Debug("batch committed",
			"tree", t.id,
			"version", t.txm.Version()+1,
			"nodes", t.live,
			"dirty", dt.Len(),
		)
		return err
	})
}

// mutate runs fn as part of the open batch, or as its own batch when none
// is open. Mutations made by handlers during a commit join that commit.
func (t *Tree) mutate(fn func() error) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	implicit := !t.txm.InTransaction() && !t.committing
	if implicit {
		t.txm.Begin()
	}
	err := fn()
	if implicit {
		err = joinErr(err, t.commit())
	}
	return err
}

// CreateNode appends a new node of type typ to the children of parent.
func (t *Tree) CreateNode(parent types.NodeHandle, typ types.NodeType) (types.NodeHandle, error) {
	return t.InsertNode(parent, -1, typ)
}

// InsertNode creates a node of type typ at position at among the children
// of parent. A negative at appends.
func (t *Tree) InsertNode(parent types.NodeHandle, at int, typ types.NodeType) (types.NodeHandle, error) {
	var h types.NodeHandle
	err := t.mutate(func() error {
		if typ == types.NodeNone || typ == types.NodeRoot {
			return types.Errorf(types.ErrKindArgument, "tree: cannot create a node of type %d", typ)
		}
		pr, err := t.rec(parent)
		if err != nil {
			return err
		}
		at, err = t.position(pr, at)
		if err != nil {
			return err
		}
		if err := t.accept(parent, pr.typ, typ); err != nil {
			return err
		}

		h, err = t.alloc()
		if err != nil {
			return err
		}
		if err := t.nodes.Upsert(h, &record{parent: parent, typ: typ}); err != nil {
			t.release(h)
			return err
		}
		if err := pr.children.Insert(at, h); err != nil {
			_, _ = t.nodes.Remove(h)
			t.release(h)
			return err
		}
		t.dt.Add(h, typ, dirty.Created)
		t.dt.Add(parent, pr.typ, dirty.Reordered)
		return nil
	})
	if err != nil {
		return types.Null, err
	}
	return h, nil
}

// position resolves an insertion index into the children of r.
func (t *Tree) position(r *record, at int) (int, error) {
	n := r.children.Len()
	if at < 0 {
		return n, nil
	}
	if at > n {
		return 0, buf.CheckIndex(at, n+1)
	}
	return at, nil
}

// accept consults the handlers of both ends of a new parent/child edge.
func (t *Tree) accept(parent types.NodeHandle, parentType, childType types.NodeType) error {
	if !t.handlers.Lookup(childType).AcceptParent(t, childType, parent) {
		return types.Errorf(types.ErrKindArgument, "tree: type %d refuses parent %v", childType, parent)
	}
	if !t.handlers.Lookup(parentType).AcceptChild(t, parent, childType) {
		return types.Errorf(types.ErrKindArgument, "tree: %v refuses a child of type %d", parent, childType)
	}
	return nil
}

// RemoveNode removes h and its whole subtree. The root cannot be removed.
func (t *Tree) RemoveNode(h types.NodeHandle) error {
	return t.mutate(func() error {
		r, err := t.rec(h)
		if err != nil {
			return err
		}
		if h == t.root {
			return types.Errorf(types.ErrKindArgument, "tree: cannot remove the root")
		}
		pr, err := t.rec(r.parent)
		if err != nil {
			return err
		}
		pr.children.Remove(h)
		t.dt.Add(r.parent, pr.typ, dirty.Reordered)

		stack := []types.NodeHandle{h}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			nr, err := t.nodes.Get(n)
			if err != nil {
				return err
			}
			stack = nr.children.AppendTo(stack)
			t.dt.Add(n, nr.typ, dirty.Removed)
			t.clearProperties(n)
			if _, err := t.nodes.Remove(n); err != nil {
				return err
			}
			t.release(n)
		}
		return nil
	})
}

// MoveNode detaches h and inserts it at position at among the children of
// newParent. A negative at appends. Moving a node under itself or one of
// its descendants fails with ErrArgument.
func (t *Tree) MoveNode(h, newParent types.NodeHandle, at int) error {
	return t.mutate(func() error {
		r, err := t.rec(h)
		if err != nil {
			return err
		}
		if h == t.root {
			return types.Errorf(types.ErrKindArgument, "tree: cannot move the root")
		}
		np, err := t.rec(newParent)
		if err != nil {
			return err
		}
		for a := newParent; !a.IsNull(); {
			if a == h {
				return types.Errorf(types.ErrKindArgument, "tree: moving %v under %v creates a cycle", h, newParent)
			}
			ar, err := t.nodes.Get(a)
			if err != nil {
				return err
			}
			a = ar.parent
		}
		if err := t.accept(newParent, np.typ, r.typ); err != nil {
			return err
		}

		op, err := t.nodes.Get(r.parent)
		if err != nil {
			return err
		}
		old := op.children.IndexOf(h)
		if _, err := op.children.RemoveAt(old); err != nil {
			return err
		}
		pos, err := t.position(np, at)
		if err == nil {
			err = np.children.Insert(pos, h)
		}
		if err != nil {
			// put it back where it was
			_ = op.children.Insert(old, h)
			return err
		}

		change := dirty.Moved
		if r.parent == newParent {
			change = dirty.Reordered
		} else {
			t.dt.Add(r.parent, op.typ, dirty.Reordered)
		}
		r.parent = newParent
		t.dt.Add(h, r.typ, change)
		t.dt.Add(newParent, np.typ, dirty.Reordered)
		return nil
	})
}
