package children

import (
	"slices"

	"github.com/joshuapare/nodetree/pkg/types"
)

// View is a read-only accessor over a List snapshot.
//
// Every call compares the owner's version with the one captured by NewView
// and fails with an ErrKindStaleView error once the owner has moved on.
type View struct {
	list    List
	owner   types.Versioned
	version int
}

// NewView captures a copy of l and the owner's current version. Later
// edits to l, committed or not, do not show through the view.
func NewView(l *List, owner types.Versioned) View {
	list := *l
	list.heap = slices.Clone(l.heap)
	return View{list: list, owner: owner, version: owner.Version()}
}

// Version returns the owner version the view was built at.
func (v View) Version() int { return v.version }

func (v View) check() error {
	if v.owner == nil {
		return types.Errorf(types.ErrKindArgument, "children: view has no owner")
	}
	if cur := v.owner.Version(); cur != v.version {
		return types.Errorf(types.ErrKindStaleView, "children: view built at version %d, owner at %d", v.version, cur)
	}
	return nil
}

// Count returns the number of children.
func (v View) Count() (int, error) {
	if err := v.check(); err != nil {
		return 0, err
	}
	return v.list.Len(), nil
}

// At returns the i-th child.
func (v View) At(i int) (types.NodeHandle, error) {
	if err := v.check(); err != nil {
		return types.Null, err
	}
	return v.list.At(i)
}

// Storage returns the storage mode of the captured list.
func (v View) Storage() (Storage, error) {
	if err := v.check(); err != nil {
		return Inline, err
	}
	return v.list.storage, nil
}

// AppendTo appends every child to dst.
func (v View) AppendTo(dst []types.NodeHandle) ([]types.NodeHandle, error) {
	if err := v.check(); err != nil {
		return dst, err
	}
	return v.list.AppendTo(dst), nil
}
