// Package handler defines the per-node-type plugin hooks of a tree.
//
// A Handler is selected by the NodeType of the node being mutated or
// searched. Types with no registered handler use Base, whose hooks accept
// every structure change and match nodes by name.
package handler

import (
	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/flat"
)

// Structure is the read surface a tree exposes to its handlers. The
// flattened queries reflect the last committed batch; Parent, Type and Name
// reflect live state.
type Structure interface {
	flat.Source
	Root() types.NodeHandle
	Parent(h types.NodeHandle) (types.NodeHandle, error)
	Type(h types.NodeHandle) (types.NodeType, error)
	Name(h types.NodeHandle) (string, error)
	Children(h types.NodeHandle) *flat.ChildrenView
}

// Handler is the capability set of one node type.
type Handler interface {
	// ChangesPending reports whether IntegrateChanges has work to do.
	ChangesPending(s Structure) bool
	// IntegrateChanges is called on commit with the nodes of this type
	// touched by the batch. Removed nodes are included and are no longer
	// live.
	IntegrateChanges(s Structure, nodes []types.NodeHandle) error

	// AcceptParent reports whether a node of type child may be placed
	// under parent.
	AcceptParent(s Structure, child types.NodeType, parent types.NodeHandle) bool
	// AcceptChild reports whether parent takes a child of type child.
	AcceptChild(s Structure, parent types.NodeHandle, child types.NodeType) bool

	SearchBegin(s Structure, q *Query) error
	SearchMatch(s Structure, h types.NodeHandle, q *Query) bool
	SearchEnd(s Structure, q *Query)
}

// Base implements every hook with the default behavior. Embed it to
// override only some hooks.
type Base struct{}

var _ Handler = Base{}

func (Base) ChangesPending(Structure) bool { return false }

func (Base) IntegrateChanges(Structure, []types.NodeHandle) error { return nil }

func (Base) AcceptParent(Structure, types.NodeType, types.NodeHandle) bool { return true }

func (Base) AcceptChild(Structure, types.NodeHandle, types.NodeType) bool { return true }

func (Base) SearchBegin(Structure, *Query) error { return nil }

// SearchMatch matches the node name against the query text.
func (Base) SearchMatch(s Structure, h types.NodeHandle, q *Query) bool {
	name, err := s.Name(h)
	if err != nil {
		return false
	}
	return q.MatchName(name)
}

func (Base) SearchEnd(Structure, *Query) {}
