package types

import (
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindArgument     ErrKind = iota + 1 // invalid or null input
	ErrKindIndexRange                      // index outside valid bounds
	ErrKindKeyNotFound                     // map lookup of an absent key
	ErrKindDuplicateKey                    // add of a key whose slot is occupied
	ErrKindNodeNotFound                    // handle absent from the flattened tree
	ErrKindStaleView                       // version mismatch on a view/indexer/enumerator
	ErrKindClosed                          // operation on a released structure
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindArgument:
		return "argument"
	case ErrKindIndexRange:
		return "index out of range"
	case ErrKindKeyNotFound:
		return "key not found"
	case ErrKindDuplicateKey:
		return "duplicate key"
	case ErrKindNodeNotFound:
		return "node not found"
	case ErrKindStaleView:
		return "stale view"
	case ErrKindClosed:
		return "closed"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so detailed errors
// match the package sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Errorf builds a detailed error of the given kind.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrKind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0
		}
		err = u.Unwrap()
	}
	return 0
}

// Sentinels for errors.Is checks.
var (
	// ErrArgument indicates an invalid or null input.
	ErrArgument = &Error{Kind: ErrKindArgument, Msg: "invalid argument"}
	// ErrIndexOutOfRange indicates an index outside the valid bounds.
	ErrIndexOutOfRange = &Error{Kind: ErrKindIndexRange, Msg: "index out of range"}
	// ErrKeyNotFound indicates a lookup of a key that is not present.
	ErrKeyNotFound = &Error{Kind: ErrKindKeyNotFound, Msg: "key not found"}
	// ErrDuplicateKey indicates an add whose slot already holds a value.
	ErrDuplicateKey = &Error{Kind: ErrKindDuplicateKey, Msg: "duplicate key"}
	// ErrNodeNotFound indicates a handle absent from the flattened tree.
	ErrNodeNotFound = &Error{Kind: ErrKindNodeNotFound, Msg: "node not found"}
	// ErrStaleView indicates the owner's version moved after the view was built.
	ErrStaleView = &Error{Kind: ErrKindStaleView, Msg: "stale view"}
	// ErrClosed indicates use of a structure after its memory was released.
	ErrClosed = &Error{Kind: ErrKindClosed, Msg: "use of closed structure"}
)

// -----------------------------------------------------------------------------
// Core Identifiers
// -----------------------------------------------------------------------------

// NodeHandle is a generational node identity. ID is a dense slot index
// starting at 1; Version disambiguates reuse of the slot after removal.
type NodeHandle struct {
	ID      int32
	Version int32
}

// Null is the reserved zero handle.
var Null = NodeHandle{}

// MakeHandle builds a handle from its parts.
func MakeHandle(id, version int32) NodeHandle {
	return NodeHandle{ID: id, Version: version}
}

// IsNull reports whether h is the reserved null handle (ID 0).
func (h NodeHandle) IsNull() bool { return h.ID == 0 }

// Slot returns the direct-address slot of h (ID-1). Null maps to -1.
func (h NodeHandle) Slot() int { return int(h.ID) - 1 }

func (h NodeHandle) String() string {
	if h.IsNull() {
		return "#null"
	}
	return fmt.Sprintf("#%d.%d", h.ID, h.Version)
}

// FlattenedNode is one entry of the pre-order flattened tree.
//
// NextSiblingOffset is the index delta from this entry to its next sibling,
// or <= 0 when the entry is the last child of its parent.
type FlattenedNode struct {
	Node              NodeHandle
	ChildrenCount     int32
	NextSiblingOffset int32
}

// NodeType tags a node with the kind used to select its handler.
type NodeType uint16

const (
	NodeNone NodeType = 0
	NodeRoot NodeType = 1
	// NodeUser is the first tag free for callers.
	NodeUser NodeType = 16
)

// PropertyID names an externally stored node property.
type PropertyID uint32

// PropName is the reserved string property holding a node's display name.
const PropName PropertyID = 1

// Versioned is implemented by owners whose views must detect mutation.
type Versioned interface {
	Version() int
}
