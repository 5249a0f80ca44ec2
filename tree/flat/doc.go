// Package flat stores a tree as one contiguous pre-order array.
//
// # Layout
//
// Entry 0 is the root. Every entry records its direct children count and,
// for children, the index delta to the next sibling:
//
//	idx  node  children  nextSibling
//	0    R     2         0
//	1    A     1         2     <- R's first child, next sibling at 1+2
//	2    A1    0         0     <- A's only (last) child
//	3    B     0         0     <- R's last child
//
// An entry with children is always followed by its first child, so the
// children of a node are found by seeding at IndexOf(node)+1 and hopping
// NextSiblingOffset ChildrenCount-1 times. That costs O(children), not
// O(subtree). IndexOf is O(1) through a handle-to-position props.Map.
//
// # Versioning
//
// An Array does not own a version; it reports the version of the aggregate
// that rebuilds it. Snapshot, ChildrenView and FilteredView capture that
// version when they are built and fail with an ErrKindStaleView error on the
// first access after it moves.
package flat
