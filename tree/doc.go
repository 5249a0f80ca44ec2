// Package tree implements the owning aggregate of the flattened hierarchy.
//
// A Tree keeps three representations in step:
//
//   - a generational node arena: handles are (id, version) pairs, ids are
//     dense from 1, a removed id is reused with its version bumped
//   - per-node records (parent, type, small-vector child list) and
//     properties in direct-addressed props.Maps
//   - the flattened pre-order array (tree/flat) that every view reads
//
// # Batches
//
// Structural mutations (create, insert, move, remove) are grouped into
// batches. Begin opens one, Commit closes it; outside an explicit batch each
// mutation is its own batch. On commit the node-type handlers integrate the
// changes, the flattened array is rebuilt from the child lists, and the
// version advances exactly once. Views capture the version and fail with
// ErrStaleView after the next commit.
//
// Between Begin and Commit the flattened queries (IndexOf, At, Children,
// Filter, Search) keep answering from the last committed array, while
// Parent, Type and ChildList report live state.
//
// Property writes are not structural and do not move the version.
//
// # Example
//
//	t, err := tree.New(nil)
//	if err != nil {
//		return err
//	}
//	defer t.Close()
//
//	room, _ := t.CreateNode(t.Root(), types.NodeUser)
//	_ = t.SetName(room, "kitchen")
//
//	v := t.Children(t.Root())
//	for v.Next() {
//		name, _ := t.Name(v.Node())
//		fmt.Println(name)
//	}
//
// A Tree is NOT thread-safe. Views detect reentrant mutation on the same
// goroutine; they do not make concurrent use safe.
package tree
