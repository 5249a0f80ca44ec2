package tree

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/joshuapare/nodetree/internal/arena"
	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/children"
	"github.com/joshuapare/nodetree/tree/dirty"
	"github.com/joshuapare/nodetree/tree/flat"
	"github.com/joshuapare/nodetree/tree/handler"
	"github.com/joshuapare/nodetree/tree/props"
	"github.com/joshuapare/nodetree/tree/tx"
)

// record is the structural state of one live node.
type record struct {
	parent   types.NodeHandle
	typ      types.NodeType
	children children.List
}

// Tree is a hierarchy of typed nodes with a flattened pre-order index.
type Tree struct {
	id       uuid.UUID
	opts     *Options
	log      *slog.Logger
	handlers *handler.Registry

	// generational arena
	versions []int32 // current version of each id, by slot
	free     []int32 // released ids, reused LIFO
	live     int

	root  types.NodeHandle
	nodes *props.Map[*record]

	strs  map[types.PropertyID]*props.Map[string]
	raws  map[types.PropertyID]*props.Map[arena.Span]
	bytes *arena.Arena

	flat       *flat.Array
	dt         *dirty.Tracker
	txm        *tx.Manager
	committing bool
	closed     bool
}

var _ handler.Structure = (*Tree)(nil)

// New creates a tree holding only its root node. nil opts uses
// DefaultOptions.
func New(opts *Options) (*Tree, error) {
	o := opts.normalize()
	nodes, err := props.NewMap[*record](o.InitialCapacity, o.Growth)
	if err != nil {
		return nil, fmt.Errorf("tree: node store: %w", err)
	}
	t := &Tree{
		id:       uuid.New(),
		opts:     o,
		log:      o.Logger,
		handlers: o.Handlers,
		versions: make([]int32, 0, o.InitialCapacity),
		nodes:    nodes,
		strs:     make(map[types.PropertyID]*props.Map[string]),
		raws:     make(map[types.PropertyID]*props.Map[arena.Span]),
		bytes:    arena.New(o.ArenaChunkSize),
		dt:       dirty.NewTracker(),
	}
	t.txm = tx.NewManager(t.dt)
	t.flat, err = flat.New(t, o.InitialCapacity)
	if err != nil {
		return nil, fmt.Errorf("tree: flattened index: %w", err)
	}

	root, err := t.alloc()
	if err != nil {
		return nil, err
	}
	if err := t.nodes.Upsert(root, &record{typ: types.NodeRoot}); err != nil {
		return nil, err
	}
	t.root = root
	if err := t.flat.Rebuild(root, t.childrenOf); err != nil {
		return nil, err
	}
	t.log.Debug("tree created", "tree", t.id, "root", root)
	return t, nil
}

// ID returns the instance identity used in logs and dumps.
func (t *Tree) ID() uuid.UUID { return t.id }

// Root returns the root node.
func (t *Tree) Root() types.NodeHandle { return t.root }

// Version returns the structure version.
func (t *Tree) Version() int { return t.txm.Version() }

// NodeCount returns the number of live nodes, root included.
func (t *Tree) NodeCount() int { return t.live }

// Close releases the stores and the property arena. Later calls fail with
// ErrClosed. Close is idempotent.
func (t *Tree) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.flat.Release()
	t.nodes.Release()
	for _, m := range t.strs {
		m.Release()
	}
	for _, m := range t.raws {
		m.Release()
	}
	t.versions = nil
	t.free = nil
	t.live = 0
	t.dt.Reset()
	err := t.bytes.Close()
	t.log.Debug("tree closed", "tree", t.id)
	return err
}

func (t *Tree) checkOpen() error {
	if t.closed {
		return types.ErrClosed
	}
	return nil
}

// alloc mints a handle, reusing the most recently released id.
func (t *Tree) alloc() (types.NodeHandle, error) {
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		v := t.versions[id-1]
		if v == math.MaxInt32 {
			v = 0
		}
		v++
		t.versions[id-1] = v
		t.live++
		return types.MakeHandle(id, v), nil
	}
	if len(t.versions) >= math.MaxInt32 {
		return types.Null, types.Errorf(types.ErrKindArgument, "tree: node ids exhausted")
	}
	t.versions = append(t.versions, 1)
	t.live++
	return types.MakeHandle(int32(len(t.versions)), 1), nil
}

// release returns the id of h to the free stack.
func (t *Tree) release(h types.NodeHandle) {
	t.free = append(t.free, h.ID)
	t.live--
}

// isLive reports whether h names a node that exists now.
func (t *Tree) isLive(h types.NodeHandle) bool {
	s := h.Slot()
	return s >= 0 && s < len(t.versions) && t.versions[s] == h.Version && t.nodes.Has(h)
}

// rec returns the record of a live node.
func (t *Tree) rec(h types.NodeHandle) (*record, error) {
	if err := t.checkOpen(); err != nil {
		return nil, err
	}
	if !t.isLive(h) {
		return nil, types.Errorf(types.ErrKindNodeNotFound, "tree: node %v does not exist", h)
	}
	r, err := t.nodes.Get(h)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Exists reports whether h names a live node, including nodes created in
// the open batch.
func (t *Tree) Exists(h types.NodeHandle) bool {
	return !t.closed && t.isLive(h)
}

// Parent returns the parent of h. The root has the Null parent.
func (t *Tree) Parent(h types.NodeHandle) (types.NodeHandle, error) {
	r, err := t.rec(h)
	if err != nil {
		return types.Null, err
	}
	return r.parent, nil
}

// Type returns the node type of h.
func (t *Tree) Type(h types.NodeHandle) (types.NodeType, error) {
	r, err := t.rec(h)
	if err != nil {
		return types.NodeNone, err
	}
	return r.typ, nil
}

// ChildList returns a version-checked view of the live child list of h.
func (t *Tree) ChildList(h types.NodeHandle) (children.View, error) {
	r, err := t.rec(h)
	if err != nil {
		return children.View{}, err
	}
	return children.NewView(&r.children, t), nil
}

// Depth returns the number of edges from the root to h.
func (t *Tree) Depth(h types.NodeHandle) (int, error) {
	d := 0
	for {
		p, err := t.Parent(h)
		if err != nil {
			return 0, err
		}
		if p.IsNull() {
			return d, nil
		}
		d++
		h = p
	}
}

func (t *Tree) childrenOf(h types.NodeHandle, dst []types.NodeHandle) ([]types.NodeHandle, error) {
	r, err := t.nodes.Get(h)
	if err != nil {
		return dst, fmt.Errorf("tree: child list of %v: %w", h, err)
	}
	return r.children.AppendTo(dst), nil
}

// ArenaStats reports the raw property arena usage.
func (t *Tree) ArenaStats() arena.Stats { return t.bytes.Stats() }

// joinErr keeps the first error as the primary cause.
func joinErr(err, next error) error {
	if err == nil {
		return next
	}
	if next == nil {
		return err
	}
	return errors.Join(err, next)
}
