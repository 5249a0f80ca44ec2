package handler

import (
	"slices"

	"github.com/joshuapare/nodetree/pkg/types"
)

// Registry maps node types to handlers.
type Registry struct {
	byType   map[types.NodeType]Handler
	fallback Handler
}

// NewRegistry creates a registry whose unregistered types resolve to Base.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[types.NodeType]Handler), fallback: Base{}}
}

// Register binds h to typ, replacing any previous handler.
func (r *Registry) Register(typ types.NodeType, h Handler) error {
	if typ == types.NodeNone {
		return types.Errorf(types.ErrKindArgument, "handler: cannot register NodeNone")
	}
	if h == nil {
		return types.Errorf(types.ErrKindArgument, "handler: nil handler for type %d", typ)
	}
	r.byType[typ] = h
	return nil
}

// Unregister removes the handler of typ.
func (r *Registry) Unregister(typ types.NodeType) {
	delete(r.byType, typ)
}

// SetFallback replaces the handler used for unregistered types.
func (r *Registry) SetFallback(h Handler) {
	if h == nil {
		h = Base{}
	}
	r.fallback = h
}

// Lookup returns the handler of typ, or the fallback.
func (r *Registry) Lookup(typ types.NodeType) Handler {
	if r != nil {
		if h, ok := r.byType[typ]; ok {
			return h
		}
		return r.fallback
	}
	return Base{}
}

// Types returns the registered types in ascending order.
func (r *Registry) Types() []types.NodeType {
	if r == nil {
		return nil
	}
	out := make([]types.NodeType, 0, len(r.byType))
	for typ := range r.byType {
		out = append(out, typ)
	}
	slices.Sort(out)
	return out
}

// Handlers returns the fallback followed by the handler of every registered
// type, in type order. A Base fallback is left out since its hooks do
// nothing.
func (r *Registry) Handlers() []Handler {
	if r == nil {
		return nil
	}
	out := make([]Handler, 0, len(r.byType)+1)
	if _, ok := r.fallback.(Base); !ok {
		out = append(out, r.fallback)
	}
	for _, typ := range r.Types() {
		out = append(out, r.byType[typ])
	}
	return out
}
