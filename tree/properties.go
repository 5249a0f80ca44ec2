package tree

import (
	"github.com/joshuapare/nodetree/internal/arena"
	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/props"
)

var _ props.Owner = (*Tree)(nil)

// stringStore returns the store of property id, creating it when create is set.
func (t *Tree) stringStore(id types.PropertyID, create bool) (*props.Map[string], error) {
	m, ok := t.strs[id]
	if ok || !create {
		return m, nil
	}
	m, err := props.NewMap[string](len(t.versions), t.opts.Growth)
	if err != nil {
		return nil, err
	}
	t.strs[id] = m
	return m, nil
}

func (t *Tree) rawStore(id types.PropertyID, create bool) (*props.Map[arena.Span], error) {
	m, ok := t.raws[id]
	if ok || !create {
		return m, nil
	}
	m, err := props.NewMap[arena.Span](len(t.versions), t.opts.Growth)
	if err != nil {
		return nil, err
	}
	t.raws[id] = m
	return m, nil
}

func (t *Tree) checkNode(h types.NodeHandle) error {
	_, err := t.rec(h)
	return err
}

func notSet(id types.PropertyID, h types.NodeHandle) error {
	return types.Errorf(types.ErrKindKeyNotFound, "tree: property %d not set on %v", id, h)
}

// GetPropertyString returns string property id of h.
func (t *Tree) GetPropertyString(id types.PropertyID, h types.NodeHandle) (string, error) {
	if err := t.checkNode(h); err != nil {
		return "", err
	}
	m, _ := t.stringStore(id, false)
	if m == nil || !m.Has(h) {
		return "", notSet(id, h)
	}
	return m.Get(h)
}

// SetPropertyString stores string property id of h.
func (t *Tree) SetPropertyString(id types.PropertyID, h types.NodeHandle, value string) error {
	if err := t.checkNode(h); err != nil {
		return err
	}
	m, err := t.stringStore(id, true)
	if err != nil {
		return err
	}
	return m.Upsert(h, value)
}

// GetPropertyRaw copies raw property id of h into dst and returns the
// stored size, which may exceed len(dst).
func (t *Tree) GetPropertyRaw(id types.PropertyID, h types.NodeHandle, dst []byte) (int, error) {
	if err := t.checkNode(h); err != nil {
		return 0, err
	}
	m, _ := t.rawStore(id, false)
	if m == nil || !m.Has(h) {
		return 0, notSet(id, h)
	}
	span, err := m.Get(h)
	if err != nil {
		return 0, err
	}
	b, err := t.bytes.Bytes(span)
	if err != nil {
		return 0, err
	}
	copy(dst, b)
	return len(b), nil
}

// SetPropertyRaw stores a copy of src as raw property id of h. A value no
// larger than the previous reservation reuses it.
func (t *Tree) SetPropertyRaw(id types.PropertyID, h types.NodeHandle, src []byte) error {
	if err := t.checkNode(h); err != nil {
		return err
	}
	m, err := t.rawStore(id, true)
	if err != nil {
		return err
	}
	var prev arena.Span
	if m.Has(h) {
		if prev, err = m.Get(h); err != nil {
			return err
		}
	}
	span, err := t.bytes.Write(prev, src)
	if err != nil {
		return err
	}
	return m.Upsert(h, span)
}

// ClearProperty removes property id of h, whichever flavor holds it.
func (t *Tree) ClearProperty(id types.PropertyID, h types.NodeHandle) error {
	if err := t.checkNode(h); err != nil {
		return err
	}
	t.clearProperty(id, h)
	return nil
}

func (t *Tree) clearProperty(id types.PropertyID, h types.NodeHandle) {
	if m := t.strs[id]; m != nil && m.Has(h) {
		_, _ = m.Remove(h)
	}
	if m := t.raws[id]; m != nil && m.Has(h) {
		if span, err := m.Get(h); err == nil {
			t.bytes.Free(span)
		}
		_, _ = m.Remove(h)
	}
}

// clearProperties drops every property of h.
func (t *Tree) clearProperties(h types.NodeHandle) {
	for id := range t.strs {
		t.clearProperty(id, h)
	}
	for id := range t.raws {
		t.clearProperty(id, h)
	}
}

// Name returns the name of h, or "" when it has none.
func (t *Tree) Name(h types.NodeHandle) (string, error) {
	s, err := t.GetPropertyString(types.PropName, h)
	if types.KindOf(err) == types.ErrKindKeyNotFound {
		return "", nil
	}
	return s, err
}

// SetName sets the name of h.
func (t *Tree) SetName(h types.NodeHandle, name string) error {
	return t.SetPropertyString(types.PropName, h, name)
}

// StringProperty binds string property id of this tree.
func (t *Tree) StringProperty(id types.PropertyID) props.StringProperty {
	return props.NewString(t, id)
}

// RawProperty binds raw property id of this tree.
func (t *Tree) RawProperty(id types.PropertyID) props.RawProperty {
	return props.NewRaw(t, id)
}
