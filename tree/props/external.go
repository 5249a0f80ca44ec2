package props

import (
	"github.com/joshuapare/nodetree/pkg/types"
)

// Owner stores variable-length properties on behalf of its nodes.
type Owner interface {
	GetPropertyString(id types.PropertyID, h types.NodeHandle) (string, error)
	SetPropertyString(id types.PropertyID, h types.NodeHandle, value string) error
	ClearProperty(id types.PropertyID, h types.NodeHandle) error
	// GetPropertyRaw copies up to len(dst) bytes and returns the stored size.
	GetPropertyRaw(id types.PropertyID, h types.NodeHandle, dst []byte) (int, error)
	SetPropertyRaw(id types.PropertyID, h types.NodeHandle, src []byte) error
}

// StringProperty is a string-valued property held by an Owner.
type StringProperty struct {
	owner Owner
	id    types.PropertyID
}

// NewString binds property id of owner.
func NewString(owner Owner, id types.PropertyID) StringProperty {
	return StringProperty{owner: owner, id: id}
}

// ID returns the property id.
func (p StringProperty) ID() types.PropertyID { return p.id }

// Get returns the value of h.
func (p StringProperty) Get(h types.NodeHandle) (string, error) {
	return p.owner.GetPropertyString(p.id, h)
}

// Set stores value for h.
func (p StringProperty) Set(h types.NodeHandle, value string) error {
	return p.owner.SetPropertyString(p.id, h, value)
}

// Clear removes the value of h.
func (p StringProperty) Clear(h types.NodeHandle) error {
	return p.owner.ClearProperty(p.id, h)
}

// RawProperty is a byte-valued property held by an Owner.
type RawProperty struct {
	owner Owner
	id    types.PropertyID
}

// NewRaw binds property id of owner.
func NewRaw(owner Owner, id types.PropertyID) RawProperty {
	return RawProperty{owner: owner, id: id}
}

// ID returns the property id.
func (p RawProperty) ID() types.PropertyID { return p.id }

// Read copies the value of h into dst and returns the stored size.
func (p RawProperty) Read(h types.NodeHandle, dst []byte) (int, error) {
	return p.owner.GetPropertyRaw(p.id, h, dst)
}

// Bytes returns a copy of the value of h.
func (p RawProperty) Bytes(h types.NodeHandle) ([]byte, error) {
	n, err := p.owner.GetPropertyRaw(p.id, h, nil)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if _, err := p.owner.GetPropertyRaw(p.id, h, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Set stores src for h.
func (p RawProperty) Set(h types.NodeHandle, src []byte) error {
	return p.owner.SetPropertyRaw(p.id, h, src)
}

// Clear removes the value of h.
func (p RawProperty) Clear(h types.NodeHandle) error {
	return p.owner.ClearProperty(p.id, h)
}
