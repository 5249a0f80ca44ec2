package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/nodetree/pkg/types"
)

// jsonNode represents a node in JSON format.
type jsonNode struct {
	Name     string     `json:"name"`
	Type     *uint16    `json:"type,omitempty"`
	Handle   string     `json:"handle,omitempty"`
	Count    *int32     `json:"children_count,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

func (p *Printer) printTreeJSON(h types.NodeHandle) error {
	node, err := p.buildJSONTree(h, 0)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

// buildJSONTree builds the JSON structure of h recursively.
func (p *Printer) buildJSONTree(h types.NodeHandle, depth int) (jsonNode, error) {
	name, err := p.reader.Name(h)
	if err != nil {
		return jsonNode{}, err
	}
	node := jsonNode{Name: name}
	if p.opts.ShowTypes {
		typ, err := p.reader.Type(h)
		if err != nil {
			return jsonNode{}, err
		}
		t := uint16(typ)
		node.Type = &t
	}
	if p.opts.ShowHandles {
		node.Handle = h.String()
	}
	if p.opts.ShowCounts {
		n, err := p.reader.ChildrenCount(h)
		if err != nil {
			return jsonNode{}, err
		}
		c := int32(n)
		node.Count = &c
	}

	if p.opts.MaxDepth > 0 && depth+1 >= p.opts.MaxDepth {
		return node, nil
	}
	v := p.reader.Children(h)
	for v.Next() {
		child, err := p.buildJSONTree(v.Node(), depth+1)
		if err != nil {
			return jsonNode{}, err
		}
		node.Children = append(node.Children, child)
	}
	return node, v.Err()
}
