// Package outline converts between trees and a nested JSON outline:
//
//	{"name": "house", "children": [
//	  {"name": "ground", "type": 17, "children": [{"name": "kitchen"}]}
//	]}
//
// The top-level object describes the root. A missing type means
// types.NodeUser.
package outline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree"
)

// Node is one outline entry.
type Node struct {
	Name     string         `json:"name,omitempty"`
	Type     types.NodeType `json:"type,omitempty"`
	Children []Node         `json:"children,omitempty"`
}

// Decode reads an outline document.
func Decode(r io.Reader) (Node, error) {
	var n Node
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&n); err != nil {
		return Node{}, fmt.Errorf("outline: decode: %w", err)
	}
	return n, nil
}

// Encode writes n as indented JSON.
func Encode(w io.Writer, n Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(n)
}

// Load decodes an outline and builds a tree from it. nil opts uses
// tree.DefaultOptions.
func Load(r io.Reader, opts *tree.Options) (*tree.Tree, error) {
	n, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Build(n, opts)
}

// Build creates a tree from n in a single batch.
func Build(n Node, opts *tree.Options) (*tree.Tree, error) {
	t, err := tree.New(opts)
	if err != nil {
		return nil, err
	}
	if err := Append(t, t.Root(), n); err != nil {
		_ = t.Close()
		return nil, err
	}
	return t, nil
}

// Append names h after n and adds the children of n below it, in one batch.
func Append(t *tree.Tree, h types.NodeHandle, n Node) error {
	return t.Update(func() error {
		if n.Name != "" {
			if err := t.SetName(h, n.Name); err != nil {
				return err
			}
		}
		type pending struct {
			parent types.NodeHandle
			node   *Node
		}
		stack := make([]pending, 0, len(n.Children))
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, pending{h, &n.Children[i]})
		}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			typ := p.node.Type
			if typ == types.NodeNone {
				typ = types.NodeUser
			}
			c, err := t.CreateNode(p.parent, typ)
			if err != nil {
				return fmt.Errorf("outline: create %q: %w", p.node.Name, err)
			}
			if p.node.Name != "" {
				if err := t.SetName(c, p.node.Name); err != nil {
					return err
				}
			}
			for i := len(p.node.Children) - 1; i >= 0; i-- {
				stack = append(stack, pending{c, &p.node.Children[i]})
			}
		}
		return nil
	})
}

// Dump converts the committed tree into an outline.
func Dump(t *tree.Tree) (Node, error) {
	return DumpNode(t, t.Root())
}

// DumpNode converts h and its descendants into an outline.
func DumpNode(t *tree.Tree, h types.NodeHandle) (Node, error) {
	name, err := t.Name(h)
	if err != nil {
		return Node{}, err
	}
	n := Node{Name: name}
	if h != t.Root() {
		typ, err := t.Type(h)
		if err != nil {
			return Node{}, err
		}
		if typ != types.NodeUser {
			n.Type = typ
		}
	}
	v := t.Children(h)
	for v.Next() {
		c, err := DumpNode(t, v.Node())
		if err != nil {
			return Node{}, err
		}
		n.Children = append(n.Children, c)
	}
	return n, v.Err()
}

// Resolve finds the node at a slash-separated name path below the root.
// "" and "/" name the root. Names are compared exactly; the first matching
// sibling wins.
func Resolve(t *tree.Tree, path string) (types.NodeHandle, error) {
	h := t.Root()
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		next, err := child(t, h, part)
		if err != nil {
			return types.Null, err
		}
		if next.IsNull() {
			return types.Null, types.Errorf(types.ErrKindNodeNotFound, "outline: no node %q in %q", part, path)
		}
		h = next
	}
	return h, nil
}

func child(t *tree.Tree, parent types.NodeHandle, name string) (types.NodeHandle, error) {
	v := t.Children(parent)
	for v.Next() {
		n, err := t.Name(v.Node())
		if err != nil {
			return types.Null, err
		}
		if n == name {
			return v.Node(), nil
		}
	}
	return types.Null, v.Err()
}

// Path returns the slash-separated name path of h.
func Path(t *tree.Tree, h types.NodeHandle) (string, error) {
	var parts []string
	for h != t.Root() {
		name, err := t.Name(h)
		if err != nil {
			return "", err
		}
		parts = append(parts, name)
		if h, err = t.Parent(h); err != nil {
			return "", err
		}
	}
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(parts[i])
	}
	if sb.Len() == 0 {
		return "/", nil
	}
	return sb.String(), nil
}
