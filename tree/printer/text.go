package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/walker"
)

func (p *Printer) printTreeText(h types.NodeHandle) error {
	return walker.WalkSubtree(p.reader, h, func(e types.FlattenedNode, depth int) error {
		if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
			return walker.ErrSkipChildren
		}
		line, err := p.textLine(e)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.writer, "%s%s\n", strings.Repeat(" ", depth*p.opts.IndentSize), line)
		return err
	})
}

func (p *Printer) textLine(e types.FlattenedNode) (string, error) {
	name, err := p.name(e.Node)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(name)
	if p.opts.ShowTypes {
		typ, err := p.reader.Type(e.Node)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, " [type %d]", typ)
	}
	if p.opts.ShowCounts {
		fmt.Fprintf(&sb, " (%d)", e.ChildrenCount)
	}
	if p.opts.ShowHandles {
		fmt.Fprintf(&sb, " %v", e.Node)
	}
	return sb.String(), nil
}
