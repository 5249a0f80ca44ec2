// Package printer renders a tree as indented text or JSON.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/flat"
)

const (
	DefaultIndentSize = 2
	DefaultMaxDepth   = 0

	// UnnamedSymbol is printed for nodes without a name.
	UnnamedSymbol = "(unnamed)"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs one indented line per node.
	FormatText Format = "text"

	// FormatJSON outputs a nested JSON document.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth limits the printed depth below the start node (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowTypes includes the node type.
	// Default: false
	ShowTypes bool

	// ShowHandles includes the node handle.
	// Default: false
	ShowHandles bool

	// ShowCounts includes the number of direct children.
	// Default: false
	ShowCounts bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		IndentSize: DefaultIndentSize,
		MaxDepth:   DefaultMaxDepth,
	}
}

// Reader is what the printer needs from a tree.
type Reader interface {
	flat.Source
	Root() types.NodeHandle
	Name(h types.NodeHandle) (string, error)
	Type(h types.NodeHandle) (types.NodeType, error)
	Children(h types.NodeHandle) *flat.ChildrenView
}

// Printer handles formatted output of a tree.
type Printer struct {
	opts   Options
	writer io.Writer
	reader Reader
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(t, os.Stdout, printer.DefaultOptions())
//	p.PrintTree(t.Root())
func New(r Reader, w io.Writer, opts Options) *Printer {
	if opts.IndentSize < 0 {
		opts.IndentSize = 0
	}
	return &Printer{reader: r, writer: w, opts: opts}
}

// PrintTree prints h and its descendants.
func (p *Printer) PrintTree(h types.NodeHandle) error {
	if !p.reader.Contains(h) {
		return types.Errorf(types.ErrKindNodeNotFound, "printer: node %v not in tree", h)
	}
	switch p.opts.Format {
	case FormatJSON:
		return p.printTreeJSON(h)
	case FormatText:
		return p.printTreeText(h)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// PrintAll prints the whole tree.
func (p *Printer) PrintAll() error {
	return p.PrintTree(p.reader.Root())
}

func (p *Printer) name(h types.NodeHandle) (string, error) {
	name, err := p.reader.Name(h)
	if err != nil {
		return "", err
	}
	if name == "" {
		if h == p.reader.Root() {
			return "/", nil
		}
		return UnnamedSymbol, nil
	}
	return name, nil
}
