package main

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree"
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	SearchMode
)

// Layout constants
const (
	headerHeight = 2
	statusHeight = 1
	paneChrome   = 2 // rounded border top and bottom
)

// item is one row of the listing: a direct child of the current node.
type item struct {
	node     types.NodeHandle
	name     string
	children int
}

// Model is the main application model
type Model struct {
	t      *tree.Tree
	source string
	keys   KeyMap

	// Listing of the current node
	cwd    types.NodeHandle
	items  []item
	cursor int
	offset int

	width  int
	height int

	inputMode InputMode
	input     textinput.Model

	// Search results in pre-order; n/N cycle through them
	matches  []types.NodeHandle
	matchIdx int

	showHelp      bool
	statusMessage string

	copyText func(string) error

	err error
}

// NewModel creates a new TUI model positioned at the root of t.
func NewModel(t *tree.Tree, source string) Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "name"

	m := Model{
		t:        t,
		source:   source,
		keys:     DefaultKeyMap(),
		cwd:      t.Root(),
		width:    80,
		height:   24,
		input:    in,
		copyText: clipboard.WriteAll,
	}
	m.err = m.load()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// load lists the children of the current node from the committed layout.
func (m *Model) load() error {
	var items []item
	v := m.t.Children(m.cwd)
	for v.Next() {
		h := v.Node()
		name, err := m.t.Name(h)
		if err != nil {
			return err
		}
		n, err := m.t.ChildrenCount(h)
		if err != nil {
			return err
		}
		items = append(items, item{node: h, name: name, children: n})
	}
	if err := v.Err(); err != nil {
		return err
	}
	m.items = items
	m.cursor = max(min(m.cursor, len(items)-1), 0)
	m.scroll()
	return nil
}

// current returns the item under the cursor.
func (m Model) current() (item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return item{}, false
	}
	return m.items[m.cursor], true
}

// open makes h the current node and places the cursor on the child focus,
// or on the first child when focus is not listed.
func (m *Model) open(h, focus types.NodeHandle) error {
	m.cwd = h
	m.cursor = 0
	m.offset = 0
	if err := m.load(); err != nil {
		return err
	}
	for i, it := range m.items {
		if it.node == focus {
			m.cursor = i
			break
		}
	}
	m.scroll()
	return nil
}

func (m *Model) descend() error {
	it, ok := m.current()
	if !ok || it.children == 0 {
		return nil
	}
	return m.open(it.node, types.Null)
}

func (m *Model) ascend() error {
	if m.cwd == m.t.Root() {
		return nil
	}
	parent, err := m.t.Parent(m.cwd)
	if err != nil {
		return err
	}
	return m.open(parent, m.cwd)
}

// reveal shows h in its parent's listing.
func (m *Model) reveal(h types.NodeHandle) error {
	if h == m.t.Root() {
		return m.open(h, types.Null)
	}
	parent, err := m.t.Parent(h)
	if err != nil {
		return err
	}
	return m.open(parent, h)
}

// listHeight is the number of rows available to the listing.
func (m Model) listHeight() int {
	return max(m.height-headerHeight-statusHeight-paneChrome, 1)
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(min(m.offset, len(m.items)-h), 0)
}
