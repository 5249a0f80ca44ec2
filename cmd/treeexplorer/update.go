package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/handler"
	"github.com/joshuapare/nodetree/tree/outline"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		// If help is showing, only keys that close it do anything
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		if m.inputMode == SearchMode {
			return m.handleSearchInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMessage = ""

	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.items))
	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.items))
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Enter):
		err = m.descend()
	case key.Matches(msg, m.keys.Left):
		err = m.ascend()
	case key.Matches(msg, m.keys.Search):
		m.inputMode = SearchMode
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.NextMatch):
		err = m.stepMatch(1)
	case key.Matches(msg, m.keys.PrevMatch):
		err = m.stepMatch(-1)
	case key.Matches(msg, m.keys.Copy):
		m.copyPath()
	case key.Matches(msg, m.keys.Refresh):
		err = m.refresh()
	}
	if err != nil {
		m.statusMessage = fmt.Sprintf("Error: %v", err)
	}
	return m, nil
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.inputMode = NormalMode
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.inputMode = NormalMode
		m.input.Blur()
		if err := m.search(m.input.Value()); err != nil {
			m.statusMessage = fmt.Sprintf("Error: %v", err)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor = max(min(m.cursor+delta, len(m.items)-1), 0)
	m.scroll()
}

// search runs a name search over the whole tree and reveals the first hit.
func (m *Model) search(text string) error {
	hits, err := m.t.Search(handler.Filter{Text: text})
	if err != nil {
		return err
	}
	m.matches = hits
	m.matchIdx = 0
	switch len(hits) {
	case 0:
		m.statusMessage = fmt.Sprintf("No match for %q", text)
		return nil
	case 1:
		m.statusMessage = "1 match"
	default:
		m.statusMessage = fmt.Sprintf("%d matches", len(hits))
	}
	return m.reveal(hits[0])
}

func (m *Model) stepMatch(delta int) error {
	n := len(m.matches)
	if n == 0 {
		m.statusMessage = "No search results"
		return nil
	}
	m.matchIdx = ((m.matchIdx+delta)%n + n) % n
	m.statusMessage = fmt.Sprintf("Match %d/%d", m.matchIdx+1, n)
	return m.reveal(m.matches[m.matchIdx])
}

func (m *Model) copyPath() {
	it, ok := m.current()
	if !ok {
		return
	}
	p, err := outline.Path(m.t, it.node)
	if err == nil {
		err = m.copyText(p)
	}
	if err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMessage = "Copied: " + p
}

// refresh reloads the listing after outside edits. The current node falls
// back to the root when it has been removed.
func (m *Model) refresh() error {
	if !m.t.Contains(m.cwd) {
		return m.open(m.t.Root(), types.Null)
	}
	focus := types.Null
	if it, ok := m.current(); ok {
		focus = it.node
	}
	return m.open(m.cwd, focus)
}
