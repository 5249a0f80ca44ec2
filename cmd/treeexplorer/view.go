package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/nodetree/tree/outline"
)

const unnamed = "(unnamed)"

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showHelp {
		// Recreated each render: Update returns new models, so a stored
		// pointer would go stale.
		help := overlay.New(
			&helpModel{keys: m.keys},
			&mainViewModel{model: &m},
			overlay.Center,
			overlay.Center,
			0,
			0,
		)
		return help.View()
	}
	return m.renderMain()
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderList(),
		m.renderStatus(),
	)
}

// renderHeader renders the title, the source file and the current path
func (m Model) renderHeader() string {
	p, err := outline.Path(m.t, m.cwd)
	if err != nil {
		p = "?"
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("Node Tree Explorer"),
		"  ",
		pathStyle.Render(fmt.Sprintf("%s  %s  v%d", m.source, p, m.t.Version())),
	)
}

func (m Model) renderList() string {
	var b strings.Builder
	if len(m.items) == 0 {
		b.WriteString(countStyle.Render("(no children)"))
	}
	end := min(m.offset+m.listHeight(), len(m.items))
	for i := m.offset; i < end; i++ {
		it := m.items[i]
		name := it.name
		if name == "" {
			name = unnamed
		}
		marker := "  "
		if it.children > 0 {
			marker = "▸ "
		}
		line := marker + name
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		if it.children > 0 {
			line += " " + countStyle.Render(fmt.Sprintf("(%d)", it.children))
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return paneStyle.Width(max(m.width-2, 10)).Render(b.String())
}

func (m Model) renderStatus() string {
	if m.inputMode == SearchMode {
		return statusStyle.Width(m.width).Render(searchPromptStyle.Render("Search: ") + m.input.View())
	}
	if m.statusMessage != "" {
		return statusStyle.Width(m.width).Render(searchPromptStyle.Render(m.statusMessage))
	}
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts, fmt.Sprintf("%s: %s", b.Help().Key, b.Help().Desc))
	}
	return statusStyle.Width(m.width).Render(strings.Join(parts, " │ "))
}

// mainViewModel wraps the main UI for use as the overlay background
type mainViewModel struct {
	model *Model
}

func (v *mainViewModel) Init() tea.Cmd { return nil }

// Update is a no-op: the parent Model handles every message.
func (v *mainViewModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v *mainViewModel) View() string { return v.model.renderMain() }

// helpModel renders the keyboard shortcut list
type helpModel struct {
	keys KeyMap
}

func (h *helpModel) Init() tea.Cmd { return nil }

func (h *helpModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return h, nil }

func (h *helpModel) View() string {
	const keyWidth = 10

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for i, group := range h.keys.FullHelp() {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, k := range group {
			b.WriteString(helpKeyStyle.Width(keyWidth).Render(k.Help().Key))
			b.WriteString("  ")
			b.WriteString(helpDescStyle.Render(k.Help().Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(countStyle.Render("Press ? or esc to close"))
	return modalStyle.Render(b.String())
}
