package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nodetree/tree"
	"github.com/joshuapare/nodetree/tree/outline"
)

// testHelper drives a Model the way the bubbletea runtime would
type testHelper struct {
	t      *testing.T
	tree   *tree.Tree
	model  Model
	copied []string
}

func house() outline.Node {
	return outline.Node{
		Name: "house",
		Children: []outline.Node{
			{Name: "ground", Children: []outline.Node{{Name: "kitchen"}, {Name: "living room"}, {Name: "hall"}}},
			{Name: "upstairs", Children: []outline.Node{{Name: "bedroom"}, {Name: "bathroom"}}},
			{Name: "garden"},
		},
	}
}

func newTestHelper(t *testing.T) *testHelper {
	t.Helper()
	tr, err := outline.Build(house(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })

	h := &testHelper{t: t, tree: tr}
	h.model = NewModel(tr, "house.json")
	require.NoError(t, h.model.err)
	h.model.copyText = func(s string) error {
		h.copied = append(h.copied, s)
		return nil
	}
	return h
}

func (h *testHelper) send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

// sendKey simulates a special key press
func (h *testHelper) sendKey(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

// sendKeys types each rune of s
func (h *testHelper) sendKeys(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// names lists the rows currently shown
func (h *testHelper) names() []string {
	out := make([]string, 0, len(h.model.items))
	for _, it := range h.model.items {
		out = append(out, it.name)
	}
	return out
}

// selected returns the name under the cursor
func (h *testHelper) selected() string {
	it, ok := h.model.current()
	if !ok {
		return ""
	}
	return it.name
}

// sendWindowSize simulates a window resize
func (h *testHelper) sendWindowSize(width, height int) {
	h.send(tea.WindowSizeMsg{Width: width, Height: height})
}

// sendRune sends a rune key and returns the resulting command
func (h *testHelper) sendRune(s string) tea.Cmd {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}
