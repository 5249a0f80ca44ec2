package dirty

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nodetree/pkg/types"
)

func TestTrackerCoalesces(t *testing.T) {
	tr := NewTracker()
	a := types.MakeHandle(4, 1)
	b := types.MakeHandle(2, 3)
	c := types.MakeHandle(2, 1)

	tr.Add(a, types.NodeUser, Created)
	tr.Add(b, types.NodeUser+1, Created)
	tr.Add(a, types.NodeUser, Moved)
	tr.Add(c, types.NodeUser, Removed)

	require.Equal(t, 4, tr.Len())
	require.Equal(t, []types.NodeHandle{c, b, a}, tr.Nodes())
	require.Equal(t, []types.NodeType{types.NodeUser, types.NodeUser + 1}, tr.Types())
	require.Equal(t, []types.NodeHandle{a, c}, tr.NodesOf(types.NodeUser))

	entries := tr.Entries()
	require.Len(t, entries, 4)
	require.Equal(t, Moved, entries[2].Change)

	tr.Reset()
	require.Equal(t, 0, tr.Len())
	require.Empty(t, tr.Nodes())
	require.Len(t, entries, 4, "Entries returns a copy")
}

func TestChangeString(t *testing.T) {
	require.Equal(t, "created", Created.String())
	require.Equal(t, "removed", Removed.String())
	require.Equal(t, "moved", Moved.String())
	require.Equal(t, "reordered", Reordered.String())
	require.Equal(t, "unknown", Change(0).String())
}
