package walker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree"
)

// sample builds
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	│       └── a21
//	└── b
func sample(t *testing.T) (*tree.Tree, map[string]types.NodeHandle) {
	t.Helper()
	tr, err := tree.New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })

	m := map[string]types.NodeHandle{"root": tr.Root()}
	add := func(parent, name string) {
		h, err := tr.CreateNode(m[parent], types.NodeUser)
		require.NoError(t, err)
		m[name] = h
	}
	add("root", "a")
	add("a", "a1")
	add("a", "a2")
	add("a2", "a21")
	add("root", "b")
	return tr, m
}

type visit struct {
	node  types.NodeHandle
	depth int
}

func TestWalkDepths(t *testing.T) {
	tr, m := sample(t)
	var got []visit
	require.NoError(t, Walk(tr, func(e types.FlattenedNode, depth int) error {
		got = append(got, visit{e.Node, depth})
		return nil
	}))
	assert.Equal(t, []visit{
		{m["root"], 0},
		{m["a"], 1},
		{m["a1"], 2},
		{m["a2"], 2},
		{m["a21"], 3},
		{m["b"], 1},
	}, got)
}

func TestWalkSubtree(t *testing.T) {
	tr, m := sample(t)
	var got []visit
	require.NoError(t, WalkSubtree(tr, m["a"], func(e types.FlattenedNode, depth int) error {
		got = append(got, visit{e.Node, depth})
		return nil
	}))
	assert.Equal(t, []visit{{m["a"], 0}, {m["a1"], 1}, {m["a2"], 1}, {m["a21"], 2}}, got)

	got = nil
	require.NoError(t, WalkSubtree(tr, m["b"], func(e types.FlattenedNode, depth int) error {
		got = append(got, visit{e.Node, depth})
		return nil
	}))
	assert.Equal(t, []visit{{m["b"], 0}}, got)

	err := WalkSubtree(tr, types.MakeHandle(99, 1), func(types.FlattenedNode, int) error { return nil })
	assert.ErrorIs(t, err, types.ErrNodeNotFound)
}

func TestWalkSkipAndStop(t *testing.T) {
	tr, m := sample(t)
	var got []types.NodeHandle
	require.NoError(t, Walk(tr, func(e types.FlattenedNode, _ int) error {
		got = append(got, e.Node)
		if e.Node == m["a"] {
			return ErrSkipChildren
		}
		return nil
	}))
	assert.Equal(t, []types.NodeHandle{m["root"], m["a"], m["b"]}, got)

	got = nil
	require.NoError(t, Walk(tr, func(e types.FlattenedNode, _ int) error {
		got = append(got, e.Node)
		if e.Node == m["a1"] {
			return ErrStop
		}
		return nil
	}))
	assert.Equal(t, []types.NodeHandle{m["root"], m["a"], m["a1"]}, got)

	boom := errors.New("boom")
	err := Walk(tr, func(types.FlattenedNode, int) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWalkDetectsMutation(t *testing.T) {
	tr, m := sample(t)
	err := Walk(tr, func(e types.FlattenedNode, _ int) error {
		if e.Node == m["a"] {
			return tr.RemoveNode(m["b"])
		}
		return nil
	})
	assert.ErrorIs(t, err, types.ErrStaleView)
}

func TestCollect(t *testing.T) {
	tr, m := sample(t)
	for range 4 {
		_, err := tr.CreateNode(m["b"], types.NodeUser)
		require.NoError(t, err)
	}

	st, err := Collect(tr)
	require.NoError(t, err)
	assert.Equal(t, 10, st.Nodes)
	assert.Equal(t, 6, st.Leaves)
	assert.Equal(t, 3, st.MaxDepth)
	assert.Equal(t, 4, st.MaxFanout)
	assert.Equal(t, []int{1, 2, 6, 1}, st.NodesAtDepth)
	assert.Equal(t, 10, st.InlineLists)
	assert.Zero(t, st.HeapLists)

	_, err = tr.CreateNode(m["b"], types.NodeUser)
	require.NoError(t, err)
	st, err = Collect(tr)
	require.NoError(t, err)
	assert.Equal(t, 1, st.HeapLists)
	assert.Equal(t, 5, st.MaxFanout)
}

func TestCollectInsideOpenBatch(t *testing.T) {
	tr, m := sample(t)
	require.NoError(t, tr.Begin())
	require.NoError(t, tr.RemoveNode(m["a"]))

	st, err := Collect(tr)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Nodes, "shape comes from the committed layout")
	assert.Equal(t, 3, st.Leaves)
	assert.Equal(t, 3, st.MaxDepth)
	assert.Equal(t, 2, st.InlineLists, "only root and b still have lists")
	assert.Zero(t, st.HeapLists)

	require.NoError(t, tr.Commit())
	st, err = Collect(tr)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Nodes)
	assert.Equal(t, 2, st.InlineLists)
}
