package children

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nodetree/pkg/types"
)

type fakeOwner struct{ version int }

func (o *fakeOwner) Version() int { return o.version }

func handles(n int) []types.NodeHandle {
	out := make([]types.NodeHandle, n)
	for i := range out {
		out[i] = types.MakeHandle(int32(i+1), 1)
	}
	return out
}

func contents(t *testing.T, l *List) []types.NodeHandle {
	t.Helper()
	out := make([]types.NodeHandle, 0, l.Len())
	for i := range l.Len() {
		h, err := l.At(i)
		require.NoError(t, err)
		out = append(out, h)
	}
	return out
}

func TestInlineUpToCapacity(t *testing.T) {
	var l List
	hs := handles(InlineCapacity)
	for _, h := range hs {
		require.NoError(t, l.Append(h))
		assert.Equal(t, Inline, l.Storage())
	}
	assert.Equal(t, InlineCapacity, l.Len())
	assert.Equal(t, hs, contents(t, &l))
}

func TestPromotionOnFifthChild(t *testing.T) {
	var l List
	hs := handles(InlineCapacity + 1)
	for _, h := range hs[:InlineCapacity] {
		require.NoError(t, l.Append(h))
	}
	before := contents(t, &l)

	require.NoError(t, l.Append(hs[InlineCapacity]))
	require.Equal(t, Heap, l.Storage())
	require.Equal(t, InlineCapacity+1, l.Len())

	after := contents(t, &l)
	assert.Equal(t, before, after[:InlineCapacity], "promotion keeps order and access")
	assert.Equal(t, hs, after)
}

func TestInsertPositions(t *testing.T) {
	var l List
	hs := handles(6)

	require.NoError(t, l.Insert(0, hs[1]))
	require.NoError(t, l.Insert(0, hs[0]))
	require.NoError(t, l.Insert(2, hs[3]))
	require.NoError(t, l.Insert(2, hs[2]))
	require.Equal(t, Inline, l.Storage())
	require.Equal(t, hs[:4], contents(t, &l))

	// Promotes while inserting in the middle.
	require.NoError(t, l.Insert(4, hs[5]))
	require.NoError(t, l.Insert(4, hs[4]))
	require.Equal(t, Heap, l.Storage())
	require.Equal(t, hs, contents(t, &l))

	require.ErrorIs(t, l.Insert(-1, hs[0]), types.ErrIndexOutOfRange)
	require.ErrorIs(t, l.Insert(7, hs[0]), types.ErrIndexOutOfRange)
	require.ErrorIs(t, l.Insert(0, types.Null), types.ErrArgument)
}

func TestRemoveAndDemote(t *testing.T) {
	var l List
	hs := handles(6)
	for _, h := range hs {
		require.NoError(t, l.Append(h))
	}
	require.Equal(t, Heap, l.Storage())

	got, err := l.RemoveAt(0)
	require.NoError(t, err)
	require.Equal(t, hs[0], got)
	require.True(t, l.Remove(hs[5]))
	require.False(t, l.Remove(hs[5]))
	require.Equal(t, Heap, l.Storage(), "stays on the heap above the demotion threshold")

	require.True(t, l.Remove(hs[2]))
	require.True(t, l.Remove(hs[3]))
	require.Equal(t, Inline, l.Storage())
	require.Equal(t, []types.NodeHandle{hs[1], hs[4]}, contents(t, &l))

	_, err = l.RemoveAt(2)
	require.ErrorIs(t, err, types.ErrIndexOutOfRange)

	require.Equal(t, 1, l.IndexOf(hs[4]))
	require.Equal(t, -1, l.IndexOf(hs[0]))

	l.Reset()
	require.Equal(t, 0, l.Len())
	require.Equal(t, Inline, l.Storage())
}

func TestInlineRemoveClearsTail(t *testing.T) {
	var l List
	hs := handles(3)
	for _, h := range hs {
		require.NoError(t, l.Append(h))
	}
	_, err := l.RemoveAt(1)
	require.NoError(t, err)
	require.Equal(t, types.Null, l.inline[2])
	require.Equal(t, []types.NodeHandle{hs[0], hs[2]}, l.AppendTo(nil))
}

func TestViewVersionCheck(t *testing.T) {
	owner := &fakeOwner{version: 3}
	var l List
	hs := handles(5)
	for _, h := range hs {
		require.NoError(t, l.Append(h))
	}

	v := NewView(&l, owner)
	n, err := v.Count()
	require.NoError(t, err)
	require.Equal(t, 5, n)

	h, err := v.At(4)
	require.NoError(t, err)
	require.Equal(t, hs[4], h)

	st, err := v.Storage()
	require.NoError(t, err)
	require.Equal(t, Heap, st)

	all, err := v.AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, hs, all)

	_, err = v.At(5)
	require.ErrorIs(t, err, types.ErrIndexOutOfRange)

	owner.version++
	_, err = v.Count()
	require.ErrorIs(t, err, types.ErrStaleView)
	_, err = v.At(0)
	require.ErrorIs(t, err, types.ErrStaleView)
	_, err = v.AppendTo(nil)
	require.ErrorIs(t, err, types.ErrStaleView)
}

func TestViewIsolatedFromLaterEdits(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"inline", 3},
		{"heap", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := &fakeOwner{}
			var l List
			hs := handles(tt.n + 1)
			for _, h := range hs[:tt.n] {
				require.NoError(t, l.Append(h))
			}
			v := NewView(&l, owner)

			require.NoError(t, l.Insert(0, hs[tt.n]))
			_, err := l.RemoveAt(2)
			require.NoError(t, err)

			got, err := v.AppendTo(nil)
			require.NoError(t, err)
			assert.Equal(t, hs[:tt.n], got)
		})
	}
}
