package tx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nodetree/pkg/types"
	"github.com/joshuapare/nodetree/tree/dirty"
)

func TestCommitBumpsOncePerBatch(t *testing.T) {
	dt := dirty.NewTracker()
	m := NewManager(dt)
	require.Equal(t, 0, m.Version())

	m.Begin()
	require.True(t, m.InTransaction())
	for i := range 10 {
		dt.Add(types.MakeHandle(int32(i+1), 1), types.NodeUser, dirty.Created)
	}

	var seen int
	err := m.Commit(func(d *dirty.Tracker) error {
		seen = d.Len()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 10, seen)
	require.Equal(t, 1, m.Version(), "ten changes, one bump")
	require.Equal(t, 0, dt.Len())
	require.False(t, m.InTransaction())
}

func TestNestedBeginIsIdempotent(t *testing.T) {
	dt := dirty.NewTracker()
	m := NewManager(dt)

	m.Begin()
	m.Begin()
	dt.Add(types.MakeHandle(1, 1), types.NodeUser, dirty.Created)
	require.NoError(t, m.Commit(nil))
	require.Equal(t, 1, m.Version())

	require.NoError(t, m.Commit(nil), "commit without a batch is a no-op")
	require.Equal(t, 1, m.Version())
}

func TestEmptyBatchKeepsVersion(t *testing.T) {
	m := NewManager(dirty.NewTracker())
	m.Begin()
	called := false
	require.NoError(t, m.Commit(func(*dirty.Tracker) error {
		called = true
		return nil
	}))
	require.False(t, called)
	require.Equal(t, 0, m.Version())
	require.Equal(t, 0, m.Commits())
}

func TestFailedApplyStillBumps(t *testing.T) {
	dt := dirty.NewTracker()
	m := NewManager(dt)
	boom := errors.New("boom")

	m.Begin()
	dt.Add(types.MakeHandle(1, 1), types.NodeUser, dirty.Created)
	err := m.Commit(func(*dirty.Tracker) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, m.Version())
	require.Equal(t, 0, m.Tracker().Len())
}
