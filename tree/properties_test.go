package tree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nodetree/pkg/types"
)

const (
	propLabel types.PropertyID = 10
	propBlob  types.PropertyID = 11
)

func TestStringProperties(t *testing.T) {
	tr := newTree(t)
	a := mustCreate(t, tr, tr.Root(), "")

	name, err := tr.Name(a)
	require.NoError(t, err)
	assert.Empty(t, name)

	_, err = tr.GetPropertyString(propLabel, a)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)

	label := tr.StringProperty(propLabel)
	require.NoError(t, label.Set(a, "first"))
	require.NoError(t, label.Set(a, "second"))
	s, err := label.Get(a)
	require.NoError(t, err)
	assert.Equal(t, "second", s)

	require.NoError(t, label.Clear(a))
	_, err = label.Get(a)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)

	_, err = tr.GetPropertyString(propLabel, types.MakeHandle(50, 1))
	assert.ErrorIs(t, err, types.ErrNodeNotFound)
	assert.ErrorIs(t, tr.SetName(types.Null, "x"), types.ErrNodeNotFound)
}

func TestRawProperties(t *testing.T) {
	opts := DefaultOptions()
	opts.ArenaChunkSize = 64
	tr, err := New(opts)
	require.NoError(t, err)
	defer tr.Close()

	a := mustCreate(t, tr, tr.Root(), "")
	blob := tr.RawProperty(propBlob)

	require.NoError(t, blob.Set(a, []byte("0123456789")))
	got, err := blob.Bytes(a)
	require.NoError(t, err)
	assert.Equal(t, []byte("0123456789"), got)
	before := tr.ArenaStats()

	require.NoError(t, blob.Set(a, []byte("abc")))
	assert.Equal(t, before.Allocated, tr.ArenaStats().Allocated, "smaller value reuses the span")
	dst := make([]byte, 2)
	n, err := blob.Read(a, dst)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("ab"), dst)

	big := bytes.Repeat([]byte{0xAB}, 200)
	require.NoError(t, blob.Set(a, big))
	got, err = blob.Bytes(a)
	require.NoError(t, err)
	assert.Equal(t, big, got)

	require.NoError(t, blob.Set(a, nil))
	got, err = blob.Bytes(a)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, tr.ClearProperty(propBlob, a))
	_, err = blob.Bytes(a)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)
}

func TestRemoveClearsProperties(t *testing.T) {
	tr := newTree(t)
	a := mustCreate(t, tr, tr.Root(), "a")
	require.NoError(t, tr.SetPropertyRaw(propBlob, a, []byte("payload")))
	live := tr.ArenaStats().Live
	require.Positive(t, live)

	require.NoError(t, tr.RemoveNode(a))
	assert.Zero(t, tr.ArenaStats().Live)

	b := mustCreate(t, tr, tr.Root(), "")
	require.Equal(t, a.ID, b.ID)
	_, err := tr.GetPropertyRaw(propBlob, b, nil)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)
}

func TestPropertyWritesDoNotBumpVersion(t *testing.T) {
	tr := newTree(t)
	a := mustCreate(t, tr, tr.Root(), "")
	v := tr.Version()
	require.NoError(t, tr.SetName(a, "n"))
	require.NoError(t, tr.SetPropertyRaw(propBlob, a, []byte{1}))
	require.NoError(t, tr.ClearProperty(propBlob, a))
	assert.Equal(t, v, tr.Version())
}
