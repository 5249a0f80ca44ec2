package arena

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nodetree/pkg/types"
)

func TestAllocAndBytes(t *testing.T) {
	a := New(64)
	defer a.Close()

	s1, err := a.Alloc(5)
	require.NoError(t, err)
	require.EqualValues(t, 5, s1.Len)
	require.EqualValues(t, 8, s1.Cap, "allocations are 8-byte aligned")

	b1, err := a.Bytes(s1)
	require.NoError(t, err)
	copy(b1, "hello")

	s2, err := a.Alloc(3)
	require.NoError(t, err)
	require.Equal(t, s1.Chunk, s2.Chunk)
	require.EqualValues(t, 8, s2.Off)

	again, err := a.Bytes(s1)
	require.NoError(t, err)
	require.Equal(t, "hello", string(again))
}

func TestAllocSpillsToNewChunk(t *testing.T) {
	a := New(16)
	defer a.Close()

	s1, err := a.Alloc(16)
	require.NoError(t, err)
	s2, err := a.Alloc(1)
	require.NoError(t, err)
	require.NotEqual(t, s1.Chunk, s2.Chunk)
	require.Equal(t, 2, a.Stats().Chunks)
}

func TestOversizedKeepsBumpChunk(t *testing.T) {
	a := New(16)
	defer a.Close()

	small, err := a.Alloc(4)
	require.NoError(t, err)

	big, err := a.Alloc(100)
	require.NoError(t, err)
	require.EqualValues(t, 104, big.Cap)

	next, err := a.Alloc(4)
	require.NoError(t, err)
	require.Equal(t, small.Chunk, next.Chunk, "small allocations continue in the bump chunk")
	require.NotEqual(t, big.Chunk, next.Chunk)

	payload := bytes.Repeat([]byte{0xAB}, 100)
	dst, err := a.Bytes(big)
	require.NoError(t, err)
	copy(dst, payload)
	got, err := a.Bytes(big)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestWriteReusesSpan(t *testing.T) {
	a := New(0)
	defer a.Close()

	s, err := a.Write(Span{}, []byte("abcdef"))
	require.NoError(t, err)

	smaller, err := a.Write(s, []byte("xyz"))
	require.NoError(t, err)
	require.Equal(t, s.Chunk, smaller.Chunk)
	require.Equal(t, s.Off, smaller.Off)
	got, err := a.Bytes(smaller)
	require.NoError(t, err)
	require.Equal(t, "xyz", string(got))

	larger, err := a.Write(smaller, []byte("0123456789"))
	require.NoError(t, err)
	require.NotEqual(t, s.Off, larger.Off)
	got, err = a.Bytes(larger)
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(got))

	st := a.Stats()
	require.Equal(t, 24, st.Allocated)
	require.Equal(t, 16, st.Live)
}

func TestEmptyAndInvalid(t *testing.T) {
	a := New(0)
	defer a.Close()

	s, err := a.Alloc(0)
	require.NoError(t, err)
	b, err := a.Bytes(s)
	require.NoError(t, err)
	require.Empty(t, b)

	_, err = a.Alloc(-1)
	require.ErrorIs(t, err, types.ErrArgument)

	_, err = a.Bytes(Span{Chunk: 7, Len: 1, Cap: 8})
	require.ErrorIs(t, err, types.ErrIndexOutOfRange)
}

func TestClose(t *testing.T) {
	a := New(0)
	_, err := a.Alloc(10)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close(), "Close is idempotent")

	_, err = a.Alloc(1)
	require.ErrorIs(t, err, types.ErrClosed)
	_, err = a.Bytes(Span{})
	require.ErrorIs(t, err, types.ErrClosed)
}

func TestAllocRejectsOversizedPayload(t *testing.T) {
	a := New(0)
	defer a.Close()

	for _, n := range []int{MaxAlloc + 1, math.MaxInt32} {
		_, err := a.Alloc(n)
		require.ErrorIs(t, err, types.ErrArgument, "size %d", n)
	}
	require.Zero(t, a.Stats().Chunks)
}
