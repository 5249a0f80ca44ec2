// Package arena is a bump allocator for variable-length byte payloads kept
// outside the Go heap.
//
// Chunks are anonymous memory mappings on unix and plain heap slices elsewhere.
// Nothing is reclaimed until Close, which releases every chunk at once; Free
// only updates the accounting. Callers must not retain slices returned by
// Bytes after Close.
package arena

import (
	"fmt"
	"math"

	"github.com/joshuapare/nodetree/internal/buf"
	"github.com/joshuapare/nodetree/pkg/types"
)

const (
	// DefaultChunkSize is used when New is given a non-positive size.
	DefaultChunkSize = 64 << 10

	alignment = 8

	// MaxAlloc is the largest payload a Span can describe.
	MaxAlloc = math.MaxInt32 &^ (alignment - 1)
)

// Span locates one allocation. The zero Span is a valid empty payload.
type Span struct {
	Chunk int32
	Off   int32
	Len   int32 // payload length
	Cap   int32 // reserved length (aligned)
}

// Stats reports arena usage.
type Stats struct {
	Chunks    int
	Reserved  int // bytes mapped
	Allocated int // bytes handed out, including freed spans
	Live      int // bytes in spans not yet freed
}

// Arena hands out spans from a list of chunks.
//
// NOT thread-safe.
type Arena struct {
	chunkSize int
	chunks    [][]byte
	cur       int // chunk receiving small allocations, -1 before the first
	top       int // bump pointer into chunks[cur]
	allocated int
	live      int
	closed    bool
}

// New creates an arena whose regular chunks are chunkSize bytes.
func New(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena{chunkSize: align(chunkSize), cur: -1}
}

func align(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Alloc reserves n bytes.
func (a *Arena) Alloc(n int) (Span, error) {
	if a.closed {
		return Span{}, types.ErrClosed
	}
	if n < 0 {
		return Span{}, types.Errorf(types.ErrKindArgument, "arena: negative size %d", n)
	}
	if n > MaxAlloc {
		return Span{}, types.Errorf(types.ErrKindArgument, "arena: size %d exceeds %d", n, MaxAlloc)
	}
	if n == 0 {
		return Span{}, nil
	}
	need := align(n)

	// Oversized payloads get a dedicated chunk; the bump chunk stays current.
	if need > a.chunkSize {
		chunk, err := mapChunk(need)
		if err != nil {
			return Span{}, fmt.Errorf("arena: map %d bytes: %w", need, err)
		}
		a.chunks = append(a.chunks, chunk)
		a.account(need)
		return Span{Chunk: int32(len(a.chunks) - 1), Len: int32(n), Cap: int32(need)}, nil
	}

	if a.cur < 0 || a.top+need > a.chunkSize {
		chunk, err := mapChunk(a.chunkSize)
		if err != nil {
			return Span{}, fmt.Errorf("arena: map %d bytes: %w", a.chunkSize, err)
		}
		a.chunks = append(a.chunks, chunk)
		a.cur = len(a.chunks) - 1
		a.top = 0
	}

	s := Span{
		Chunk: int32(a.cur),
		Off:   int32(a.top),
		Len:   int32(n),
		Cap:   int32(need),
	}
	a.top += need
	a.account(need)
	return s, nil
}

func (a *Arena) account(reserved int) {
	a.allocated += reserved
	a.live += reserved
}

// Bytes returns the payload of s. The slice aliases arena memory.
func (a *Arena) Bytes(s Span) ([]byte, error) {
	if a.closed {
		return nil, types.ErrClosed
	}
	if s.Cap == 0 {
		return []byte{}, nil
	}
	if err := buf.CheckIndex(int(s.Chunk), len(a.chunks)); err != nil {
		return nil, fmt.Errorf("arena: bad span chunk: %w", err)
	}
	b, ok := buf.Slice(a.chunks[s.Chunk], int(s.Off), int(s.Len))
	if !ok {
		return nil, types.Errorf(types.ErrKindIndexRange,
			"arena: span [%d,+%d) outside chunk %d", s.Off, s.Len, s.Chunk)
	}
	return b, nil
}

// Write stores data, reusing s when its reservation is large enough.
// Pass the zero Span to always allocate. s stays valid when Write fails.
func (a *Arena) Write(s Span, data []byte) (Span, error) {
	if a.closed {
		return Span{}, types.ErrClosed
	}
	if s.Cap > 0 && len(data) <= int(s.Cap) {
		s.Len = int32(len(data))
		dst, err := a.Bytes(s)
		if err != nil {
			return Span{}, err
		}
		copy(dst, data)
		return s, nil
	}
	ns, err := a.Alloc(len(data))
	if err != nil {
		return Span{}, err
	}
	a.Free(s)
	dst, err := a.Bytes(ns)
	if err != nil {
		return Span{}, err
	}
	copy(dst, data)
	return ns, nil
}

// Free marks s as dead. The memory is reclaimed on Close.
func (a *Arena) Free(s Span) {
	if a.closed || s.Cap == 0 {
		return
	}
	a.live -= int(s.Cap)
}

// Stats returns current usage counters.
func (a *Arena) Stats() Stats {
	st := Stats{Chunks: len(a.chunks), Allocated: a.allocated, Live: a.live}
	for _, c := range a.chunks {
		st.Reserved += len(c)
	}
	return st
}

// Close releases every chunk. Close is idempotent.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	var firstErr error
	for i, c := range a.chunks {
		if err := unmapChunk(c); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("arena: unmap chunk %d: %w", i, err)
		}
		a.chunks[i] = nil
	}
	a.chunks = nil
	a.live = 0
	return firstErr
}
