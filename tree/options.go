package tree

import (
	"io"
	"log/slog"

	"github.com/joshuapare/nodetree/internal/arena"
	"github.com/joshuapare/nodetree/tree/handler"
	"github.com/joshuapare/nodetree/tree/sparse"
)

// Options configures a Tree.
type Options struct {
	// InitialCapacity pre-sizes the node stores.
	// Default: 64
	InitialCapacity int

	// Growth is the policy the node stores grow with when a new id falls
	// beyond their capacity.
	// Default: sparse.DoubleSize
	Growth sparse.GrowthPolicy

	// Logger receives debug records for commits and warnings for handler
	// failures. nil discards everything.
	Logger *slog.Logger

	// Handlers selects node-type hooks. nil uses handler.Base for every type.
	Handlers *handler.Registry

	// ArenaChunkSize is the chunk size of the raw property arena.
	// Default: arena.DefaultChunkSize
	ArenaChunkSize int
}

// DefaultOptions returns the options used when New is given nil.
func DefaultOptions() *Options {
	return &Options{
		InitialCapacity: 64,
		Growth:          sparse.DoubleSize,
		ArenaChunkSize:  arena.DefaultChunkSize,
	}
}

func (o *Options) normalize() *Options {
	out := DefaultOptions()
	if o == nil {
		out.Logger = discardLogger()
		out.Handlers = handler.NewRegistry()
		return out
	}
	*out = *o
	if out.InitialCapacity <= 0 {
		out.InitialCapacity = 1
	}
	if out.Logger == nil {
		out.Logger = discardLogger()
	}
	if out.Handlers == nil {
		out.Handlers = handler.NewRegistry()
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
