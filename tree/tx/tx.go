// Package tx owns the structure version counter and groups mutations into
// batches.
//
// Batch Protocol:
//  1. Begin() - mark a batch as started
//  2. [Apply mutations - recorded by the dirty.Tracker]
//  3. Commit(apply) - integrate the recorded changes, bump the version once
//
// Readers snapshot Version() when they are built. Because the bump happens
// once per batch, invalidation costs a single integer compare per access no
// matter how many nodes the batch touched.
package tx

import (
	"github.com/joshuapare/nodetree/tree/dirty"
)

// Manager tracks the version counter and the open batch.
//
// The manager is NOT thread-safe. Only one goroutine should use it at a time.
type Manager struct {
	dt      *dirty.Tracker
	version int
	inTx    bool
	commits int
}

// NewManager creates a manager recording into dt.
func NewManager(dt *dirty.Tracker) *Manager {
	return &Manager{dt: dt}
}

// Begin starts a batch. Calling Begin inside a batch is a no-op.
func (m *Manager) Begin() {
	m.inTx = true
}

// Commit ends the batch.
//
// When the tracker recorded changes, apply runs with it, the version is
// incremented exactly once and the tracker is reset. The version advances
// even if apply fails: the mutations it integrates are already in place and
// views built before them must not keep reading.
//
// Commit without an open batch, or of a batch that changed nothing, does
// not touch the version.
func (m *Manager) Commit(apply func(*dirty.Tracker) error) error {
	if !m.inTx {
		return nil
	}
	m.inTx = false
	if m.dt.Len() == 0 {
		return nil
	}

	var err error
	if apply != nil {
		err = apply(m.dt)
	}
	m.version++
	m.commits++
	m.dt.Reset()
	return err
}

// InTransaction returns whether a batch is open.
func (m *Manager) InTransaction() bool {
	return m.inTx
}

// Version returns the current structure version.
func (m *Manager) Version() int {
	return m.version
}

// Commits returns how many batches advanced the version.
func (m *Manager) Commits() int {
	return m.commits
}

// Tracker returns the dirty tracker the batch records into.
func (m *Manager) Tracker() *dirty.Tracker {
	return m.dt
}
