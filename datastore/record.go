package datastore

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kyelljensen/kjcore/frame"
)

// Record is a handle on one data set: the frame is loaded lazily on first
// access and written back only when it changed.
type Record struct {
	ID   string
	name string

	mgr *Manager

	mu    sync.Mutex
	data  *frame.Frame
	dirty bool
}

// NewRecord creates a record for the named data set. The backing file may
// or may not exist yet.
func (m *Manager) NewRecord(name string) *Record {
	return &Record{
		ID:   uuid.NewString(),
		name: name,
		mgr:  m,
	}
}

// Path returns the record's backing file path.
func (r *Record) Path() string {
	return r.mgr.path(r.name)
}

// Data returns the frame, loading it from disk on first access.
func (r *Record) Data() (*frame.Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.data != nil {
		return r.data, nil
	}

	f, err := r.mgr.Load(r.name)
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", r.ID, err)
	}
	r.data = f
	return r.data, nil
}

// SetData replaces the frame and marks the record dirty.
func (r *Record) SetData(f *frame.Frame) {
	r.mu.Lock()
	r.data = f
	r.dirty = true
	r.mu.Unlock()
}

// Dirty reports whether the record has unwritten changes.
func (r *Record) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dirty
}

// Write persists the frame when it is dirty. A clean record is a no-op.
func (r *Record) Write() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.dirty {
		return nil
	}
	if r.data == nil {
		return fmt.Errorf("record %s is dirty but has no data", r.ID)
	}

	if _, err := r.mgr.Save(r.name, r.data); err != nil {
		return fmt.Errorf("failed to write record %s: %w", r.ID, err)
	}
	r.dirty = false
	r.mgr.log.Debug("record written", zap.String("id", r.ID), zap.String("name", r.name))
	return nil
}

// Delete removes the backing file. The in-memory frame stays available
// until the record is dropped.
func (r *Record) Delete() error {
	return r.mgr.Delete(r.name)
}
