// Package datastore manages the data directory: saving and loading frames
// as CSV, a read cache invalidated by filesystem events, and the Record
// lifecycle (lazy load, dirty tracking, explicit write-back).
package datastore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/kyelljensen/kjcore/config"
	"github.com/kyelljensen/kjcore/frame"
	"github.com/kyelljensen/kjcore/logging"
	"github.com/kyelljensen/kjcore/pathutil"
)

// Manager owns the data directory.
type Manager struct {
	dir string
	log *zap.Logger

	mu    sync.RWMutex
	cache map[string]*frame.Frame

	watch *watcher
}

// New creates the data directory if needed and starts the cache watcher.
func New(cfg *config.Config) (*Manager, error) {
	dir, err := pathutil.EnsureDir(cfg.DataDirectory)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		dir:   dir,
		log:   logging.Named("datastore"),
		cache: make(map[string]*frame.Frame),
	}

	w, err := newWatcher(dir, m.evict, m.log)
	if err != nil {
		return nil, err
	}
	m.watch = w

	m.log.Info("data manager initialized", zap.String("dir", dir))
	return m, nil
}

// Dir returns the data directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Close stops the watcher.
func (m *Manager) Close() error {
	if m.watch == nil {
		return nil
	}
	return m.watch.close()
}

// path resolves a data set name to its CSV file path. Absolute paths pass
// through unchanged.
func (m *Manager) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if filepath.Ext(name) == "" {
		name += ".csv"
	}
	return filepath.Join(m.dir, name)
}

// Save writes a frame into the data directory and returns the file path.
func (m *Manager) Save(name string, f *frame.Frame) (string, error) {
	timer := logging.StartTimer("datastore", "Save")
	defer timer.Stop()

	path := m.path(name)
	if err := f.WriteFile(path); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.cache[path] = f
	m.mu.Unlock()

	m.log.Debug("frame saved", zap.String("path", path), zap.Int("rows", f.Len()))
	return path, nil
}

// Load reads a frame, serving repeated reads from the cache until the file
// changes on disk.
func (m *Manager) Load(name string) (*frame.Frame, error) {
	path := m.path(name)

	m.mu.RLock()
	cached, ok := m.cache[path]
	m.mu.RUnlock()
	if ok {
		m.log.Debug("cache hit", zap.String("path", path))
		return cached, nil
	}

	timer := logging.StartTimer("datastore", "Load")
	defer timer.Stop()

	f, err := frame.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[path] = f
	m.mu.Unlock()
	return f, nil
}

// Delete removes a data file and drops it from the cache. Deleting a
// missing file is not an error.
func (m *Manager) Delete(name string) error {
	path := m.path(name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	m.evict(path)
	return nil
}

// evict drops a cache entry. Called for every relevant filesystem event.
func (m *Manager) evict(path string) {
	m.mu.Lock()
	if _, ok := m.cache[path]; ok {
		delete(m.cache, path)
		m.log.Debug("cache evicted", zap.String("path", path))
	}
	m.mu.Unlock()
}

// cached reports whether a path is currently cached. Used by tests.
func (m *Manager) cached(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cache[m.path(name)]
	return ok
}

// Files lists data files, optionally filtered by a case-insensitive
// extension. An empty result only logs a warning.
func (m *Manager) Files(ext string) ([]string, error) {
	files, err := pathutil.FileList(m.dir, ext)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		m.log.Warn("no files found", zap.String("dir", m.dir), zap.String("ext", ext))
	}
	return files, nil
}

// SensorIDs extracts sensor IDs from data file names. A nil extractor uses
// pathutil.LastThreeDigits.
func (m *Manager) SensorIDs(files []string, extract pathutil.IDExtractor) ([]int, error) {
	ids, err := pathutil.SensorIDs(files, extract)
	if err != nil {
		return nil, err
	}
	m.log.Debug("sensor IDs extracted", zap.Ints("ids", ids))
	return ids, nil
}
