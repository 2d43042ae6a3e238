package datastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kyelljensen/kjcore/config"
	"github.com/kyelljensen/kjcore/frame"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testManager(t *testing.T) *Manager {
	t.Helper()
	cfg, err := config.New(filepath.Join(t.TempDir(), "ws"))
	require.NoError(t, err)

	m, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func testFrame(t *testing.T, n int) *frame.Frame {
	t.Helper()
	start := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	index := make([]time.Time, n)
	values := make([]float64, n)
	for i := range index {
		index[i] = start.Add(time.Duration(i) * time.Second)
		values[i] = float64(i)
	}
	f := frame.New(index)
	require.NoError(t, f.AddColumn("x", values))
	return f
}

func TestSaveAndLoad(t *testing.T) {
	m := testManager(t)
	f := testFrame(t, 5)

	path, err := m.Save("run_001", f)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.Dir(), "run_001.csv"), path)

	got, err := m.Load("run_001")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Len())
	assert.Equal(t, []string{"x"}, got.Names())
}

func TestLoadMissingFile(t *testing.T) {
	m := testManager(t)
	_, err := m.Load("does_not_exist")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	m := testManager(t)
	path, err := m.Save("run_001", testFrame(t, 2))
	require.NoError(t, err)

	require.NoError(t, m.Delete("run_001"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, m.cached("run_001"))

	// Deleting again is fine.
	require.NoError(t, m.Delete("run_001"))
}

func TestWatcherEvictsOnExternalWrite(t *testing.T) {
	m := testManager(t)

	path, err := m.Save("run_001", testFrame(t, 2))
	require.NoError(t, err)

	// Overwrite the file behind the manager's back. The watcher evicts the
	// cache entry, so the next load sees the new content.
	require.NoError(t, testFrame(t, 7).WriteFile(path))

	require.Eventually(t, func() bool {
		f, err := m.Load("run_001")
		return err == nil && f.Len() == 7
	}, 2*time.Second, 10*time.Millisecond, "reload should pick up the external write")
}

func TestFiles(t *testing.T) {
	m := testManager(t)
	_, err := m.Save("run_001", testFrame(t, 2))
	require.NoError(t, err)
	_, err = m.Save("run_002", testFrame(t, 2))
	require.NoError(t, err)

	files, err := m.Files("csv")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	none, err := m.Files("feather")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSensorIDs(t *testing.T) {
	m := testManager(t)
	_, err := m.Save("TMS_001", testFrame(t, 2))
	require.NoError(t, err)
	_, err = m.Save("TMS_042", testFrame(t, 2))
	require.NoError(t, err)

	files, err := m.Files("csv")
	require.NoError(t, err)

	ids, err := m.SensorIDs(files, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 42}, ids)
}
