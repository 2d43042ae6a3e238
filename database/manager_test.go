package database

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyelljensen/kjcore/config"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	cfg, err := config.New(filepath.Join(t.TempDir(), "ws"))
	require.NoError(t, err)

	m, err := Open(cfg, "test")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestOpenAndPing(t *testing.T) {
	m := testManager(t)
	assert.True(t, strings.HasSuffix(m.Path(), "test.db"))
	require.NoError(t, m.Ping(context.Background()))
}

func TestCloseIsIdempotent(t *testing.T) {
	m := testManager(t)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestWithSessionCommits(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	err := m.WithSession(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("CREATE TABLE measurement (id INTEGER PRIMARY KEY, value REAL)"); err != nil {
			return err
		}
		_, err := tx.Exec("INSERT INTO measurement (value) VALUES (1.5)")
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, m.DB().QueryRow("SELECT COUNT(*) FROM measurement").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWithSessionRollsBackOnError(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	_, err := m.DB().Exec("CREATE TABLE measurement (id INTEGER PRIMARY KEY, value REAL)")
	require.NoError(t, err)

	sentinel := assert.AnError
	err = m.WithSession(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO measurement (value) VALUES (2.5)"); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	var count int
	require.NoError(t, m.DB().QueryRow("SELECT COUNT(*) FROM measurement").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestCommitPrompt(t *testing.T) {
	ctx := context.Background()

	insert := func(tx *sql.Tx) error {
		if _, err := tx.Exec("CREATE TABLE IF NOT EXISTS t (v REAL)"); err != nil {
			return err
		}
		_, err := tx.Exec("INSERT INTO t (v) VALUES (1)")
		return err
	}

	t.Run("accepted", func(t *testing.T) {
		m := testManager(t)
		var out bytes.Buffer
		committed, err := m.CommitPrompt(ctx, strings.NewReader("y\n"), &out, insert)
		require.NoError(t, err)
		assert.True(t, committed)
		assert.Contains(t, out.String(), "Commit changes?")

		var count int
		require.NoError(t, m.DB().QueryRow("SELECT COUNT(*) FROM t").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("declined", func(t *testing.T) {
		m := testManager(t)
		var out bytes.Buffer
		committed, err := m.CommitPrompt(ctx, strings.NewReader("n\n"), &out, insert)
		require.NoError(t, err)
		assert.False(t, committed)

		// The CREATE TABLE rolled back with the insert.
		var count int
		err = m.DB().QueryRow("SELECT COUNT(*) FROM t").Scan(&count)
		assert.Error(t, err)
	})

	t.Run("empty answer declines", func(t *testing.T) {
		m := testManager(t)
		var out bytes.Buffer
		committed, err := m.CommitPrompt(ctx, strings.NewReader("\n"), &out, insert)
		require.NoError(t, err)
		assert.False(t, committed)
	})
}
