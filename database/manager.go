// Package database manages the project SQLite database: connection setup,
// session (transaction) handling, schema migrations and table scaffolding.
// It uses the pure-Go modernc.org/sqlite driver through database/sql.
package database

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/kyelljensen/kjcore/config"
	"github.com/kyelljensen/kjcore/logging"
)

// Manager owns a single SQLite database connection.
type Manager struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

// Open creates or opens the named database inside the configured database
// directory and prepares it for use (WAL journal, busy timeout, single
// connection).
func Open(cfg *config.Config, name string) (*Manager, error) {
	timer := logging.StartTimer("database", "Open")
	defer timer.Stop()

	path := cfg.DatabasePath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	log := logging.Named("database")
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			log.Debug("pragma failed", zap.String("pragma", pragma), zap.Error(err))
		}
	}

	m := &Manager{db: db, path: path, log: log}
	log.Info("database opened", zap.String("path", path))
	return m, nil
}

// DB exposes the underlying connection for callers that need raw access.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Path returns the database file path.
func (m *Manager) Path() string {
	return m.path
}

// Ping verifies that the database is reachable. SQLite connects lazily, so
// this is the explicit connection check.
func (m *Manager) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		m.log.Error("database ping failed", zap.Error(err))
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.log.Info("database connection established")
	return nil
}

// Close disposes the connection. Safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	m.log.Info("database connection closed")
	return nil
}

// WithSession runs fn inside a transaction. The transaction is committed
// when fn returns nil and rolled back otherwise.
func (m *Manager) WithSession(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			m.log.Error("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	m.log.Debug("session committed")
	return nil
}

// CommitPrompt runs fn inside a transaction and then asks on out whether to
// commit, reading the answer ("y"/"yes"/"true") from in. It reports whether
// the transaction was committed. A declined commit rolls back and is not an
// error.
func (m *Manager) CommitPrompt(ctx context.Context, in io.Reader, out io.Writer, fn func(*sql.Tx) error) (bool, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to open session: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			m.log.Error("rollback failed", zap.Error(rbErr))
		}
		return false, err
	}

	fmt.Fprint(out, "Commit changes? [y/N]: ")
	answer := ""
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		answer = strings.ToLower(strings.TrimSpace(scanner.Text()))
	}

	switch answer {
	case "y", "yes", "true":
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit session: %w", err)
		}
		m.log.Info("changes committed")
		return true, nil
	default:
		if err := tx.Rollback(); err != nil {
			return false, fmt.Errorf("failed to roll back session: %w", err)
		}
		m.log.Warn("changes discarded, not committed")
		return false, nil
	}
}
