package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/kyelljensen/kjcore/logging"
)

// Migration adds a single column to an existing table. Additive migrations
// are idempotent: applying the same list twice is harmless.
type Migration struct {
	Table  string
	Column string
	Def    string
}

// SchemaVersion reads the database schema version (PRAGMA user_version).
func (m *Manager) SchemaVersion() (int, error) {
	var version int
	if err := m.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetSchemaVersion stores the schema version.
func (m *Manager) SetSchemaVersion(version int) error {
	if _, err := m.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

// EnsureSchema executes a caller-supplied DDL block (CREATE TABLE IF NOT
// EXISTS statements) and records the schema version when it is higher than
// what the database already carries.
func (m *Manager) EnsureSchema(ddl string, version int) error {
	timer := logging.StartTimer("database", "EnsureSchema")
	defer timer.Stop()

	if _, err := m.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	current, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if version > current {
		if err := m.SetSchemaVersion(version); err != nil {
			return err
		}
		m.log.Info("schema version updated", zap.Int("from", current), zap.Int("to", version))
	}
	return nil
}

// RunMigrations applies additive column migrations. Migrations against
// missing tables are skipped quietly so one list can serve databases at
// different ages.
func (m *Manager) RunMigrations(migrations []Migration) error {
	timer := logging.StartTimer("database", "RunMigrations")
	defer timer.Stop()

	applied, skipped := 0, 0
	for _, mig := range migrations {
		if !tableExists(m.db, mig.Table) {
			skipped++
			continue
		}
		if columnExists(m.db, mig.Table, mig.Column) {
			skipped++
			continue
		}

		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", mig.Table, mig.Column, mig.Def)
		if _, err := m.db.Exec(query); err != nil {
			return fmt.Errorf("failed to apply migration %s.%s: %w", mig.Table, mig.Column, err)
		}
		m.log.Info("migration applied",
			zap.String("table", mig.Table),
			zap.String("column", mig.Column))
		applied++
	}

	m.log.Info("migrations complete", zap.Int("applied", applied), zap.Int("skipped", skipped))
	return nil
}

// tableExists checks sqlite_master for a user table.
func tableExists(db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&name)
	return err == nil
}

// columnExists checks PRAGMA table_info for a column.
func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
