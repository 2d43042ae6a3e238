package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Tables lists the user tables of the database in name order, excluding
// SQLite's internal tables.
func (m *Manager) Tables(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// SnakeCase converts a CamelCase table name to snake_case, e.g.
// "ShockAbsorber" -> "shock_absorber".
func SnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ScaffoldFiles writes one Go stub file per table into dir, named after the
// snake_cased table. Existing files are left untouched so hand-edited
// models survive a re-run.
func (m *Manager) ScaffoldFiles(tables []string, dir, pkg string) ([]string, error) {
	if pkg == "" {
		pkg = "models"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scaffold directory: %w", err)
	}

	var written []string
	for _, table := range tables {
		path := filepath.Join(dir, SnakeCase(table)+".go")
		if _, err := os.Stat(path); err == nil {
			m.log.Warn("scaffold exists, skipping", zap.String("file", path))
			continue
		}

		stub := fmt.Sprintf("package %s\n\n// %s models a row of the %s table.\ntype %s struct {\n\tID int64\n}\n",
			pkg, table, SnakeCase(table), table)
		if err := os.WriteFile(path, []byte(stub), 0644); err != nil {
			return written, fmt.Errorf("failed to write scaffold %s: %w", path, err)
		}
		written = append(written, path)
		m.log.Info("scaffold written", zap.String("file", path))
	}
	return written, nil
}
