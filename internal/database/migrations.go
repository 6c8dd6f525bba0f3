package database

import (
	"database/sql"
	"fmt"
)

// Migration represents a versioned schema change.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of schema changes, embedded so the binary
// carries its own schema.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_analysis_tasks",
		SQL: `
			CREATE TABLE IF NOT EXISTS analysis_tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				diagnostic TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				params_json TEXT NOT NULL DEFAULT '',
				start_time INTEGER NOT NULL DEFAULT 0,
				end_time INTEGER NOT NULL DEFAULT 0,
				result_json TEXT NOT NULL DEFAULT '',
				error_message TEXT NOT NULL DEFAULT '',
				created_by TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 2,
		Name:    "index_analysis_tasks_status",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_analysis_tasks_status
			ON analysis_tasks (status, created_at)
		`,
	},
}

// Migrate applies every unapplied migration in version order.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}
