package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      string
}

// documentTable returns the DDL for a JSON document table.
func documentTable(name string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id TEXT PRIMARY KEY,
			doc TEXT NOT NULL CHECK (json_valid(doc)),
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%[1]s_created ON %[1]s(created_at);
	`, name)
}

// migrations holds all database migrations in order.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "document_tables",
		Up: documentTable(collUsers) +
			documentTable(collProfiles) +
			documentTable(collProjects) +
			documentTable(collMentors) +
			documentTable(collGrants) +
			documentTable(collLaunches) +
			documentTable(collSubscribers),
	},
	{
		Version: 2,
		Name:    "unique_indexes",
		Up: `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(json_extract(doc, '$.username'));
			CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(json_extract(doc, '$.email'));
			CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_user ON profiles(json_extract(doc, '$.userId'));
			CREATE UNIQUE INDEX IF NOT EXISTS idx_launches_project ON launches(json_extract(doc, '$.projectId'));
			CREATE UNIQUE INDEX IF NOT EXISTS idx_subscribers_email ON subscribers(json_extract(doc, '$.email'));
		`,
	},
	{
		Version: 3,
		Name:    "lookup_indexes",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(json_extract(doc, '$.ownerId'));
			CREATE INDEX IF NOT EXISTS idx_users_role ON users(json_extract(doc, '$.role'));
			CREATE INDEX IF NOT EXISTS idx_grants_type ON grants(json_extract(doc, '$.type'));
		`,
	},
}

// runMigrations applies all pending migrations.
func runMigrations(ctx context.Context, db *sql.DB) error {
	// Create migrations table if not exists
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	err = db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	// Apply pending migrations
	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		// Run migration in transaction
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction for migration %d: %w", m.Version, err)
		}

		if _, err := tx.ExecContext(ctx, m.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d (%s): %w", m.Version, m.Name, err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Name, time.Now().UTC(),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
