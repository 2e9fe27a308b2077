package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// Tests use this schema via GetSchemaSQL() so repository code and tests
// cannot drift apart. When adding columns or tables, add a migration in
// migrations.go and update SchemaSQL here.
const SchemaSQL = `
-- Properties (durable key-value state, e.g. pending command buffers)
CREATE TABLE IF NOT EXISTS properties (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Delivery log (audit trail of executed, failed and buffered commands)
CREATE TABLE IF NOT EXISTS delivery_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	pass_id TEXT,
	account_id TEXT NOT NULL,
	principal TEXT NOT NULL,
	channel TEXT NOT NULL CHECK(channel IN ('online', 'offline')),
	command_id INTEGER NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('executed', 'failed', 'buffered', 'flushed')),
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_delivery_log_account ON delivery_log(account_id);
`

// InitSchema brings database up to the current schema.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		var propertiesCount int
		err = database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='properties'").Scan(&propertiesCount)
		if err != nil {
			return err
		}
		if propertiesCount > 0 {
			// Pre-versioning database - run migrations to upgrade
			return RunMigrations(database)
		}

		// Completely fresh install - create modern schema directly and mark
		// every migration as applied.
		if _, err := database.Exec(SchemaSQL); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		if err := createVersionTable(database); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	return RunMigrations(database)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
