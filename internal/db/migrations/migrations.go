// Package migrations provides a generic, version-tracked SQLite
// schema migrator. The engine has no opinion about what schema it's
// migrating, only versions.go below does.
package migrations

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Migration represents a single database migration.
type Migration struct {
	Version     int
	Description string
	Up          func(*sql.Tx) error
	Down        func(*sql.Tx) error
}

// MigrationManager applies pending migrations in version order,
// recording each in a schema_version table so re-running Migrate is a
// no-op once the database is current.
type MigrationManager struct {
	db         *sql.DB
	migrations []Migration
	logger     *logrus.Logger
}

// NewMigrationManager builds a manager for this package's known
// migration set (see versions.go).
func NewMigrationManager(db *sql.DB, logger *logrus.Logger) *MigrationManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &MigrationManager{db: db, migrations: getAllMigrations(), logger: logger}
}

// Initialize creates the schema_version table if it doesn't exist.
func (m *MigrationManager) Initialize() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("migrations: create schema_version table: %w", err)
	}
	return nil
}

// GetCurrentVersion returns the highest applied migration version.
func (m *MigrationManager) GetCurrentVersion() (int, error) {
	var version int
	err := m.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("migrations: get current version: %w", err)
	}
	return version, nil
}

// GetTargetVersion returns the highest migration version known to
// this binary.
func (m *MigrationManager) GetTargetVersion() int {
	max := 0
	for _, mig := range m.migrations {
		if mig.Version > max {
			max = mig.Version
		}
	}
	return max
}

// Migrate brings the database up to the highest known version.
func (m *MigrationManager) Migrate() error {
	if err := m.Initialize(); err != nil {
		return err
	}

	current, err := m.GetCurrentVersion()
	if err != nil {
		return err
	}
	target := m.GetTargetVersion()

	if current == target {
		m.logger.Infof("permission_events schema up to date (version %d)", current)
		return nil
	}
	if current > target {
		return fmt.Errorf("migrations: database schema version (%d) is newer than this binary supports (%d)", current, target)
	}

	m.logger.Infof("migrating permission_events schema from version %d to %d", current, target)

	sort.Slice(m.migrations, func(i, j int) bool { return m.migrations[i].Version < m.migrations[j].Version })

	for _, mig := range m.migrations {
		if mig.Version <= current || mig.Version > target {
			continue
		}
		if err := m.runMigration(mig); err != nil {
			return fmt.Errorf("migrations: migration %d (%s) failed: %w", mig.Version, mig.Description, err)
		}
		m.logger.Infof("applied migration %d: %s", mig.Version, mig.Description)
	}

	return nil
}

func (m *MigrationManager) runMigration(migration Migration) (err error) {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("migrations: begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = migration.Up(tx); err != nil {
		return fmt.Errorf("migrations: run migration: %w", err)
	}

	if _, err = tx.Exec(
		"INSERT INTO schema_version (version, description, applied_at) VALUES (?, ?, ?)",
		migration.Version, migration.Description, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("migrations: record migration: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migrations: commit transaction: %w", err)
	}
	return nil
}

// MigrationRecord is one applied migration, as recorded in
// schema_version.
type MigrationRecord struct {
	Version     int
	Description string
	AppliedAt   time.Time
}

// GetMigrationHistory returns every applied migration, oldest first.
func (m *MigrationManager) GetMigrationHistory() ([]MigrationRecord, error) {
	rows, err := m.db.Query(`SELECT version, description, applied_at FROM schema_version ORDER BY version ASC`)
	if err != nil {
		return nil, fmt.Errorf("migrations: query history: %w", err)
	}
	defer rows.Close()

	var history []MigrationRecord
	for rows.Next() {
		var rec MigrationRecord
		var appliedAt int64
		if err := rows.Scan(&rec.Version, &rec.Description, &appliedAt); err != nil {
			return nil, fmt.Errorf("migrations: scan history row: %w", err)
		}
		rec.AppliedAt = time.Unix(appliedAt, 0)
		history = append(history, rec)
	}
	return history, rows.Err()
}
