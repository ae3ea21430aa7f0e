package migrations

import "database/sql"

// getAllMigrations returns the full migration set for the
// permission_events database, in the order they were introduced.
func getAllMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "create permission_events table",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`
					CREATE TABLE IF NOT EXISTS permission_events (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						timestamp INTEGER NOT NULL,
						object_name TEXT NOT NULL,
						kind TEXT NOT NULL,
						permission TEXT,
						value INTEGER,
						transient INTEGER NOT NULL,
						group_name TEXT
					)
				`)
				return err
			},
			Down: func(tx *sql.Tx) error {
				_, err := tx.Exec(`DROP TABLE IF EXISTS permission_events`)
				return err
			},
		},
		{
			Version:     2,
			Description: "index permission_events by timestamp, object_name, kind",
			Up: func(tx *sql.Tx) error {
				statements := []string{
					`CREATE INDEX IF NOT EXISTS idx_permission_events_timestamp ON permission_events(timestamp DESC)`,
					`CREATE INDEX IF NOT EXISTS idx_permission_events_object_name ON permission_events(object_name)`,
					`CREATE INDEX IF NOT EXISTS idx_permission_events_kind ON permission_events(kind)`,
				}
				for _, stmt := range statements {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(tx *sql.Tx) error {
				statements := []string{
					`DROP INDEX IF EXISTS idx_permission_events_timestamp`,
					`DROP INDEX IF EXISTS idx_permission_events_object_name`,
					`DROP INDEX IF EXISTS idx_permission_events_kind`,
				}
				for _, stmt := range statements {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
