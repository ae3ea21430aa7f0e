package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/permlattice/permlattice/internal/db/migrations"
	"github.com/permlattice/permlattice/internal/permission"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite, mirroring the reference
// server's audit_logs table shape narrowed to permission events.
type SQLiteStore struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewSQLiteStore opens (creating if absent) a SQLite database at
// dbPath and ensures its schema exists.
func NewSQLiteStore(dbPath string, logger *logrus.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logrus.New()
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("audit: open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &SQLiteStore{db: db, logger: logger}
	if err := migrations.NewMigrationManager(db, logger).Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: migrate schema: %w", err)
	}

	logger.Info("permission audit SQLite store initialized")
	return store, nil
}

// LogEvent records one permission lifecycle event.
func (s *SQLiteStore) LogEvent(ctx context.Context, event permission.Event) error {
	now := time.Now().Unix()

	var perm sql.NullString
	var value sql.NullBool
	if event.Kind != permission.GroupRemove {
		perm = sql.NullString{String: event.Node.Permission(), Valid: true}
		value = sql.NullBool{Bool: event.Node.Value(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO permission_events (
			timestamp, object_name, kind, permission, value, transient, group_name
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, now, event.ObjectName, event.Kind.String(), perm, value, event.Transient, event.GroupName)
	if err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}
	return nil
}

// Emit adapts LogEvent to permission.EventSink, logging (rather than
// propagating) a write failure — an audit sink is a fan-out output,
// not load-bearing for the holder operation that triggered it.
func (s *SQLiteStore) Emit(e permission.Event) {
	if err := s.LogEvent(context.Background(), e); err != nil {
		s.logger.WithError(err).Warn("failed to persist permission audit event")
	}
}

// GetLogs retrieves stored events with filters, most recent first.
func (s *SQLiteStore) GetLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, int, error) {
	where, args := buildWhereClause(filters)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM permission_events %s", where)
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("audit: count events: %w", err)
	}

	page, pageSize := filters.Page, filters.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT id, timestamp, object_name, kind, permission, value, transient, group_name
		FROM permission_events %s
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`, where)

	rows, err := s.db.QueryContext(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("audit: query events: %w", err)
	}
	defer rows.Close()

	logs, err := scanLogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// PurgeLogs deletes events older than olderThanDays.
func (s *SQLiteStore) PurgeLogs(ctx context.Context, olderThanDays int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays).Unix()
	result, err := s.db.ExecContext(ctx, "DELETE FROM permission_events WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("audit: purge events: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("audit: purge row count: %w", err)
	}
	return int(deleted), nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func buildWhereClause(filters LogFilters) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filters.ObjectName != "" {
		conditions = append(conditions, "object_name = ?")
		args = append(args, filters.ObjectName)
	}
	if filters.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, filters.Kind)
	}
	if filters.StartDate > 0 {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filters.StartDate)
	}
	if filters.EndDate > 0 {
		conditions = append(conditions, "timestamp <= ?")
		args = append(args, filters.EndDate)
	}

	if len(conditions) == 0 {
		return "", args
	}
	where := "WHERE " + conditions[0]
	for _, c := range conditions[1:] {
		where += " AND " + c
	}
	return where, args
}

func scanLogs(rows *sql.Rows) ([]*LogEntry, error) {
	var logs []*LogEntry
	for rows.Next() {
		e := &LogEntry{}
		var perm sql.NullString
		var value sql.NullBool
		var groupName sql.NullString

		if err := rows.Scan(&e.ID, &e.Timestamp, &e.ObjectName, &e.Kind, &perm, &value, &e.Transient, &groupName); err != nil {
			return nil, fmt.Errorf("audit: scan event: %w", err)
		}
		e.Permission = perm.String
		e.Value = value.Bool
		e.GroupName = groupName.String
		logs = append(logs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit: iterate events: %w", err)
	}
	return logs, nil
}
