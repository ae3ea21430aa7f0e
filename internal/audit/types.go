// Package audit persists permission lifecycle events durably in a
// SQLite-backed append-only log: node set/unset/expire and
// group-remove events emitted by a Holder.
package audit

import (
	"context"

	"github.com/permlattice/permlattice/internal/permission"
)

// LogFilters narrows a GetLogs query.
type LogFilters struct {
	ObjectName string
	Kind       string // permission.EventKind.String()
	StartDate  int64  // Unix timestamp
	EndDate    int64
	Page       int
	PageSize   int
}

// LogEntry is a stored audit record.
type LogEntry struct {
	ID         int64  `json:"id"`
	Timestamp  int64  `json:"timestamp"`
	ObjectName string `json:"object_name"`
	Kind       string `json:"kind"`
	Permission string `json:"permission,omitempty"`
	Value      bool   `json:"value,omitempty"`
	Transient  bool   `json:"transient"`
	GroupName  string `json:"group_name,omitempty"`
}

// Store is the durable audit backend. SQLiteStore additionally
// implements permission.EventSink through its Emit method (see
// sqlite.go); the CLI registers it on an eventbus.Dispatcher through a
// small adapter to eventbus.Output.
type Store interface {
	LogEvent(ctx context.Context, event permission.Event) error
	GetLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, int, error)
	PurgeLogs(ctx context.Context, olderThanDays int) (int, error)
	Close() error
}
