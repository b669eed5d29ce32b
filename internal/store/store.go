// Package store provides the report archive: durable, append-only
// records of every final report the honeypot dispatched. The archive is
// write-behind housekeeping — conversation state itself lives in memory.
package store

import (
	"context"

	"github.com/honeylab/scambait/internal/domain"
)

// Repository persists dispatched report records.
type Repository interface {
	// SaveReport journals a dispatched report and its delivery outcome.
	SaveReport(ctx context.Context, rec *domain.ReportRecord) error

	// RecentReports returns the newest records, most recent first.
	RecentReports(ctx context.Context, limit int) ([]*domain.ReportRecord, error)

	// CountReports returns the total number of archived reports.
	CountReports(ctx context.Context) (int64, error)

	// Ping verifies the archive is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying database.
	Close() error
}
