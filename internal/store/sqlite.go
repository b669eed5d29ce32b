package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/honeylab/scambait/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteArchive implements Repository using SQLite.
type SQLiteArchive struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-backed report archive.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode keeps report writes from blocking the health endpoint's reads.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	archive := &SQLiteArchive{db: db}
	if err := archive.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return archive, nil
}

func (s *SQLiteArchive) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS reports (
		report_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		category TEXT NOT NULL,
		turn_count INTEGER NOT NULL,
		payload_json TEXT NOT NULL,
		delivered INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reports_session ON reports(session_id);
	CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteArchive) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveReport journals a dispatched report. SQLITE_BUSY conflicts are
// retried with a short backoff since the dispatcher and the ops
// endpoints share the database.
func (s *SQLiteArchive) SaveReport(ctx context.Context, rec *domain.ReportRecord) error {
	query := `
	INSERT INTO reports (report_id, session_id, category, turn_count, payload_json, delivered, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(report_id) DO UPDATE SET
		delivered = excluded.delivered`

	delivered := 0
	if rec.Delivered {
		delivered = 1
	}

	var err error
	delay := 100 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		_, err = s.db.ExecContext(ctx, query,
			rec.ReportID, rec.SessionID, string(rec.Category), rec.TurnCount,
			rec.PayloadJSON, delivered, rec.CreatedAt.Unix(),
		)
		if err == nil {
			return nil
		}
		if !isSQLiteConflict(err) || ctx.Err() != nil {
			break
		}
		time.Sleep(delay)
		delay *= 2
	}
	return fmt.Errorf("save report %s: %w", rec.ReportID, err)
}

// RecentReports returns the newest records, most recent first.
func (s *SQLiteArchive) RecentReports(ctx context.Context, limit int) ([]*domain.ReportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
	SELECT report_id, session_id, category, turn_count, payload_json, delivered, created_at
	FROM reports ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var records []*domain.ReportRecord
	for rows.Next() {
		var rec domain.ReportRecord
		var category string
		var delivered int
		var createdAt int64
		if err := rows.Scan(&rec.ReportID, &rec.SessionID, &category,
			&rec.TurnCount, &rec.PayloadJSON, &delivered, &createdAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		rec.Category = domain.ScamCategory(category)
		rec.Delivered = delivered != 0
		rec.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// CountReports returns the total number of archived reports.
func (s *SQLiteArchive) CountReports(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *SQLiteArchive) Close() error {
	return s.db.Close()
}

// isSQLiteConflict reports whether err is a SQLITE_BUSY/locked error
// worth retrying.
func isSQLiteConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
