package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	metricsdb "foodgram/internal/metrics/metrics_db"
	"foodgram/internal/shopping"
)

// ExportMetric records metadata for a single shopping list export.
type ExportMetric struct {
	UserID    int64
	Format    string
	LineCount int
	PageCount int
	LatencyMS int64
	Timestamp time.Time
}

// Store handles persistence of export metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	now     func() time.Time
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		now:     time.Now,
	}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m ExportMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	err := s.queries.InsertExportMetric(ctx, metricsdb.InsertExportMetricParams{
		UserID:    m.UserID,
		Format:    m.Format,
		LineCount: int64(m.LineCount),
		PageCount: int64(m.PageCount),
		LatencyMs: m.LatencyMS,
		CreatedAt: ts.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to record export metric: %w", err)
	}
	return nil
}

// RecordExport updates the Prometheus collectors and persists the export.
// It satisfies shopping.ExportRecorder.
func (s *Store) RecordExport(ctx context.Context, e shopping.ExportEvent) error {
	ObserveExport(e)
	return s.Record(ctx, MapExport(e))
}

// DailyUsage represents export totals for a single day.
type DailyUsage struct {
	Date         string
	Exports      int
	TotalLines   int
	TotalPages   int
	AvgLatencyMS float64
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := s.now().AddDate(0, 0, -days).UTC()
	rows, err := s.queries.GetDailyUsage(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}

	results := make([]DailyUsage, 0, len(rows))
	for _, r := range rows {
		u := DailyUsage{
			Exports: int(r.Count),
		}

		if day, ok := r.Day.(string); ok {
			u.Date = day
		} else {
			u.Date = "Unknown"
		}

		if r.Sum.Valid {
			u.TotalLines = int(r.Sum.Float64)
		}
		if r.Sum_2.Valid {
			u.TotalPages = int(r.Sum_2.Float64)
		}
		if r.Avg.Valid {
			u.AvgLatencyMS = r.Avg.Float64
		}

		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := s.now().AddDate(0, 0, -olderThanDays).UTC()
	n, err := s.queries.CleanupExportMetrics(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up export metrics: %w", err)
	}
	return n, nil
}

// MapExport converts a shopping.ExportEvent to an ExportMetric.
func MapExport(e shopping.ExportEvent) ExportMetric {
	return ExportMetric{
		UserID:    e.UserID,
		Format:    string(e.Format),
		LineCount: e.Lines,
		PageCount: e.Pages,
		LatencyMS: e.Latency.Milliseconds(),
		Timestamp: time.Now().UTC(),
	}
}
