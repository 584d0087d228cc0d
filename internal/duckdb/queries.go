package duckdb

import (
	"fmt"
	"time"

	"github.com/feedpulse/feedpulse/internal/model"
	"github.com/feedpulse/feedpulse/internal/series"
)

// Suppliers returns the stored supplier snapshots ordered by name.
func (s *Store) Suppliers() ([]model.SupplierSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, last_updated, record_count, error_count FROM suppliers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying suppliers: %w", err)
	}
	defer rows.Close()

	var snaps []model.SupplierSnapshot
	for rows.Next() {
		var snap model.SupplierSnapshot
		if err := rows.Scan(&snap.Name, &snap.LastUpdated, &snap.RecordCount, &snap.ErrorCount); err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// TotalSupplierCount returns the number of stored suppliers.
func (s *Store) TotalSupplierCount() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM suppliers").Scan(&count)
	return count, err
}

// ActivitySeries returns one metric's stored points for the last days
// calendar days, oldest first.
func (s *Store) ActivitySeries(metric string, days int) ([]series.TimePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	rows, err := s.db.QueryContext(ctx,
		"SELECT date, value FROM activity WHERE metric = ? AND date >= ? ORDER BY date",
		metric, cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying %s activity: %w", metric, err)
	}
	defer rows.Close()

	var points []series.TimePoint
	for rows.Next() {
		var p series.TimePoint
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// AllActivitySeries returns every tracked metric's stored points keyed by
// metric name, ready for alignment.
func (s *Store) AllActivitySeries(days int) (map[string][]series.TimePoint, error) {
	out := make(map[string][]series.TimePoint, len(model.ActivityMetrics))
	for _, metric := range model.ActivityMetrics {
		points, err := s.ActivitySeries(metric, days)
		if err != nil {
			return nil, err
		}
		out[metric] = points
	}
	return out, nil
}

// PruneActivity deletes activity rows older than the given number of days
// and reports how many were removed.
func (s *Store) PruneActivity(olderThanDays int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -olderThanDays).Format("2006-01-02")
	res, err := s.db.ExecContext(ctx, "DELETE FROM activity WHERE date < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning activity: %w", err)
	}
	return res.RowsAffected()
}
