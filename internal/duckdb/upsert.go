package duckdb

import (
	"fmt"
	"time"

	"github.com/feedpulse/feedpulse/internal/model"
	"github.com/feedpulse/feedpulse/internal/series"
)

// ReplaceSuppliers swaps the stored supplier set for the latest poll's
// snapshots in a single transaction. Suppliers dropped upstream disappear
// here too.
func (s *Store) ReplaceSuppliers(snaps []model.SupplierSnapshot, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin suppliers replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM suppliers"); err != nil {
		return fmt.Errorf("clearing suppliers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO suppliers (name, last_updated, record_count, error_count, fetched_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing suppliers insert: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snaps {
		if _, err := stmt.ExecContext(ctx, snap.Name, snap.LastUpdated, snap.RecordCount, snap.ErrorCount, fetchedAt); err != nil {
			return fmt.Errorf("inserting supplier %s: %w", snap.Name, err)
		}
	}

	return tx.Commit()
}

// UpsertActivity writes one metric's daily points, overwriting any value
// already stored for the same (metric, date).
func (s *Store) UpsertActivity(metric string, points []series.TimePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activity upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activity (metric, date, value) VALUES (?, ?, ?)
		ON CONFLICT (metric, date) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return fmt.Errorf("preparing activity upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, metric, p.Date, p.Value); err != nil {
			return fmt.Errorf("upserting %s@%s: %w", metric, p.Date, err)
		}
	}

	return tx.Commit()
}
