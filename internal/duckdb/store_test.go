package duckdb

import (
	"testing"
	"time"

	"github.com/feedpulse/feedpulse/internal/model"
	"github.com/feedpulse/feedpulse/internal/series"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore(\"\") failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestReplaceSuppliers(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	first := []model.SupplierSnapshot{
		{Name: "acme", LastUpdated: "2024-01-15T10:00:00Z", RecordCount: 42, ErrorCount: 1},
		{Name: "globex", LastUpdated: "2024-01-14T08:00:00Z", RecordCount: 7},
	}
	if err := store.ReplaceSuppliers(first, now); err != nil {
		t.Fatalf("ReplaceSuppliers: %v", err)
	}

	snaps, err := store.Suppliers()
	if err != nil {
		t.Fatalf("Suppliers: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d suppliers, want 2", len(snaps))
	}
	if snaps[0].Name != "acme" || snaps[1].Name != "globex" {
		t.Errorf("suppliers not ordered by name: %v, %v", snaps[0].Name, snaps[1].Name)
	}
	if snaps[0].RecordCount != 42 || snaps[0].ErrorCount != 1 {
		t.Errorf("acme fields wrong: %+v", snaps[0])
	}

	// A later poll fully replaces the set.
	second := []model.SupplierSnapshot{
		{Name: "initech", LastUpdated: "2024-01-15T11:00:00Z", RecordCount: 9},
	}
	if err := store.ReplaceSuppliers(second, now); err != nil {
		t.Fatalf("ReplaceSuppliers: %v", err)
	}

	count, err := store.TotalSupplierCount()
	if err != nil {
		t.Fatalf("TotalSupplierCount: %v", err)
	}
	if count != 1 {
		t.Errorf("TotalSupplierCount = %d, want 1", count)
	}
}

func TestUpsertActivity_OverwritesSameDate(t *testing.T) {
	store := newTestStore(t)
	today := time.Now().Format("2006-01-02")

	if err := store.UpsertActivity("logins", []series.TimePoint{{Date: today, Value: 5}}); err != nil {
		t.Fatalf("UpsertActivity: %v", err)
	}
	if err := store.UpsertActivity("logins", []series.TimePoint{{Date: today, Value: 8}}); err != nil {
		t.Fatalf("UpsertActivity (overwrite): %v", err)
	}

	points, err := store.ActivitySeries("logins", 7)
	if err != nil {
		t.Fatalf("ActivitySeries: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].Value != 8 {
		t.Errorf("value = %v, want overwritten 8", points[0].Value)
	}
}

func TestAllActivitySeries(t *testing.T) {
	store := newTestStore(t)
	today := time.Now().Format("2006-01-02")

	for _, metric := range model.ActivityMetrics {
		if err := store.UpsertActivity(metric, []series.TimePoint{{Date: today, Value: 1}}); err != nil {
			t.Fatalf("UpsertActivity(%s): %v", metric, err)
		}
	}

	all, err := store.AllActivitySeries(7)
	if err != nil {
		t.Fatalf("AllActivitySeries: %v", err)
	}
	if len(all) != len(model.ActivityMetrics) {
		t.Fatalf("got %d metrics, want %d", len(all), len(model.ActivityMetrics))
	}
	for _, metric := range model.ActivityMetrics {
		if len(all[metric]) != 1 {
			t.Errorf("metric %s: got %d points, want 1", metric, len(all[metric]))
		}
	}
}

func TestPruneActivity(t *testing.T) {
	store := newTestStore(t)

	old := time.Now().AddDate(0, 0, -40).Format("2006-01-02")
	recent := time.Now().Format("2006-01-02")
	points := []series.TimePoint{{Date: old, Value: 1}, {Date: recent, Value: 2}}
	if err := store.UpsertActivity("registrations", points); err != nil {
		t.Fatalf("UpsertActivity: %v", err)
	}

	deleted, err := store.PruneActivity(30)
	if err != nil {
		t.Fatalf("PruneActivity: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d rows, want 1", deleted)
	}

	remaining, err := store.ActivitySeries("registrations", 60)
	if err != nil {
		t.Fatalf("ActivitySeries: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Date != recent {
		t.Errorf("wrong survivors: %+v", remaining)
	}
}

func TestRetentionCleaner_DisabledWhenZero(t *testing.T) {
	store := newTestStore(t)
	if rc := NewRetentionCleaner(store, RetentionConfig{RetentionDays: 0}); rc != nil {
		t.Error("expected nil cleaner when retention disabled")
	}
}

func TestRetentionCleaner_StopIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	rc := NewRetentionCleaner(store, RetentionConfig{RetentionDays: 1})
	if rc == nil {
		t.Fatal("expected non-nil retention cleaner")
	}
	rc.Stop()
	rc.Stop()
}
