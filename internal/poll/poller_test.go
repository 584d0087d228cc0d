package poll

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/feedpulse/feedpulse/internal/duckdb"
	"github.com/feedpulse/feedpulse/internal/fetch"
)

func upstreamStub(t *testing.T, loginsBroken bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/suppliers":
			w.Write([]byte(`[{"name":"acme","last_updated":"2024-01-15T10:00:00Z","record_count":3}]`))
		case strings.HasPrefix(r.URL.Path, "/activity/logins") && loginsBroken:
			w.WriteHeader(http.StatusBadRequest)
		case strings.HasPrefix(r.URL.Path, "/activity/"):
			w.Write([]byte(`[{"date":"` + time.Now().Format("2006-01-02") + `","value":4}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestStore(t *testing.T) *duckdb.Store {
	t.Helper()
	store, err := duckdb.NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPollOnce_PersistsEverything(t *testing.T) {
	srv := upstreamStub(t, false)
	defer srv.Close()

	store := newTestStore(t)
	client := fetch.New(srv.URL, fetch.Config{RequestsPerSec: 1000, Burst: 1000, MaxElapsed: time.Second})
	p := New(client, store, Config{HistoryDays: 7}, nil)

	p.Once(context.Background())

	count, err := store.TotalSupplierCount()
	if err != nil {
		t.Fatalf("TotalSupplierCount: %v", err)
	}
	if count != 1 {
		t.Errorf("supplier count = %d, want 1", count)
	}

	all, err := store.AllActivitySeries(7)
	if err != nil {
		t.Fatalf("AllActivitySeries: %v", err)
	}
	for metric, points := range all {
		if len(points) != 1 {
			t.Errorf("metric %s: %d points, want 1", metric, len(points))
		}
	}
}

func TestPollOnce_OneBadFeedDoesNotBlockOthers(t *testing.T) {
	srv := upstreamStub(t, true)
	defer srv.Close()

	store := newTestStore(t)
	client := fetch.New(srv.URL, fetch.Config{RequestsPerSec: 1000, Burst: 1000, MaxElapsed: time.Second})
	p := New(client, store, Config{HistoryDays: 7}, nil)

	p.Once(context.Background())

	logins, err := store.ActivitySeries("logins", 7)
	if err != nil {
		t.Fatalf("ActivitySeries(logins): %v", err)
	}
	if len(logins) != 0 {
		t.Errorf("broken feed still stored %d points", len(logins))
	}

	regs, err := store.ActivitySeries("registrations", 7)
	if err != nil {
		t.Fatalf("ActivitySeries(registrations): %v", err)
	}
	if len(regs) != 1 {
		t.Errorf("sibling feed lost: %d points, want 1", len(regs))
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := upstreamStub(t, false)
	defer srv.Close()

	store := newTestStore(t)
	client := fetch.New(srv.URL, fetch.Config{RequestsPerSec: 1000, Burst: 1000, MaxElapsed: time.Second})
	p := New(client, store, Config{Interval: 10 * time.Millisecond, HistoryDays: 7}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := p.Run(ctx); err != context.DeadlineExceeded {
		t.Errorf("Run returned %v, want context.DeadlineExceeded", err)
	}
}
