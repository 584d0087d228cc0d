package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feedpulse/feedpulse/internal/freshness"
	"github.com/feedpulse/feedpulse/internal/model"
	"github.com/feedpulse/feedpulse/internal/series"
)

type fakeStore struct {
	snaps    []model.SupplierSnapshot
	activity map[string][]series.TimePoint
}

func (f *fakeStore) Suppliers() ([]model.SupplierSnapshot, error) { return f.snaps, nil }
func (f *fakeStore) AllActivitySeries(int) (map[string][]series.TimePoint, error) {
	return f.activity, nil
}

func testStore() *fakeStore {
	now := time.Now()
	return &fakeStore{
		snaps: []model.SupplierSnapshot{
			{Name: "acme", LastUpdated: now.Add(-time.Hour).Format(time.RFC3339), RecordCount: 1200},
			{Name: "globex", LastUpdated: now.Add(-30 * time.Hour).Format(time.RFC3339), RecordCount: 50, ErrorCount: 3},
		},
		activity: map[string][]series.TimePoint{
			"registrations": {{Date: "2024-01-01", Value: 4}},
			"logins":        {{Date: "2024-01-02", Value: 9}},
			"api_requests":  {{Date: "2024-01-01", Value: 100}},
		},
	}
}

func loadedDashboard(t *testing.T) *Dashboard {
	t.Helper()
	d := NewDashboard(testStore(), Config{})

	msg := d.refreshCmd()()
	loaded, ok := msg.(dataLoadedMsg)
	if !ok {
		t.Fatalf("refreshCmd returned %T, want dataLoadedMsg", msg)
	}
	if loaded.err != nil {
		t.Fatalf("refresh failed: %v", loaded.err)
	}

	m, _ := d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	d = m.(*Dashboard)
	m, _ = d.Update(loaded)
	return m.(*Dashboard)
}

func TestRefresh_DerivesClassificationAndAlignment(t *testing.T) {
	d := loadedDashboard(t)

	if len(d.classified) != 2 {
		t.Fatalf("got %d classified, want 2", len(d.classified))
	}
	if d.summary.Fresh.Count != 1 || d.summary.Outdated.Count != 1 {
		t.Errorf("unexpected summary: %+v", d.summary)
	}
	if len(d.rows) != 2 {
		t.Fatalf("got %d aligned rows, want 2", len(d.rows))
	}
	if d.rows[0].Date != "2024-01-01" || d.rows[1].Date != "2024-01-02" {
		t.Errorf("rows not sorted: %s, %s", d.rows[0].Date, d.rows[1].Date)
	}
	if _, ok := d.rows[1].Values["registrations"]; ok {
		t.Errorf("registrations present on unreported date")
	}
}

func TestView_RendersPanels(t *testing.T) {
	d := loadedDashboard(t)

	view := d.View()
	if !strings.Contains(view, "Suppliers (2 tracked)") {
		t.Errorf("view missing freshness panel title")
	}
	if !strings.Contains(view, "Daily Activity") {
		t.Errorf("view missing activity panel title")
	}
	if !strings.Contains(view, "acme") {
		t.Errorf("view missing supplier table rows")
	}
}

func TestUpdate_PauseFreezesRefresh(t *testing.T) {
	d := loadedDashboard(t)

	m, _ := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	d = m.(*Dashboard)
	if !d.paused {
		t.Fatal("p did not pause")
	}

	// While paused a tick reschedules itself without refreshing.
	before := d.lastRefreshed
	m, _ = d.Update(TickMsg(time.Now()))
	d = m.(*Dashboard)
	if d.tickInFlight {
		t.Error("paused tick started a refresh")
	}
	if d.lastRefreshed != before {
		t.Error("paused tick changed data")
	}
}

func TestUpdate_TabCyclesPanels(t *testing.T) {
	d := loadedDashboard(t)

	if d.activePanel != panelFreshness {
		t.Fatalf("initial panel = %d", d.activePanel)
	}
	m, _ := d.Update(tea.KeyMsg{Type: tea.KeyTab})
	d = m.(*Dashboard)
	if d.activePanel != panelActivity {
		t.Errorf("after tab: panel = %d, want %d", d.activePanel, panelActivity)
	}
	m, _ = d.Update(tea.KeyMsg{Type: tea.KeyTab})
	d = m.(*Dashboard)
	if d.activePanel != panelFreshness {
		t.Errorf("tab did not wrap: panel = %d", d.activePanel)
	}
}

func TestVisibleRows_TrimsToNewest(t *testing.T) {
	rows := []series.AlignedRow{
		{Date: "2024-01-01"}, {Date: "2024-01-02"}, {Date: "2024-01-03"},
	}

	got := visibleRows(rows, 2)
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].Date != "2024-01-02" || got[1].Date != "2024-01-03" {
		t.Errorf("kept wrong rows: %+v", got)
	}

	if len(visibleRows(rows, 5)) != 3 {
		t.Errorf("short input should pass through untrimmed")
	}
}

func TestTierStyleUsesClassifierColors(t *testing.T) {
	for _, tier := range []freshness.Tier{freshness.TierFresh, freshness.TierStale, freshness.TierOutdated} {
		style := tierStyle(tier)
		if style.GetForeground() != style.GetBackground() {
			t.Errorf("tier %s: bar style should fill with one color", tier)
		}
	}
}
