// Package tui renders the supplier freshness dashboard in the terminal.
package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feedpulse/feedpulse/internal/format"
	"github.com/feedpulse/feedpulse/internal/freshness"
	"github.com/feedpulse/feedpulse/internal/model"
	"github.com/feedpulse/feedpulse/internal/series"
	"github.com/feedpulse/feedpulse/internal/skin"
)

// Panel indexes for tab navigation.
const (
	panelFreshness = iota
	panelActivity
	panelCount
)

// Store is the narrow store contract required by the dashboard.
type Store interface {
	Suppliers() ([]model.SupplierSnapshot, error)
	AllActivitySeries(days int) (map[string][]series.TimePoint, error)
}

// TickMsg drives the periodic refresh.
type TickMsg time.Time

// dataLoadedMsg carries one refresh cycle's derived data back to the model.
type dataLoadedMsg struct {
	classified   []freshness.Classified
	classifyErrs []freshness.ClassifyError
	summary      freshness.Summary
	rows         []series.AlignedRow
	alignErrs    []series.DuplicateDateError
	err          error
}

// Config holds dashboard construction parameters.
type Config struct {
	Thresholds     freshness.Thresholds
	UpdateInterval time.Duration
	HistoryDays    int
	Skin           skin.Skin
}

// Dashboard is the top-level Bubble Tea model.
type Dashboard struct {
	store          Store
	thresholds     freshness.Thresholds
	updateInterval time.Duration
	historyDays    int
	keys           KeyMap
	styles         styles

	width  int
	height int

	activePanel   int
	paused        bool
	tickInFlight  bool
	lastRefreshed time.Time
	lastError     string

	classified   []freshness.Classified
	classifyErrs []freshness.ClassifyError
	summary      freshness.Summary
	rows         []series.AlignedRow
	alignErrs    []series.DuplicateDateError

	supplierTable table.Model
}

// NewDashboard creates the dashboard model.
func NewDashboard(store Store, conf Config) *Dashboard {
	interval := conf.UpdateInterval
	if interval <= 0 {
		interval = model.DefaultUpdateInterval
	}
	historyDays := conf.HistoryDays
	if historyDays <= 0 {
		historyDays = model.DefaultHistoryDays
	}
	th := conf.Thresholds
	if th == (freshness.Thresholds{}) {
		th = freshness.DefaultThresholds
	}
	sk := conf.Skin
	if sk == (skin.Skin{}) {
		sk = skin.Default()
	}

	t := table.New(
		table.WithColumns(supplierColumns(60)),
		table.WithHeight(8),
		table.WithFocused(true),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true)
	t.SetStyles(ts)

	return &Dashboard{
		store:          store,
		thresholds:     th,
		updateInterval: interval,
		historyDays:    historyDays,
		keys:           DefaultKeyMap(),
		styles:         newStyles(sk),
		supplierTable:  t,
	}
}

func supplierColumns(width int) []table.Column {
	nameWidth := width - 46
	if nameWidth < 12 {
		nameWidth = 12
	}
	return []table.Column{
		{Title: "Supplier", Width: nameWidth},
		{Title: "Tier", Width: 9},
		{Title: "Age", Width: 6},
		{Title: "Hours", Width: 7},
		{Title: "Records", Width: 9},
		{Title: "Errors", Width: 7},
	}
}

func (d *Dashboard) Init() tea.Cmd {
	return tea.Batch(d.refreshCmd(), d.tickCmd())
}

func (d *Dashboard) tickCmd() tea.Cmd {
	return tea.Tick(d.updateInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// refreshCmd queries the store and derives display data off the update
// loop. Classification and alignment both take the clock value captured
// here, so one refresh sees one consistent "now".
func (d *Dashboard) refreshCmd() tea.Cmd {
	store := d.store
	th := d.thresholds
	historyDays := d.historyDays
	return func() tea.Msg {
		now := time.Now()

		snaps, err := store.Suppliers()
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		res, err := freshness.ClassifyAll(snaps, th, now)
		if err != nil {
			return dataLoadedMsg{err: err}
		}

		input, err := store.AllActivitySeries(historyDays)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		rows, alignErrs := series.Align(input)

		return dataLoadedMsg{
			classified:   res.Classified,
			classifyErrs: res.Errors,
			summary:      freshness.Summarize(res.Classified),
			rows:         rows,
			alignErrs:    alignErrs,
		}
	}
}

func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.supplierTable.SetColumns(supplierColumns(d.panelWidth()))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, d.keys.Quit), key.Matches(msg, d.keys.ForceQuit):
			return d, tea.Quit
		case key.Matches(msg, d.keys.NextPanel):
			d.activePanel = (d.activePanel + 1) % panelCount
		case key.Matches(msg, d.keys.Pause):
			d.paused = !d.paused
		default:
			if d.activePanel == panelFreshness {
				var cmd tea.Cmd
				d.supplierTable, cmd = d.supplierTable.Update(msg)
				return d, cmd
			}
		}

	case TickMsg:
		if d.paused || d.tickInFlight {
			return d, d.tickCmd()
		}
		d.tickInFlight = true
		return d, tea.Batch(d.refreshCmd(), d.tickCmd())

	case dataLoadedMsg:
		d.tickInFlight = false
		if msg.err != nil {
			d.lastError = msg.err.Error()
			return d, nil
		}
		d.lastError = ""
		d.lastRefreshed = time.Now()
		d.classified = msg.classified
		d.classifyErrs = msg.classifyErrs
		d.summary = msg.summary
		d.rows = msg.rows
		d.alignErrs = msg.alignErrs
		d.supplierTable.SetRows(d.supplierRows())
	}

	return d, nil
}

func (d *Dashboard) supplierRows() []table.Row {
	now := d.lastRefreshed
	rows := make([]table.Row, 0, len(d.classified))
	for _, c := range d.classified {
		age := "-"
		if ts, err := time.Parse(time.RFC3339, c.LastUpdated); err == nil {
			age = strconv.Itoa(format.DaysSince(ts, now)) + "d"
		}
		rows = append(rows, table.Row{
			c.Name,
			string(c.Tier),
			age,
			fmt.Sprintf("%.1f", c.HoursAgo),
			format.Magnitude(float64(c.RecordCount)),
			format.Magnitude(float64(c.ErrorCount)),
		})
	}
	return rows
}

func (d *Dashboard) panelWidth() int {
	w := d.width - 4
	if w < 40 {
		w = 40
	}
	return w
}

func (d *Dashboard) View() string {
	if d.width == 0 {
		return "Loading..."
	}

	header := d.styles.Header.Width(d.width).Render("FeedPulse — Supplier Freshness")

	freshnessPanel := d.renderFreshnessPanel(d.panelWidth(), d.activePanel == panelFreshness)
	activityPanel := d.renderActivityPanel(d.panelWidth(), d.activePanel == panelActivity)

	status := d.renderStatusLine()

	return lipgloss.JoinVertical(lipgloss.Left, header, freshnessPanel, activityPanel, status)
}

func (d *Dashboard) renderStatusLine() string {
	state := "live"
	if d.paused {
		state = "paused"
	}

	refreshed := "never"
	if !d.lastRefreshed.IsZero() {
		refreshed = d.lastRefreshed.Format("15:04:05")
	}

	line := fmt.Sprintf("%s | refreshed %s | q quit · tab panel · p pause", state, refreshed)
	if d.lastError != "" {
		line += " | " + d.styles.ErrorText.Render(d.lastError)
	}
	return d.styles.StatusLine.Width(d.width).Render(line)
}
