package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/feedpulse/feedpulse/internal/format"
	"github.com/feedpulse/feedpulse/internal/model"
	"github.com/feedpulse/feedpulse/internal/series"
)

const activityChartHeight = 8

// metricStyles assigns each tracked metric a stable color, in
// model.ActivityMetrics order.
var metricColors = []string{"39", "208", "135"}

func metricStyle(idx int) lipgloss.Style {
	c := lipgloss.Color(metricColors[idx%len(metricColors)])
	return lipgloss.NewStyle().Foreground(c).Background(c)
}

// renderActivityPanel shows the aligned daily metrics as stacked per-day
// bars. A metric absent on a date contributes no bar segment, which keeps
// "no data" visually distinct from a reported zero.
func (d *Dashboard) renderActivityPanel(width int, active bool) string {
	style := d.styles.Section.Width(width)
	if active {
		style = d.styles.ActiveSection.Width(width)
	}

	title := d.styles.PanelTitle.Render("Daily Activity")

	if len(d.rows) == 0 {
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, d.styles.Help.Render("No data available")))
	}

	chart := d.renderActivityChart(width)

	parts := []string{title, chart}
	for _, e := range d.alignErrs {
		parts = append(parts, d.styles.ErrorText.Render(
			fmt.Sprintf("series %s dropped: duplicate date %s", e.Series, e.Date)))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// visibleRows trims aligned rows to the newest maxBars entries.
func visibleRows(rows []series.AlignedRow, maxBars int) []series.AlignedRow {
	if len(rows) <= maxBars {
		return rows
	}
	return rows[len(rows)-maxBars:]
}

func (d *Dashboard) renderActivityChart(width int) string {
	legendWidth := 26
	chartWidth := width - legendWidth - 2
	if chartWidth < 20 {
		chartWidth = 20
	}
	maxBars := chartWidth / 3
	if maxBars < 1 {
		maxBars = 1
	}

	shown := visibleRows(d.rows, maxBars)

	bc := barchart.New(chartWidth, activityChartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(2),
		barchart.WithNoAxis(),
	)

	for _, row := range shown {
		var values []barchart.BarValue
		for i, metric := range model.ActivityMetrics {
			v, ok := row.Values[metric]
			if !ok {
				continue
			}
			values = append(values, barchart.BarValue{
				Name:  metric,
				Value: v,
				Style: metricStyle(i),
			})
		}
		if len(values) == 0 {
			values = append(values, barchart.BarValue{Name: "empty", Value: 0})
		}
		bc.Push(barchart.BarData{Label: "", Values: values})
	}
	bc.Draw()

	legendLines := make([]string, 0, activityChartHeight)
	latest := shown[len(shown)-1]
	legendLines = append(legendLines, latest.Date)
	for i, metric := range model.ActivityMetrics {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(metricColors[i%len(metricColors)])).
			Render(fmt.Sprintf("%-13s", format.TitleCase(metric)))
		value := "-"
		if v, ok := latest.Values[metric]; ok {
			value = format.Magnitude(v)
		}
		legendLines = append(legendLines, fmt.Sprintf("%s %7s", label, value))
	}
	for len(legendLines) < activityChartHeight {
		legendLines = append(legendLines, "")
	}

	return joinChartAndLegend(bc.View(), legendLines, chartWidth, activityChartHeight)
}
