package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/feedpulse/feedpulse/internal/format"
	"github.com/feedpulse/feedpulse/internal/freshness"
)

const freshnessChartHeight = 6

func tierStyle(tier freshness.Tier) lipgloss.Style {
	c := lipgloss.Color(freshness.TierColor(tier))
	return lipgloss.NewStyle().Foreground(c).Background(c)
}

// renderFreshnessPanel shows tier counts as a bar chart, a legend with
// per-tier aggregates, and the supplier table.
func (d *Dashboard) renderFreshnessPanel(width int, active bool) string {
	style := d.styles.Section.Width(width)
	if active {
		style = d.styles.ActiveSection.Width(width)
	}

	title := d.styles.PanelTitle.Render(fmt.Sprintf("Suppliers (%d tracked)", len(d.classified)))

	if len(d.classified) == 0 && len(d.classifyErrs) == 0 {
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, d.styles.Help.Render("No data available")))
	}

	chart := d.renderTierChart(width)
	tableView := d.supplierTable.View()

	parts := []string{title, chart, tableView}
	if len(d.classifyErrs) > 0 {
		parts = append(parts, d.styles.ErrorText.Render(
			fmt.Sprintf("%d supplier(s) skipped: malformed timestamps", len(d.classifyErrs))))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (d *Dashboard) renderTierChart(width int) string {
	legendWidth := 30
	chartWidth := width - legendWidth - 2
	if chartWidth < 12 {
		chartWidth = 12
	}

	bc := barchart.New(chartWidth, freshnessChartHeight,
		barchart.WithBarGap(2),
		barchart.WithBarWidth(3),
		barchart.WithNoAxis(),
	)

	tiers := []freshness.Tier{freshness.TierFresh, freshness.TierStale, freshness.TierOutdated}
	for _, tier := range tiers {
		bc.Push(barchart.BarData{
			Label: string(tier),
			Values: []barchart.BarValue{
				{Name: string(tier), Value: float64(d.summary.Tier(tier).Count), Style: tierStyle(tier)},
			},
		})
	}
	bc.Draw()

	legendLines := make([]string, 0, freshnessChartHeight)
	for _, tier := range tiers {
		ts := d.summary.Tier(tier)
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(freshness.TierColor(tier))).
			Render(fmt.Sprintf("%-8s", format.TitleCase(string(tier))))
		legendLines = append(legendLines, fmt.Sprintf("%s %3d  rec %-7s err %s",
			label, ts.Count,
			format.Magnitude(float64(ts.TotalRecords)),
			format.Magnitude(float64(ts.TotalErrors))))
	}
	for len(legendLines) < freshnessChartHeight {
		legendLines = append(legendLines, "")
	}

	return joinChartAndLegend(bc.View(), legendLines, chartWidth, freshnessChartHeight)
}

// joinChartAndLegend places legend lines to the right of the chart output.
func joinChartAndLegend(chartOutput string, legendLines []string, chartWidth, height int) string {
	chartLines := strings.Split(chartOutput, "\n")
	for len(chartLines) < height {
		chartLines = append(chartLines, "")
	}

	combined := make([]string, 0, height)
	for i := 0; i < height; i++ {
		chartLine := ""
		if i < len(chartLines) {
			chartLine = chartLines[i]
		}
		if lipgloss.Width(chartLine) < chartWidth {
			chartLine += strings.Repeat(" ", chartWidth-lipgloss.Width(chartLine))
		}
		legendLine := ""
		if i < len(legendLines) {
			legendLine = legendLines[i]
		}
		combined = append(combined, chartLine+"  "+legendLine)
	}
	return strings.Join(combined, "\n")
}
