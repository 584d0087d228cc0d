// Package series aligns independently-sourced daily metric series into one
// chronologically sorted table for multi-series charting.
package series

import (
	"fmt"
	"sort"
)

// TimePoint is one calendar day's observation for a single metric. Date is
// a calendar-day string ("2006-01-02"); string comparison orders it
// chronologically.
type TimePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// AlignedRow holds one calendar date's values across all aligned series. A
// series' key is present in Values only when that series reported the
// date; absence means "no data point", which is distinct from a reported
// zero.
type AlignedRow struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

// DuplicateDateError indicates one series reported the same date twice.
// The offending series is dropped from alignment; the others still align.
type DuplicateDateError struct {
	Series string
	Date   string
}

func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("series %s: duplicate date %s", e.Series, e.Date)
}

// Align merges named date-keyed series into rows sorted ascending by
// calendar date. No row is fabricated for a date absent from every series.
// Errors are reported per series so one bad upstream feed never blanks the
// whole chart.
func Align(input map[string][]TimePoint) ([]AlignedRow, []DuplicateDateError) {
	var errs []DuplicateDateError
	byDate := make(map[string]map[string]float64)

	for name, points := range input {
		seen := make(map[string]struct{}, len(points))
		dup := ""
		for _, p := range points {
			if _, ok := seen[p.Date]; ok {
				dup = p.Date
				break
			}
			seen[p.Date] = struct{}{}
		}
		if dup != "" {
			errs = append(errs, DuplicateDateError{Series: name, Date: dup})
			continue
		}

		for _, p := range points {
			row, ok := byDate[p.Date]
			if !ok {
				row = make(map[string]float64)
				byDate[p.Date] = row
			}
			row[name] = p.Value
		}
	}

	rows := make([]AlignedRow, 0, len(byDate))
	for date, values := range byDate {
		rows = append(rows, AlignedRow{Date: date, Values: values})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	sort.Slice(errs, func(i, j int) bool { return errs[i].Series < errs[j].Series })
	return rows, errs
}
