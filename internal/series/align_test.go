package series

import (
	"sort"
	"testing"
)

func TestAlign_SortedAscendingByDate(t *testing.T) {
	input := map[string][]TimePoint{
		"registrations": {{Date: "2024-01-03", Value: 3}, {Date: "2024-01-01", Value: 1}},
		"logins":        {{Date: "2024-01-02", Value: 2}},
		"api_requests":  {{Date: "2024-01-01", Value: 9}, {Date: "2024-01-03", Value: 7}},
	}

	rows, errs := Align(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !sort.SliceIsSorted(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date }) {
		t.Errorf("rows not sorted ascending: %+v", rows)
	}
	for i, want := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if rows[i].Date != want {
			t.Errorf("row %d: date %s, want %s", i, rows[i].Date, want)
		}
	}
}

func TestAlign_AbsentIsNotZero(t *testing.T) {
	input := map[string][]TimePoint{
		"registrations": {{Date: "2024-01-01", Value: 0}},
		"logins":        {},
	}

	rows, errs := Align(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	v, ok := rows[0].Values["registrations"]
	if !ok || v != 0 {
		t.Errorf("registrations: got (%v, %v), want explicit 0", v, ok)
	}
	if _, ok := rows[0].Values["logins"]; ok {
		t.Errorf("logins key present on a date it never reported")
	}
}

func TestAlign_RowsReusedAcrossSeries(t *testing.T) {
	input := map[string][]TimePoint{
		"registrations": {{Date: "2024-01-01", Value: 5}},
		"logins":        {{Date: "2024-01-01", Value: 8}},
	}

	rows, _ := Align(input)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 shared row", len(rows))
	}
	if rows[0].Values["registrations"] != 5 || rows[0].Values["logins"] != 8 {
		t.Errorf("shared row wrong: %+v", rows[0].Values)
	}
}

func TestAlign_DuplicateDateDropsOnlyOffendingSeries(t *testing.T) {
	input := map[string][]TimePoint{
		"registrations": {{Date: "2024-01-01", Value: 1}, {Date: "2024-01-01", Value: 2}},
		"logins":        {{Date: "2024-01-01", Value: 4}, {Date: "2024-01-02", Value: 6}},
	}

	rows, errs := Align(input)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Series != "registrations" || errs[0].Date != "2024-01-01" {
		t.Errorf("error identifies %s/%s, want registrations/2024-01-01", errs[0].Series, errs[0].Date)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 from surviving series", len(rows))
	}
	for _, row := range rows {
		if _, ok := row.Values["registrations"]; ok {
			t.Errorf("dropped series leaked into row %s", row.Date)
		}
	}
}

func TestAlign_NoFabricatedRows(t *testing.T) {
	input := map[string][]TimePoint{
		"registrations": {{Date: "2024-01-01", Value: 1}, {Date: "2024-01-05", Value: 5}},
	}

	rows, _ := Align(input)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (no gap filling)", len(rows))
	}
}

func TestAlign_Empty(t *testing.T) {
	rows, errs := Align(nil)
	if len(rows) != 0 || len(errs) != 0 {
		t.Errorf("empty input produced output: rows=%v errs=%v", rows, errs)
	}
}
