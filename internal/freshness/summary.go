package freshness

// TierSummary aggregates the suppliers in one tier.
type TierSummary struct {
	Count        int   `json:"count"`
	TotalRecords int64 `json:"total_records"`
	TotalErrors  int64 `json:"total_errors"`
}

// Summary holds one TierSummary per tier. Tiers with no members are
// zero-valued, never absent, so callers need no nil checks.
type Summary struct {
	Fresh    TierSummary `json:"fresh"`
	Stale    TierSummary `json:"stale"`
	Outdated TierSummary `json:"outdated"`
}

// Tier returns the summary for the given tier.
func (s Summary) Tier(tier Tier) TierSummary {
	switch tier {
	case TierFresh:
		return s.Fresh
	case TierStale:
		return s.Stale
	default:
		return s.Outdated
	}
}

// Summarize partitions classified suppliers by tier and sums their record
// and error counts. Every supplier lands in exactly one tier, so the three
// counts always sum to len(classified).
func Summarize(classified []Classified) Summary {
	var s Summary
	for _, c := range classified {
		var ts *TierSummary
		switch c.Tier {
		case TierFresh:
			ts = &s.Fresh
		case TierStale:
			ts = &s.Stale
		default:
			ts = &s.Outdated
		}
		ts.Count++
		ts.TotalRecords += c.RecordCount
		ts.TotalErrors += c.ErrorCount
	}
	return s
}
