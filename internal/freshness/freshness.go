// Package freshness classifies supplier snapshots into freshness tiers and
// aggregates per-tier statistics. Every operation is a pure function over
// its explicit inputs, including the injected clock value.
package freshness

import (
	"fmt"
	"time"

	"github.com/feedpulse/feedpulse/internal/model"
)

// Tier is a supplier's freshness classification.
type Tier string

const (
	TierFresh    Tier = "fresh"
	TierStale    Tier = "stale"
	TierOutdated Tier = "outdated"
)

// Tier display colors. Presentation layers may restyle, but the tier-to-color
// mapping itself never varies with configuration.
const (
	ColorFresh    = "#22c55e"
	ColorStale    = "#f59e0b"
	ColorOutdated = "#ef4444"
)

// Thresholds are the hour cutoffs between tiers. Boundaries are half-open
// and lower-inclusive: hoursAgo < FreshHours is fresh, FreshHours <=
// hoursAgo < StaleHours is stale, anything at or past StaleHours is
// outdated.
type Thresholds struct {
	FreshHours float64
	StaleHours float64
}

// DefaultThresholds is the canonical 6h/24h policy.
var DefaultThresholds = Thresholds{
	FreshHours: model.DefaultFreshHours,
	StaleHours: model.DefaultStaleHours,
}

// Validate reports whether the thresholds describe a consistent tier
// boundary.
func (t Thresholds) Validate() error {
	if t.FreshHours <= 0 || t.StaleHours <= 0 {
		return &InvalidThresholdsError{Thresholds: t}
	}
	if t.StaleHours <= t.FreshHours {
		return &InvalidThresholdsError{Thresholds: t}
	}
	return nil
}

// Classified is a supplier snapshot plus its derived freshness fields.
// It is immutable after creation; callers discard it on the next run.
type Classified struct {
	model.SupplierSnapshot
	HoursAgo float64 `json:"hours_ago"`
	Tier     Tier    `json:"tier"`
	Color    string  `json:"color"`
}

// InvalidThresholdsError indicates an inconsistent thresholds pair. It is
// fatal to the whole classification call.
type InvalidThresholdsError struct {
	Thresholds Thresholds
}

func (e *InvalidThresholdsError) Error() string {
	return fmt.Sprintf("invalid thresholds: fresh=%gh stale=%gh (stale must exceed fresh and both must be positive)",
		e.Thresholds.FreshHours, e.Thresholds.StaleHours)
}

// MalformedTimestampError indicates one supplier's last-update timestamp
// could not be parsed. It never aborts classification of sibling suppliers.
type MalformedTimestampError struct {
	Supplier string
	Value    string
	Err      error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("supplier %s: malformed timestamp %q: %v", e.Supplier, e.Value, e.Err)
}

func (e *MalformedTimestampError) Unwrap() error { return e.Err }

// timestampLayouts are tried in order when the value is not RFC3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func tierFor(hoursAgo float64, th Thresholds) Tier {
	switch {
	case hoursAgo < th.FreshHours:
		return TierFresh
	case hoursAgo < th.StaleHours:
		return TierStale
	default:
		return TierOutdated
	}
}

// TierColor returns the fixed display color for a tier.
func TierColor(tier Tier) string {
	switch tier {
	case TierFresh:
		return ColorFresh
	case TierStale:
		return ColorStale
	default:
		return ColorOutdated
	}
}

// Classify derives the freshness tier for one supplier snapshot at the
// given instant. A LastUpdated in the future is clamped to zero hours, not
// rejected.
func Classify(snap model.SupplierSnapshot, th Thresholds, now time.Time) (Classified, error) {
	if err := th.Validate(); err != nil {
		return Classified{}, err
	}

	ts, err := parseTimestamp(snap.LastUpdated)
	if err != nil {
		return Classified{}, &MalformedTimestampError{Supplier: snap.Name, Value: snap.LastUpdated, Err: err}
	}

	hoursAgo := now.Sub(ts).Hours()
	if hoursAgo < 0 {
		hoursAgo = 0
	}

	tier := tierFor(hoursAgo, th)
	return Classified{
		SupplierSnapshot: snap,
		HoursAgo:         hoursAgo,
		Tier:             tier,
		Color:            TierColor(tier),
	}, nil
}

// ClassifyError pairs a supplier name with its classification failure.
type ClassifyError struct {
	Supplier string
	Err      error
}

// Result is the outcome of a batch classification.
type Result struct {
	Classified []Classified
	Errors     []ClassifyError
}

// ClassifyAll classifies every snapshot independently. One supplier's
// malformed timestamp is reported in Result.Errors and does not stop the
// others; output preserves input order. Invalid thresholds abort the whole
// batch.
func ClassifyAll(snaps []model.SupplierSnapshot, th Thresholds, now time.Time) (Result, error) {
	if err := th.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Classified: make([]Classified, 0, len(snaps))}
	for _, snap := range snaps {
		c, err := Classify(snap, th, now)
		if err != nil {
			res.Errors = append(res.Errors, ClassifyError{Supplier: snap.Name, Err: err})
			continue
		}
		res.Classified = append(res.Classified, c)
	}
	return res, nil
}
