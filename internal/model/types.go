package model

// SupplierSnapshot is one supplier's state as reported by the upstream
// admin API. It is the canonical type for fetch, storage, and classification.
type SupplierSnapshot struct {
	Name        string `json:"name"`
	LastUpdated string `json:"last_updated"`
	RecordCount int64  `json:"record_count"`
	ErrorCount  int64  `json:"error_count,omitempty"`
}

// ActivityMetrics lists the daily counters tracked by the dashboard, in
// display order.
var ActivityMetrics = []string{"registrations", "logins", "api_requests"}
