package model

import "time"

// Shared defaults used by both the server and TUI entrypoints.
const (
	DefaultUpdateInterval = 2 * time.Second
	DefaultPollInterval   = 60 * time.Second
	DefaultHistoryDays    = 30
	DefaultSkin           = "default"

	// Canonical freshness thresholds. There is exactly one thresholds
	// policy; chart and API layers take it from config, never redefine it.
	DefaultFreshHours = 6.0
	DefaultStaleHours = 24.0
)
