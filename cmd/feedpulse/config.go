package main

import (
	"time"

	"github.com/feedpulse/feedpulse/internal/model"
)

const (
	defaultUpdateInterval = model.DefaultUpdateInterval
	defaultPollInterval   = model.DefaultPollInterval
	defaultHistoryDays    = model.DefaultHistoryDays
	defaultSkin           = model.DefaultSkin
	defaultBindHost       = "127.0.0.1"
	defaultAPIPort        = 3000
	defaultQueryTimeout   = 30 * time.Second
	defaultRetentionDays  = 90 // days, 0 = disabled
)

// appConfig is internal runtime configuration. It is package-private to
// keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	APIBaseURL     string        `mapstructure:"api-base-url"`
	PollInterval   time.Duration `mapstructure:"poll-interval"`
	UpdateInterval time.Duration `mapstructure:"update-interval"`
	HistoryDays    int           `mapstructure:"history-days"`
	FreshHours     float64       `mapstructure:"fresh-hours"`
	StaleHours     float64       `mapstructure:"stale-hours"`
	DBPath         string        `mapstructure:"db-path"`
	Skin           string        `mapstructure:"skin"`
	SkinPath       string        `mapstructure:"skin-path"`
	APIEnabled     bool          `mapstructure:"api-enabled"`
	APIPort        int           `mapstructure:"api-port"`
	APIAddr        string        `mapstructure:"api-addr"`
	QueryTimeout   time.Duration `mapstructure:"query-timeout"`
	RetentionDays  int           `mapstructure:"retention-days"`
	ConfigPath     string        `mapstructure:"-"` // not from config file
}
