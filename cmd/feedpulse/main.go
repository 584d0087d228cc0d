package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/feedpulse/feedpulse/internal/freshness"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var headless bool
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/feedpulse/config.yml)")
	flag.BoolVar(&headless, "headless", false, "run without the TUI (poller + HTTP API only)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("FeedPulse - Supplier Freshness Dashboard\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if headless {
		err = runServer(cfg)
	} else {
		err = runDashboard(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	defaultDBPath := filepath.Join(home, ".local", "share", "feedpulse", "feedpulse.duckdb")

	v := viper.New()
	v.SetEnvPrefix("FEEDPULSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-base-url", "")
	v.SetDefault("poll-interval", defaultPollInterval)
	v.SetDefault("update-interval", defaultUpdateInterval)
	v.SetDefault("history-days", defaultHistoryDays)
	v.SetDefault("fresh-hours", freshness.DefaultThresholds.FreshHours)
	v.SetDefault("stale-hours", freshness.DefaultThresholds.StaleHours)
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("skin", defaultSkin)
	v.SetDefault("skin-path", "")
	v.SetDefault("api-enabled", true)
	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("retention-days", defaultRetentionDays)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "feedpulse", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.APIBaseURL == "" {
		return cfg, fmt.Errorf("api-base-url is required (set FEEDPULSE_API_BASE_URL or the config file)")
	}
	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}
	if cfg.HistoryDays <= 0 {
		return cfg, fmt.Errorf("invalid history-days: %d", cfg.HistoryDays)
	}
	if err := cfg.thresholds().Validate(); err != nil {
		return cfg, err
	}

	// Expand ~ in db-path
	if strings.HasPrefix(cfg.DBPath, "~/") {
		cfg.DBPath = filepath.Join(home, cfg.DBPath[2:])
	}

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(defaultBindHost, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}

func (c appConfig) thresholds() freshness.Thresholds {
	return freshness.Thresholds{FreshHours: c.FreshHours, StaleHours: c.StaleHours}
}
