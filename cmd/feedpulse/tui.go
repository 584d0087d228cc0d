package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feedpulse/feedpulse/internal/duckdb"
	"github.com/feedpulse/feedpulse/internal/fetch"
	"github.com/feedpulse/feedpulse/internal/logging"
	"github.com/feedpulse/feedpulse/internal/poll"
	"github.com/feedpulse/feedpulse/internal/skin"
	"github.com/feedpulse/feedpulse/internal/tui"
)

// runDashboard starts the TUI with a background poller against the same
// store. The poller logs nowhere; stdout belongs to the terminal UI.
func runDashboard(cfg appConfig) error {
	store, err := duckdb.NewStore(cfg.DBPath, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := fetch.New(cfg.APIBaseURL)
	poller := poll.New(client, store, poll.Config{
		Interval:    cfg.PollInterval,
		HistoryDays: cfg.HistoryDays,
	}, logging.Nop())
	go poller.Run(ctx)

	sk := skin.Default()
	if cfg.SkinPath != "" {
		loaded, err := skin.Load(cfg.SkinPath)
		if err != nil {
			return err
		}
		sk = loaded
	}

	dashboard := tui.NewDashboard(store, tui.Config{
		Thresholds:     cfg.thresholds(),
		UpdateInterval: cfg.UpdateInterval,
		HistoryDays:    cfg.HistoryDays,
		Skin:           sk,
	})

	p := tea.NewProgram(dashboard, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
