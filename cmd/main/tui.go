package main

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/user/waql-tui/pkg/config"
	"github.com/user/waql-tui/pkg/models"
	"github.com/user/waql-tui/pkg/query"
	"github.com/user/waql-tui/pkg/ui"
)

var startupQuery string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive query editor",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&startupQuery, "query", "q", "", "run this query on startup")
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger, closeLog := tuiLogger()
	defer closeLog()

	// Phase 1: Bootstrap
	settings, err := config.LoadSettings()
	if err != nil {
		log.Printf("Warning: Failed to load settings, using defaults: %v", err)
	}

	state, err := config.LoadState()
	if err != nil {
		log.Printf("Warning: Failed to load state: %v", err)
	}

	historyStore, err := config.LoadQueryHistory()
	if err != nil {
		log.Printf("Warning: Failed to load query history: %v", err)
	}

	appState := &models.AppState{WAAPIURL: cfg.WAAPIURL}
	app := ui.NewApp(appState, settings)
	app.SetVimMode(cfg.VimMode)
	app.SetQueryHistory(historyStore.Texts())
	app.SetInitialQuery(state.LastQuery)
	if startupQuery != "" {
		app.SetStartupQuery(startupQuery)
	}

	app.SetSettingsPersistFn(config.SaveSettings)
	app.SetQueryHistoryPersistFn(func(q string) error {
		historyStore = config.AddQueryToHistory(historyStore, q, cfg.MaxHistoryEntries)
		if err := config.SaveQueryHistory(historyStore); err != nil {
			return err
		}
		state.LastQuery = q
		return config.SaveState(state)
	})

	_, executor := newExecutor(logger)
	app.SetQueryExecutor(func(q string) (query.ExecuteResponse, error) {
		return executor.Execute(context.Background(), query.ExecuteRequest{Query: q})
	})
	app.SetPingFn(func() (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		defer cancel()
		return executor.Ping(ctx)
	})

	logger.Info("starting tui", "url", cfg.WAAPIURL, "timeout", cfg.Timeout())

	// Phase 2: Start TUI
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
