package main

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/user/waql-tui/pkg/config"
	"github.com/user/waql-tui/pkg/query"
	"github.com/user/waql-tui/pkg/waapi"
)

// debugLogEnv enables the TUI debug log when set
const debugLogEnv = "WAQL_DEBUG"

var (
	urlFlag       string
	timeoutFlag   int
	configDirFlag string

	// cfg is resolved once per invocation in PersistentPreRunE
	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "waql-tui",
	Short: "waql-tui - query Wwise projects with WAQL",
	Long: `waql-tui is a terminal tool for writing and running WAQL queries against
a running Wwise authoring session over WAAPI.

Run without a subcommand to open the interactive editor.`,
	SilenceUsage:      true,
	PersistentPreRunE: resolveConfig,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "WAAPI HTTP endpoint (default "+waapi.DefaultURL+")")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "request timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "directory holding settings and history")

	rootCmd.Flags().StringVarP(&startupQuery, "query", "q", "", "run this query on startup")

	rootCmd.AddGroup(
		&cobra.Group{ID: "query", Title: "Querying:"},
		&cobra.Group{ID: "settings", Title: "Settings:"},
	)

	tuiCmd.GroupID = "query"
	runCmd.GroupID = "query"
	infoCmd.GroupID = "query"
	savedCmd.GroupID = "settings"
	keywordCmd.GroupID = "settings"
	themeCmd.GroupID = "settings"
	configCmd.GroupID = "settings"

	rootCmd.AddCommand(tuiCmd, runCmd, infoCmd, savedCmd, keywordCmd, themeCmd, configCmd)
}

// resolveConfig layers config.json, the environment and flags
func resolveConfig(cmd *cobra.Command, args []string) error {
	if configDirFlag != "" {
		if err := os.Setenv(config.EnvConfigDir, configDirFlag); err != nil {
			return err
		}
	}

	loaded, err := config.LoadConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config: %v", err)
		loaded = config.DefaultConfig()
	}
	cfg = loaded.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.WAAPIURL = urlFlag
	}
	if flags.Changed("timeout") {
		if timeoutFlag <= 0 {
			return errors.New("--timeout must be positive")
		}
		cfg.TimeoutSeconds = timeoutFlag
	}
	return nil
}

// newExecutor builds the WAAPI client and query executor for cfg
func newExecutor(logger *slog.Logger) (*waapi.Client, *query.Executor) {
	client := waapi.NewClient(cfg.WAAPIURL, cfg.Timeout(), waapi.WithLogger(logger))
	return client, query.NewExecutor(client, cfg.Timeout()).WithLogger(logger)
}

// tuiLogger writes to a debug file while the alt screen owns the terminal.
// The returned func closes the file.
func tuiLogger() (*slog.Logger, func()) {
	path := os.Getenv(debugLogEnv)
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	if path == "1" || path == "true" {
		path = "waql-debug.log"
	}

	f, err := tea.LogToFile(path, "waql")
	if err != nil {
		log.Printf("Warning: Failed to open debug log: %v", err)
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }
}

// cliLogger reports only warnings and errors on stderr
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Failed to load .env: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
