package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultWAAPIURL is the HTTP endpoint Wwise exposes when WAAPI is enabled
const DefaultWAAPIURL = "http://127.0.0.1:8090/waapi"

// Environment variables that override config.json
const (
	EnvWAAPIURL  = "WAQL_WAAPI_URL"
	EnvTimeout   = "WAQL_TIMEOUT_SECONDS"
	EnvConfigDir = "WAQL_CONFIG_DIR"
)

// Config represents application configuration
type Config struct {
	WAAPIURL          string `json:"waapiUrl"`
	TimeoutSeconds    int    `json:"timeoutSeconds"`
	MaxHistoryEntries int    `json:"maxHistoryEntries"`
	VimMode           bool   `json:"vimMode"`
}

// DefaultConfig returns default configuration values
func DefaultConfig() Config {
	return Config{
		WAAPIURL:          DefaultWAAPIURL,
		TimeoutSeconds:    10,
		MaxHistoryEntries: 50,
		VimMode:           false,
	}
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ApplyEnv overrides fields from the environment
func (c Config) ApplyEnv() Config {
	if url := strings.TrimSpace(os.Getenv(EnvWAAPIURL)); url != "" {
		c.WAAPIURL = url
	}
	if raw := strings.TrimSpace(os.Getenv(EnvTimeout)); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			c.TimeoutSeconds = secs
		}
	}
	return c
}

// GetConfigDir returns the XDG config directory for waql-tui
func GetConfigDir() (string, error) {
	var configDir string

	if override := os.Getenv(EnvConfigDir); override != "" {
		configDir = override
	} else if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		configDir = filepath.Join(xdgHome, "waql-tui")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "waql-tui")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}

	return configDir, nil
}

// File names inside the config dir
const (
	ConfigFileName  = "config.json"
	StateFileName   = "state.json"
	HistoryFileName = "history.json"
)

// readJSON decodes name from the config dir into v. A missing file leaves v
// untouched and reports false.
func readJSON(name string, v interface{}) (bool, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}

// writeJSON overwrites name in the config dir with indented JSON
func writeJSON(name string, v interface{}) error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// LoadConfig reads config.json over the defaults. Errors yield defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if _, err := readJSON(ConfigFileName, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if strings.TrimSpace(cfg.WAAPIURL) == "" {
		cfg.WAAPIURL = DefaultWAAPIURL
	}
	return cfg, nil
}

// SaveConfig writes config.json
func SaveConfig(cfg Config) error {
	return writeJSON(ConfigFileName, cfg)
}

// State is what the TUI restores on the next start
type State struct {
	LastQuery   string    `json:"lastQuery,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// LoadState reads state.json
func LoadState() (State, error) {
	var state State
	found, err := readJSON(StateFileName, &state)
	if err != nil {
		return State{}, err
	}
	if !found {
		state.LastUpdated = time.Now()
	}
	return state, nil
}

// SaveState stamps and writes state.json
func SaveState(state State) error {
	state.LastUpdated = time.Now()
	return writeJSON(StateFileName, state)
}

// QueryHistory holds recently executed queries, most recent first
type QueryHistory struct {
	Queries []QueryRecord `json:"queries"`
}

// QueryRecord is a single query in history
type QueryRecord struct {
	Query        string    `json:"query"`
	ExecutedAt   time.Time `json:"executedAt"`
	ExecuteCount int       `json:"executeCount"`
}

// LoadQueryHistory reads history.json
func LoadQueryHistory() (QueryHistory, error) {
	var history QueryHistory
	if _, err := readJSON(HistoryFileName, &history); err != nil {
		return QueryHistory{Queries: []QueryRecord{}}, err
	}
	if history.Queries == nil {
		history.Queries = []QueryRecord{}
	}
	return history, nil
}

// SaveQueryHistory writes history.json
func SaveQueryHistory(history QueryHistory) error {
	return writeJSON(HistoryFileName, history)
}

// AddQueryToHistory records an execution. A repeated query moves to the
// front with its count bumped; the list is trimmed to maxEntries.
func AddQueryToHistory(history QueryHistory, query string, maxEntries int) QueryHistory {
	query = strings.TrimSpace(query)
	if query == "" {
		return history
	}

	record := QueryRecord{Query: query, ExecuteCount: 1}
	queries := make([]QueryRecord, 0, len(history.Queries)+1)
	for _, q := range history.Queries {
		if q.Query == query {
			record.ExecuteCount = q.ExecuteCount + 1
			continue
		}
		queries = append(queries, q)
	}
	record.ExecutedAt = time.Now()
	queries = append([]QueryRecord{record}, queries...)

	if maxEntries > 0 && len(queries) > maxEntries {
		queries = queries[:maxEntries]
	}
	history.Queries = queries
	return history
}

// Texts returns the history queries, most recent first
func (h QueryHistory) Texts() []string {
	texts := make([]string, 0, len(h.Queries))
	for _, q := range h.Queries {
		texts = append(texts, q.Query)
	}
	return texts
}
