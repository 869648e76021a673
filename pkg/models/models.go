package models

import (
	"time"
)

// Query represents a WAQL query as typed in the editor
type Query struct {
	Text    string                 `json:"text"`
	Name    string                 `json:"name,omitempty"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// SavedQuery is a named query persisted in user settings
type SavedQuery struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Query string `json:"query"`
}

// Row maps a column name to its rendered value
type Row map[string]string

// ResultSet is the tabular output of a single query execution
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewResultSet creates an empty result set with the given columns
func NewResultSet(columns []string) *ResultSet {
	return &ResultSet{
		Columns: append([]string{}, columns...),
		Rows:    []Row{},
	}
}

// AddRow appends a row, filling every column so the row width always matches
func (rs *ResultSet) AddRow(values map[string]string) {
	row := make(Row, len(rs.Columns))
	for _, col := range rs.Columns {
		row[col] = values[col]
	}
	rs.Rows = append(rs.Rows, row)
}

// Len returns the number of rows
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// IsEmpty reports whether the result set has no rows
func (rs *ResultSet) IsEmpty() bool {
	return rs.Len() == 0
}

// Record returns row i as a slice ordered by Columns
func (rs *ResultSet) Record(i int) []string {
	if rs == nil || i < 0 || i >= len(rs.Rows) {
		return nil
	}
	record := make([]string, len(rs.Columns))
	for j, col := range rs.Columns {
		record[j] = rs.Rows[i][col]
	}
	return record
}

// Records returns every row ordered by Columns
func (rs *ResultSet) Records() [][]string {
	records := make([][]string, 0, rs.Len())
	for i := 0; i < rs.Len(); i++ {
		records = append(records, rs.Record(i))
	}
	return records
}

// ResultState holds what the results pane is currently showing
type ResultState struct {
	Result     *ResultSet
	RawJSON    string
	LastQuery  string
	ExecutedAt time.Time
	Duration   time.Duration
	IsLoading  bool
}

// UIState represents UI-specific state
type UIState struct {
	FocusedPane  string // "editor", "results"
	ActiveModal  string // "none", "settings", "export", "help", "detail"
	ShowRawJSON  bool
	StatusIsErr  bool
	StatusText   string
}

// AppState represents the complete application state
type AppState struct {
	WAAPIURL      string
	WwiseVersion  string
	CurrentQuery  Query
	ResultState   ResultState
	UIState       UIState
	LastError     error
	IsReady       bool
}

// Pane and modal names
const (
	PaneEditor  = "editor"
	PaneResults = "results"

	ModalNone     = "none"
	ModalSettings = "settings"
	ModalExport   = "export"
	ModalHelp     = "help"
	ModalDetail   = "detail"
)
