package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/user/waql-tui/pkg/models"
)

func createTestResults() *models.ResultSet {
	rs := models.NewResultSet([]string{"name", "path", "notes"})
	rs.AddRow(map[string]string{"name": "Footstep_01", "path": "\\Actor-Mixer Hierarchy\\Footstep_01"})
	rs.AddRow(map[string]string{"name": "Door, Open", "notes": "says \"creak\"\nsecond line"})
	rs.AddRow(map[string]string{"name": "", "path": "", "notes": ""})
	return rs
}

func TestNewExporter(t *testing.T) {
	exp := NewExporter()

	if exp.lastExportPath != "" {
		t.Error("lastExportPath should be empty initially")
	}
}

func TestExportToCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	exp := NewExporter()
	rs := createTestResults()

	if err := exp.ExportToCSV(rs, path); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}
	if !exp.FileExists(path) {
		t.Error("File should exist after export")
	}
	if exp.GetLastExportPath() != path {
		t.Error("Last export path should be set")
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse exported CSV: %v", err)
	}

	if !reflect.DeepEqual(records[0], rs.Columns) {
		t.Errorf("Header mismatch: %v", records[0])
	}
	if !reflect.DeepEqual(records[1:], rs.Records()) {
		t.Errorf("Rows mismatch:\nexpected %q\ngot      %q", rs.Records(), records[1:])
	}
}

func TestExportToCSVRoundTripSingleColumn(t *testing.T) {
	rs := models.NewResultSet([]string{"notes"})
	rs.AddRow(map[string]string{"notes": "a"})
	rs.AddRow(map[string]string{"notes": ""})
	rs.AddRow(map[string]string{"notes": "line1\nline2"})

	path := filepath.Join(t.TempDir(), "notes.csv")
	if err := NewExporter().ExportToCSV(rs, path); err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse exported CSV: %v", err)
	}
	expected := [][]string{{"notes"}, {"a"}, {""}, {"line1\nline2"}}
	if !reflect.DeepEqual(records, expected) {
		t.Errorf("Round trip mismatch:\nexpected %q\ngot      %q\nfile %q", expected, records, data)
	}
}

func TestWriteCSVCarriageReturnInValue(t *testing.T) {
	// encoding/csv reads a quoted \r\n back as \n
	rs := models.NewResultSet([]string{"id", "notes"})
	rs.AddRow(map[string]string{"id": "{1}", "notes": "line1\r\nline2"})

	var sb strings.Builder
	if err := WriteCSV(&sb, rs); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 || records[1][1] != "line1\nline2" {
		t.Errorf("Unexpected records %q", records)
	}
}

func TestExportToCSVEmpty(t *testing.T) {
	exp := NewExporter()
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := exp.ExportToCSV(models.NewResultSet(nil), path); !errors.Is(err, ErrNoResults) {
		t.Errorf("Expected ErrNoResults, got %v", err)
	}
	if err := exp.ExportToCSV(nil, path); !errors.Is(err, ErrNoResults) {
		t.Errorf("Expected ErrNoResults for nil, got %v", err)
	}
	if exp.FileExists(path) {
		t.Error("No file should be created for empty results")
	}
}

func TestExportToCSVBadPath(t *testing.T) {
	exp := NewExporter()
	path := filepath.Join(t.TempDir(), "missing", "out.csv")

	if err := exp.ExportToCSV(createTestResults(), path); err == nil {
		t.Error("Expected error writing into a missing directory")
	}
	if exp.GetLastExportPath() != "" {
		t.Error("Failed export should not update last path")
	}
}

func TestExportToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	exp := NewExporter()
	rs := createTestResults()

	if err := exp.Export(rs, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var rows []map[string]string
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatalf("Exported JSON is invalid: %v", err)
	}
	if len(rows) != 3 || rows[1]["name"] != "Door, Open" {
		t.Errorf("Unexpected rows: %v", rows)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("Export should write indented JSON")
	}
}

func TestRowCSV(t *testing.T) {
	rs := createTestResults()

	line, err := RowCSV(rs, 1)
	if err != nil {
		t.Fatalf("RowCSV failed: %v", err)
	}
	expected := "\"Door, Open\",,\"says \"\"creak\"\"\nsecond line\""
	if line != expected {
		t.Errorf("Expected %q, got %q", expected, line)
	}

	if _, err := RowCSV(rs, 10); !errors.Is(err, ErrNoResults) {
		t.Errorf("Expected ErrNoResults for out of range row, got %v", err)
	}
}

func TestRowCSVLoneEmptyField(t *testing.T) {
	rs := models.NewResultSet([]string{"notes"})
	rs.AddRow(map[string]string{"notes": ""})

	line, err := RowCSV(rs, 0)
	if err != nil {
		t.Fatalf("RowCSV failed: %v", err)
	}
	if line != `""` {
		t.Errorf("Expected a quoted empty field, got %q", line)
	}
}

func TestGetDefaultFileName(t *testing.T) {
	exp := NewExporter()

	tests := []struct {
		format string
		suffix string
	}{
		{FormatCSV, ".csv"},
		{FormatJSON, ".json"},
		{"", ".csv"},
	}

	for _, tt := range tests {
		name := exp.GetDefaultFileName(tt.format)
		if !strings.HasPrefix(name, "waql_results_") || !strings.HasSuffix(name, tt.suffix) {
			t.Errorf("GetDefaultFileName(%q) = %q", tt.format, name)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]string{
		"out.csv":      FormatCSV,
		"out.JSON":     FormatJSON,
		"out":          FormatCSV,
		"dir.json/out": FormatCSV,
	}

	for path, expected := range tests {
		if got := FormatForPath(path); got != expected {
			t.Errorf("FormatForPath(%q): expected %s, got %s", path, expected, got)
		}
	}
}
