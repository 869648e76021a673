// Package export writes query results to CSV and JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/waql-tui/pkg/models"
)

// ErrNoResults is returned when there is nothing to export
var ErrNoResults = errors.New("no results to export")

// ErrFileExists is returned when an export would replace an existing file
var ErrFileExists = errors.New("file already exists")

// Formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Exporter handles exporting result sets to files
type Exporter struct {
	lastExportPath string
}

// NewExporter creates a new exporter
func NewExporter() *Exporter {
	return &Exporter{
		lastExportPath: "",
	}
}

// Export writes rs to path, choosing the format from the file extension.
// Anything other than .json is written as CSV.
func (e *Exporter) Export(rs *models.ResultSet, path string) error {
	if FormatForPath(path) == FormatJSON {
		return e.ExportToJSON(rs, path, true)
	}
	return e.ExportToCSV(rs, path)
}

// ExportToCSV exports a result set to CSV format
func (e *Exporter) ExportToCSV(rs *models.ResultSet, path string) error {
	if rs.IsEmpty() {
		return ErrNoResults
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, rs); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	e.lastExportPath = path
	return nil
}

// WriteCSV writes a header row followed by one record per row
func WriteCSV(w io.Writer, rs *models.ResultSet) error {
	writer := csv.NewWriter(w)

	if err := writeRecord(w, writer, rs.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range rs.Records() {
		if err := writeRecord(w, writer, record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// writeRecord writes one record. encoding/csv emits a lone empty field as a
// blank line, which readers skip, so that record is written as "" instead.
func writeRecord(w io.Writer, writer *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return writer.Write(record)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, emptyFieldRecord+"\n")
	return err
}

// emptyFieldRecord is a quoted empty field
const emptyFieldRecord = `""`

// ExportToJSON exports a result set as a JSON array of row objects
func (e *Exporter) ExportToJSON(rs *models.ResultSet, path string, pretty bool) error {
	if rs.IsEmpty() {
		return ErrNoResults
	}

	data, err := MarshalJSON(rs, pretty)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	e.lastExportPath = path
	return nil
}

// MarshalJSON encodes the rows of rs as a JSON array
func MarshalJSON(rs *models.ResultSet, pretty bool) ([]byte, error) {
	rows := make([]models.Row, 0, rs.Len())
	if rs != nil {
		rows = append(rows, rs.Rows...)
	}

	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(rows, "", "  ")
	} else {
		data, err = json.Marshal(rows)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// RowCSV renders a single row as one CSV line without the trailing newline
func RowCSV(rs *models.ResultSet, i int) (string, error) {
	record := rs.Record(i)
	if record == nil {
		return "", ErrNoResults
	}

	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writeRecord(&sb, writer, record); err != nil {
		return "", err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// GetLastExportPath returns the path of the last export
func (e *Exporter) GetLastExportPath() string {
	return e.lastExportPath
}

// FileExists checks if a file exists
func (e *Exporter) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetDefaultFileName generates a default filename for export
func (e *Exporter) GetDefaultFileName(format string) string {
	timestamp := time.Now().Format("20060102_150405")
	ext := FormatCSV
	if format == FormatJSON {
		ext = FormatJSON
	}
	return fmt.Sprintf("waql_results_%s.%s", timestamp, ext)
}

// FormatForPath picks the export format from a file extension
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}
