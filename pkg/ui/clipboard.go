package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/user/waql-tui/pkg/export"
	"github.com/user/waql-tui/pkg/models"
)

// Copy formats
const (
	CopyCSV  = "csv"
	CopyTSV  = "tsv"
	CopyJSON = "json"
)

// copyFormats is the cycle order for NextCopyFormat
var copyFormats = []string{CopyCSV, CopyTSV, CopyJSON}

// ClipboardManager copies result rows to the system clipboard
type ClipboardManager struct {
	lastCopied string
	copyFormat string
	write      func(string) error
}

// NewClipboardManager creates a new clipboard manager
func NewClipboardManager() *ClipboardManager {
	return &ClipboardManager{
		lastCopied: "",
		copyFormat: CopyCSV,
		write:      clipboard.WriteAll,
	}
}

// FormatRow renders row i of rs in the given format
func (cm *ClipboardManager) FormatRow(rs *models.ResultSet, i int, format string) (string, error) {
	if rs.Record(i) == nil {
		return "", fmt.Errorf("no row selected")
	}

	switch format {
	case CopyCSV:
		return export.RowCSV(rs, i)
	case CopyTSV:
		return strings.Join(rs.Record(i), "\t"), nil
	case CopyJSON:
		data, err := json.Marshal(rs.Rows[i])
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("invalid format: %s", format)
	}
}

// CopyRow formats row i and writes it to the clipboard
func (cm *ClipboardManager) CopyRow(rs *models.ResultSet, i int) (string, error) {
	content, err := cm.FormatRow(rs, i, cm.copyFormat)
	if err != nil {
		return "", err
	}
	if err := cm.write(content); err != nil {
		return "", fmt.Errorf("clipboard unavailable: %w", err)
	}
	cm.lastCopied = content
	return content, nil
}

// GetLastCopied returns the last copied content
func (cm *ClipboardManager) GetLastCopied() string {
	return cm.lastCopied
}

// SetCopyFormat sets the default copy format
func (cm *ClipboardManager) SetCopyFormat(format string) error {
	switch format {
	case CopyCSV, CopyTSV, CopyJSON:
		cm.copyFormat = format
		return nil
	default:
		return fmt.Errorf("invalid format: %s", format)
	}
}

// GetCopyFormat returns the current copy format
func (cm *ClipboardManager) GetCopyFormat() string {
	return cm.copyFormat
}

// NextCopyFormat switches to the format after the current one and returns it
func (cm *ClipboardManager) NextCopyFormat() string {
	next := copyFormats[0]
	for i, f := range copyFormats {
		if f == cm.copyFormat {
			next = copyFormats[(i+1)%len(copyFormats)]
			break
		}
	}
	if err := cm.SetCopyFormat(next); err != nil {
		return cm.copyFormat
	}
	return next
}
