package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/waql-tui/pkg/export"
	"github.com/user/waql-tui/pkg/models"
)

// ExportDialog asks for a destination path and writes the result set there
type ExportDialog struct {
	input    textinput.Model
	exporter *export.Exporter
	// confirmed is an existing path the user agreed to overwrite
	confirmed string
}

// NewExportDialog creates an export dialog backed by exporter
func NewExportDialog(exporter *export.Exporter) *ExportDialog {
	if exporter == nil {
		exporter = export.NewExporter()
	}
	ti := textinput.New()
	ti.Prompt = "path: "
	ti.CharLimit = 512
	return &ExportDialog{input: ti, exporter: exporter}
}

// Open prefills a fresh file name, next to the previous export if there was
// one, and focuses the input
func (ed *ExportDialog) Open() tea.Cmd {
	name := ed.exporter.GetDefaultFileName(export.FormatCSV)
	if last := ed.exporter.GetLastExportPath(); last != "" {
		name = filepath.Join(filepath.Dir(last), name)
	}
	ed.confirmed = ""
	ed.SetPath(name)
	return ed.input.Focus()
}

// Close blurs the input
func (ed *ExportDialog) Close() {
	ed.input.Blur()
}

// Path returns the entered destination
func (ed *ExportDialog) Path() string {
	return strings.TrimSpace(ed.input.Value())
}

// SetPath replaces the entered destination
func (ed *ExportDialog) SetPath(path string) {
	ed.input.SetValue(path)
	ed.input.CursorEnd()
}

// Update forwards editing keys to the path input
func (ed *ExportDialog) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	ed.input, cmd = ed.input.Update(msg)
	return cmd
}

// Submit writes rs to the entered path. An existing file is only replaced
// on a second submit of the same path; the first returns ErrFileExists.
func (ed *ExportDialog) Submit(rs *models.ResultSet) (string, error) {
	path := ed.Path()
	if path == "" {
		return "", fmt.Errorf("export path is empty")
	}
	if path != ed.confirmed && ed.exporter.FileExists(path) {
		ed.confirmed = path
		return path, export.ErrFileExists
	}
	if err := ed.exporter.Export(rs, path); err != nil {
		return path, err
	}
	return path, nil
}

// Render draws the dialog
func (ed *ExportDialog) Render(width int, rows int) string {
	innerWidth := minInt(maxInt(40, width-10), 100)
	ed.input.Width = innerWidth - len(ed.input.Prompt) - 4
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var sb strings.Builder
	title := " EXPORT RESULTS "
	sb.WriteString("┏" + title + strings.Repeat("━", maxInt(0, innerWidth-len(title))) + "\n")
	sb.WriteString(fmt.Sprintf("┃ %d rows will be written.\n", rows))
	sb.WriteString("┃ " + ed.input.View() + "\n")
	if ed.confirmed != "" && ed.confirmed == ed.Path() {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		sb.WriteString("┃ " + warn.Render("file exists: enter again to overwrite") + "\n")
	}
	sb.WriteString("┣" + strings.Repeat("━", innerWidth) + "\n")
	sb.WriteString("┃ " + dim.Render("a .json path writes JSON, anything else writes CSV") + "\n")
	sb.WriteString("┃ " + dim.Render("enter export | esc cancel") + "\n")
	return sb.String()
}
