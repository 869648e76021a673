package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/waql-tui/pkg/models"
	"github.com/user/waql-tui/pkg/waql"
)

const (
	maxColumnWidth = 48
	minColumnWidth = 4
	indexColumn    = "#"
)

// ResultsView shows a result set in a scrollable table
type ResultsView struct {
	table     table.Model
	result    *models.ResultSet
	rawJSON   string
	showRaw   bool
	rawScroll int
	width     int
	height    int
	focused   bool
}

// NewResultsView creates an empty results table
func NewResultsView() *ResultsView {
	t := table.New(table.WithFocused(false), table.WithHeight(10))
	return &ResultsView{
		table:  t,
		width:  120,
		height: 10,
	}
}

// SetTheme styles the header and selected row
func (rv *ResultsView) SetTheme(theme waql.Theme) {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Comment).
		BorderBottom(true).
		Bold(true).
		Foreground(theme.Type)
	styles.Selected = styles.Selected.
		Foreground(theme.Background).
		Background(theme.Function).
		Bold(false)
	rv.table.SetStyles(styles)
}

// SetResult replaces the displayed result set
func (rv *ResultsView) SetResult(rs *models.ResultSet, rawJSON string) {
	rv.result = rs
	rv.rawJSON = rawJSON
	rv.rawScroll = 0
	rv.rebuild()
	rv.table.SetCursor(0)
}

// Clear removes the displayed result set
func (rv *ResultsView) Clear() {
	rv.SetResult(nil, "")
}

// Result returns the result set being displayed
func (rv *ResultsView) Result() *models.ResultSet {
	return rv.result
}

// SetSize sets the area the table may use
func (rv *ResultsView) SetSize(width, height int) {
	rv.width = width
	rv.height = maxInt(3, height)
	rv.table.SetWidth(width)
	rv.table.SetHeight(rv.height - 1)
}

// Focus gives the table keyboard focus
func (rv *ResultsView) Focus() {
	rv.focused = true
	rv.table.Focus()
}

// Blur removes keyboard focus
func (rv *ResultsView) Blur() {
	rv.focused = false
	rv.table.Blur()
}

// ToggleRaw switches between the table and the raw JSON response
func (rv *ResultsView) ToggleRaw() bool {
	rv.showRaw = !rv.showRaw
	rv.rawScroll = 0
	return rv.showRaw
}

// ShowingRaw reports whether the raw JSON view is active
func (rv *ResultsView) ShowingRaw() bool {
	return rv.showRaw
}

// SelectedIndex returns the selected row, or -1 when empty
func (rv *ResultsView) SelectedIndex() int {
	if rv.result.IsEmpty() {
		return -1
	}
	return rv.table.Cursor()
}

// SelectedObject returns the decoded WAAPI object behind the selected row
func (rv *ResultsView) SelectedObject() (map[string]interface{}, bool) {
	idx := rv.SelectedIndex()
	if idx < 0 {
		return nil, false
	}
	objects := returnedObjects(rv.rawJSON)
	if idx >= len(objects) {
		return nil, false
	}
	return objects[idx], true
}

// Update forwards navigation keys to the table
func (rv *ResultsView) Update(msg tea.Msg) tea.Cmd {
	if rv.showRaw {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "j", "down":
				rv.rawScroll++
			case "k", "up":
				rv.rawScroll = maxInt(0, rv.rawScroll-1)
			case "g", "home":
				rv.rawScroll = 0
			}
		}
		return nil
	}
	var cmd tea.Cmd
	rv.table, cmd = rv.table.Update(msg)
	return cmd
}

// Render draws the results pane
func (rv *ResultsView) Render() string {
	var sb strings.Builder

	count := rv.result.Len()
	title := fmt.Sprintf("RESULTS (%d)", count)
	if rv.showRaw {
		title += " [RAW JSON]"
	}
	titleStyled := lipgloss.NewStyle().Bold(true).Render(title)
	corner := "┣"
	if rv.focused {
		corner = "┏"
	}
	sb.WriteString(fmt.Sprintf("%s %s %s\n", corner, titleStyled, strings.Repeat("━", maxInt(0, rv.width-lipgloss.Width(titleStyled)-3))))

	switch {
	case rv.showRaw:
		sb.WriteString(rv.renderRaw())
	case count == 0:
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("  No results. Run a query with enter."))
		sb.WriteString("\n")
	default:
		sb.WriteString(rv.table.View())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (rv *ResultsView) renderRaw() string {
	if rv.rawJSON == "" {
		return "  (no response)\n"
	}
	lines := strings.Split(rv.rawJSON, "\n")
	rows := maxInt(1, rv.height-1)
	start := minInt(rv.rawScroll, maxInt(0, len(lines)-rows))
	end := minInt(len(lines), start+rows)

	var sb strings.Builder
	style := lipgloss.NewStyle().MaxWidth(maxInt(10, rv.width-2))
	for _, line := range lines[start:end] {
		sb.WriteString("  " + style.Render(line) + "\n")
	}
	return sb.String()
}

// rebuild recomputes table columns and rows from the result set
func (rv *ResultsView) rebuild() {
	rs := rv.result
	if rs.IsEmpty() {
		rv.table.SetRows(nil)
		rv.table.SetColumns([]table.Column{{Title: indexColumn, Width: minColumnWidth}})
		return
	}

	indexWidth := maxInt(minColumnWidth, len(strconv.Itoa(rs.Len()))+1)
	widths := make([]int, len(rs.Columns))
	for j, col := range rs.Columns {
		widths[j] = len(col)
	}
	for _, record := range rs.Records() {
		for j, value := range record {
			widths[j] = maxInt(widths[j], lipgloss.Width(value))
		}
	}

	columns := make([]table.Column, 0, len(rs.Columns)+1)
	columns = append(columns, table.Column{Title: indexColumn, Width: indexWidth})
	for j, col := range rs.Columns {
		columns = append(columns, table.Column{
			Title: col,
			Width: minInt(maxColumnWidth, maxInt(minColumnWidth, widths[j])),
		})
	}

	rows := make([]table.Row, 0, rs.Len())
	for i, record := range rs.Records() {
		row := make(table.Row, 0, len(record)+1)
		row = append(row, strconv.Itoa(i+1))
		for _, value := range record {
			row = append(row, strings.ReplaceAll(value, "\n", " "))
		}
		rows = append(rows, row)
	}

	rv.table.SetRows(nil)
	rv.table.SetColumns(columns)
	rv.table.SetRows(rows)
}
