package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/waql-tui/pkg/config"
	"github.com/user/waql-tui/pkg/waql"
)

// Settings panel sections
const (
	sectionTheme = iota
	sectionFont
	sectionSaved
	sectionKeywords
	sectionCount
)

// Settings actions reported back to the app
const (
	ActionNone          = ""
	ActionThemeChanged  = "theme"
	ActionFontChanged   = "font"
	ActionLoadQuery     = "load-query"
	ActionRemoveQuery   = "remove-query"
	ActionAddKeyword    = "add-keyword"
	ActionRemoveKeyword = "remove-keyword"
	ActionRejected      = "rejected"
)

// SettingsAction describes what a key press changed
type SettingsAction struct {
	Kind  string
	Value string
}

// Changed reports whether the settings document was modified
func (a SettingsAction) Changed() bool {
	switch a.Kind {
	case ActionThemeChanged, ActionFontChanged, ActionRemoveQuery, ActionAddKeyword, ActionRemoveKeyword:
		return true
	}
	return false
}

// SettingsPanel edits theme, font size, saved queries and custom keywords
type SettingsPanel struct {
	settings    *config.Settings
	section     int
	savedCursor int
	kwCursor    int
	kwInput     textinput.Model
}

// NewSettingsPanel creates a panel editing settings in place
func NewSettingsPanel(settings *config.Settings) *SettingsPanel {
	ti := textinput.New()
	ti.Placeholder = "new keyword"
	ti.CharLimit = 64
	ti.Prompt = "+ "
	return &SettingsPanel{
		settings: settings,
		kwInput:  ti,
	}
}

// Editing reports whether the keyword input has focus
func (sp *SettingsPanel) Editing() bool {
	return sp.kwInput.Focused()
}

// Section returns the focused section index
func (sp *SettingsPanel) Section() int {
	return sp.section
}

// HandleKey applies a key press to the settings
func (sp *SettingsPanel) HandleKey(msg tea.KeyMsg) SettingsAction {
	if sp.kwInput.Focused() {
		return sp.handleKeywordInput(msg)
	}

	switch msg.String() {
	case "tab", "shift+down":
		sp.section = (sp.section + 1) % sectionCount
		return SettingsAction{}
	case "shift+tab", "shift+up":
		sp.section = (sp.section + sectionCount - 1) % sectionCount
		return SettingsAction{}
	}

	switch sp.section {
	case sectionTheme:
		switch msg.String() {
		case "left", "h", "up", "k":
			return sp.cycleTheme(-1)
		case "right", "l", "down", "j", "enter", " ":
			return sp.cycleTheme(1)
		}
	case sectionFont:
		switch msg.String() {
		case "left", "h", "-", "down", "j":
			return sp.changeFont(-1)
		case "right", "l", "+", "=", "up", "k":
			return sp.changeFont(1)
		case "r", "0":
			return sp.setFont(config.DefaultFontSize)
		}
	case sectionSaved:
		n := len(sp.settings.SavedQueries)
		switch msg.String() {
		case "up", "k":
			sp.savedCursor = clampIndex(sp.savedCursor-1, n)
		case "down", "j":
			sp.savedCursor = clampIndex(sp.savedCursor+1, n)
		case "enter":
			if n > 0 {
				return SettingsAction{Kind: ActionLoadQuery, Value: sp.settings.SavedQueries[sp.savedCursor].Query}
			}
		case "d", "delete", "backspace":
			if removed, ok := sp.settings.RemoveSavedQuery(sp.savedCursor); ok {
				sp.savedCursor = clampIndex(sp.savedCursor, len(sp.settings.SavedQueries))
				return SettingsAction{Kind: ActionRemoveQuery, Value: removed.Name}
			}
		}
	case sectionKeywords:
		n := len(sp.settings.CustomKeywords)
		switch msg.String() {
		case "up", "k":
			sp.kwCursor = clampIndex(sp.kwCursor-1, n)
		case "down", "j":
			sp.kwCursor = clampIndex(sp.kwCursor+1, n)
		case "a", "i", "enter":
			sp.kwInput.Focus()
		case "d", "delete", "backspace":
			if removed, ok := sp.settings.RemoveCustomKeyword(sp.kwCursor); ok {
				sp.kwCursor = clampIndex(sp.kwCursor, len(sp.settings.CustomKeywords))
				return SettingsAction{Kind: ActionRemoveKeyword, Value: removed}
			}
		}
	}
	return SettingsAction{}
}

func (sp *SettingsPanel) handleKeywordInput(msg tea.KeyMsg) SettingsAction {
	switch msg.String() {
	case "esc":
		sp.kwInput.Blur()
		sp.kwInput.SetValue("")
		return SettingsAction{}
	case "enter":
		keyword := strings.TrimSpace(sp.kwInput.Value())
		if !sp.settings.AddCustomKeyword(keyword) {
			return SettingsAction{Kind: ActionRejected, Value: keyword}
		}
		sp.kwInput.SetValue("")
		sp.kwCursor = len(sp.settings.CustomKeywords) - 1
		return SettingsAction{Kind: ActionAddKeyword, Value: keyword}
	}
	sp.kwInput, _ = sp.kwInput.Update(msg)
	return SettingsAction{}
}

func (sp *SettingsPanel) cycleTheme(delta int) SettingsAction {
	names := waql.ThemeNames()
	current := 0
	for i, name := range names {
		if strings.EqualFold(name, sp.settings.ThemeName) {
			current = i
			break
		}
	}
	next := names[(current+delta+len(names))%len(names)]
	sp.settings.SetTheme(next)
	return SettingsAction{Kind: ActionThemeChanged, Value: next}
}

func (sp *SettingsPanel) changeFont(delta int) SettingsAction {
	return sp.setFont(sp.settings.FontSize + delta)
}

func (sp *SettingsPanel) setFont(size int) SettingsAction {
	before := sp.settings.FontSize
	after := sp.settings.SetFontSize(size)
	if after == before {
		return SettingsAction{}
	}
	return SettingsAction{Kind: ActionFontChanged, Value: fmt.Sprintf("%d", after)}
}

// Render draws the panel
func (sp *SettingsPanel) Render(width, height int) string {
	theme := waql.ThemeByName(sp.settings.ThemeName)
	heading := func(section int, title string) string {
		style := lipgloss.NewStyle().Bold(true).Foreground(theme.Type)
		marker := "  "
		if section == sp.section {
			marker = "▶ "
			style = style.Underline(true).Foreground(theme.Keyword)
		}
		return marker + style.Render(title)
	}
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	selected := lipgloss.NewStyle().Bold(true).Foreground(theme.Function)

	innerWidth := minInt(maxInt(44, width-10), 110)
	half := innerWidth / 2

	var left strings.Builder
	left.WriteString(heading(sectionTheme, "Theme") + "\n")
	for _, name := range waql.ThemeNames() {
		if strings.EqualFold(name, sp.settings.ThemeName) {
			left.WriteString("    " + selected.Render("● "+name) + "\n")
		} else {
			left.WriteString("    " + dim.Render("○ "+name) + "\n")
		}
	}
	left.WriteString("\n")
	left.WriteString(heading(sectionFont, "Font Size") + "\n")
	bar := strings.Repeat("█", sp.settings.FontSize-config.MinFontSize+1)
	left.WriteString(fmt.Sprintf("    %2d pt %s\n", sp.settings.FontSize, dim.Render(bar)))
	left.WriteString("    " + dim.Render(fmt.Sprintf("%d-%d, r resets to %d", config.MinFontSize, config.MaxFontSize, config.DefaultFontSize)) + "\n")

	listRows := maxInt(3, (height-14)/2)
	var right strings.Builder
	right.WriteString(heading(sectionSaved, fmt.Sprintf("Saved Queries (%d)", len(sp.settings.SavedQueries))) + "\n")
	if len(sp.settings.SavedQueries) == 0 {
		right.WriteString("    " + dim.Render("ctrl+s in the editor saves a query") + "\n")
	}
	start := windowStart(sp.savedCursor, listRows)
	for i := start; i < minInt(len(sp.settings.SavedQueries), start+listRows); i++ {
		line := truncate(sp.settings.SavedQueries[i].Name, half-6)
		if sp.section == sectionSaved && i == sp.savedCursor {
			right.WriteString("  ▸ " + selected.Render(line) + "\n")
		} else {
			right.WriteString("    " + line + "\n")
		}
	}
	right.WriteString("\n")
	right.WriteString(heading(sectionKeywords, fmt.Sprintf("Custom Keywords (%d)", len(sp.settings.CustomKeywords))) + "\n")
	start = windowStart(sp.kwCursor, listRows)
	for i := start; i < minInt(len(sp.settings.CustomKeywords), start+listRows); i++ {
		line := truncate(sp.settings.CustomKeywords[i], half-6)
		if sp.section == sectionKeywords && i == sp.kwCursor {
			right.WriteString("  ▸ " + selected.Render(line) + "\n")
		} else {
			right.WriteString("    " + line + "\n")
		}
	}
	if sp.kwInput.Focused() {
		right.WriteString("    " + sp.kwInput.View() + "\n")
	}

	body := renderHorizontalSplit([]string{left.String(), right.String()}, []int{half, innerWidth - half})

	var sb strings.Builder
	title := " SETTINGS "
	sb.WriteString("┏" + title + strings.Repeat("━", maxInt(0, innerWidth-len(title))) + "\n")
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		sb.WriteString("┃ " + line + "\n")
	}
	sb.WriteString("┣" + strings.Repeat("━", innerWidth) + "\n")
	sb.WriteString("┃ " + dim.Render(sp.hint()) + "\n")
	return sb.String()
}

func (sp *SettingsPanel) hint() string {
	if sp.kwInput.Focused() {
		return "enter add keyword | esc cancel"
	}
	switch sp.section {
	case sectionTheme:
		return "tab section | left/right theme | esc close"
	case sectionFont:
		return "tab section | -/+ size | r reset | esc close"
	case sectionSaved:
		return "tab section | j/k move | enter load | d delete | esc close"
	default:
		return "tab section | a add | d delete | esc close"
	}
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func windowStart(cursor, rows int) int {
	if cursor >= rows {
		return cursor - rows + 1
	}
	return 0
}

// truncate fits s into width terminal cells
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 3 {
		return s
	}
	return ansi.Truncate(s, width, "...")
}
