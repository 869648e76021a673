package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpEntry is one line of the reference card
type helpEntry struct {
	keys   string
	action string
}

// helpSection groups entries under a heading
type helpSection struct {
	title   string
	entries []helpEntry
}

// editor chords handled outside the key map
var editorChords = []helpEntry{
	{"up / down", "choose completion candidate"},
	{"ctrl+a", "select all query text"},
	{"ctrl+/", "toggle // comment on the current line"},
	{"ctrl+left/right", "move by word"},
	{"ctrl+w", "delete previous word"},
	{"ctrl+d", "duplicate line"},
	{"alt+] / alt+[", "indent / outdent line"},
	{"query | f1 f2", "return only properties f1 and f2"},
}

var resultChords = []helpEntry{
	{"j / k", "move selection"},
	{"y (in tree)", "copy node value"},
	{"E (in tree)", "expand every node"},
}

// HelpModal is the full-screen key reference
type HelpModal struct {
	visible  bool
	keys     keyMap
	short    help.Model
	sections []helpSection
}

// NewHelpModal creates a new help modal
func NewHelpModal() *HelpModal {
	keys := newKeyMap()
	return &HelpModal{
		keys:     keys,
		short:    help.New(),
		sections: buildHelpSections(keys),
	}
}

// buildHelpSections lists the key map groups followed by the extra chords
func buildHelpSections(k keyMap) []helpSection {
	titles := []string{"Query", "Results", "General"}
	extras := [][]helpEntry{editorChords, resultChords, nil}

	sections := make([]helpSection, 0, len(titles))
	for i, group := range k.FullHelp() {
		section := helpSection{title: titles[i]}
		for _, b := range group {
			section.entries = append(section.entries, bindingEntry(b))
		}
		section.entries = append(section.entries, extras[i]...)
		sections = append(sections, section)
	}
	return sections
}

func bindingEntry(b key.Binding) helpEntry {
	h := b.Help()
	return helpEntry{keys: h.Key, action: h.Desc}
}

// SetVisible toggles visibility
func (hm *HelpModal) SetVisible(visible bool) {
	hm.visible = visible
}

// IsVisible returns current visibility state
func (hm *HelpModal) IsVisible() bool {
	return hm.visible
}

// Render draws the reference card. Wide terminals get two columns.
func (hm *HelpModal) Render(width, height int) string {
	if !hm.visible {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Render("WAQL TOOL HELP")
	subtitle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("Query Wwise objects through WAAPI. esc or f1 closes this page.")

	inner := maxInt(width-6, 30)
	var body string
	if inner >= 100 {
		colWidth := inner/2 - 1
		left := hm.renderSections(hm.sections[:1], colWidth)
		right := hm.renderSections(hm.sections[1:], colWidth)
		body = renderHorizontalSplit([]string{left, right}, []int{colWidth + 2, colWidth})
	} else {
		body = hm.renderSections(hm.sections, inner)
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 1)
	return box.Render(title + "\n" + subtitle + "\n\n" + strings.TrimRight(body, "\n"))
}

func (hm *HelpModal) renderSections(sections []helpSection, width int) string {
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	keyWidth := 0
	for _, s := range sections {
		for _, e := range s.entries {
			keyWidth = maxInt(keyWidth, len(e.keys))
		}
	}
	actionWidth := maxInt(width-keyWidth-3, 10)

	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(headingStyle.Render(strings.ToUpper(s.title)) + "\n")
		for _, e := range s.entries {
			for j, line := range wrapMultiline(e.action, actionWidth, 0) {
				cell := ""
				if j == 0 {
					cell = e.keys
				}
				sb.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-*s", keyWidth, cell)), line))
			}
		}
	}
	return sb.String()
}

// GetShortHelp returns a one-line key reference fitted to width
func (hm *HelpModal) GetShortHelp(width int) string {
	hm.short.Width = width
	return hm.short.ShortHelpView(hm.keys.ShortHelp())
}
