package waql

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is an editor colour palette
type Theme struct {
	Name        string
	Dark        bool
	Background  lipgloss.Color
	Foreground  lipgloss.Color
	Selection   lipgloss.Color
	Comment     lipgloss.Color
	Keyword     lipgloss.Color
	Type        lipgloss.Color
	Special     lipgloss.Color
	Str         lipgloss.Color
	Numeric     lipgloss.Color
	Function    lipgloss.Color
	Punctuation lipgloss.Color
}

// DefaultThemeName is the theme used when none or an unknown one is chosen
const DefaultThemeName = "GRUVBOX"

// Themes lists every available palette in display order
var Themes = []Theme{
	{
		Name: "AYU", Dark: false,
		Background: "#fafafa", Foreground: "#5c6166", Selection: "#d1e4f4",
		Comment: "#adaeb1", Keyword: "#fa8d3e", Type: "#399ee6", Special: "#e6ba7e",
		Str: "#86b300", Numeric: "#a37acc", Function: "#f2ae49", Punctuation: "#5c6166",
	},
	{
		Name: "AYU_MIRAGE", Dark: true,
		Background: "#1f2430", Foreground: "#cccac2", Selection: "#33415e",
		Comment: "#5c6773", Keyword: "#ffa659", Type: "#73d0ff", Special: "#ffdfb3",
		Str: "#d5ff80", Numeric: "#dfbfff", Function: "#ffcd66", Punctuation: "#cccac2",
	},
	{
		Name: "AYU_DARK", Dark: true,
		Background: "#0f1419", Foreground: "#bfbdb6", Selection: "#273747",
		Comment: "#5c6773", Keyword: "#ff8f40", Type: "#59c2ff", Special: "#e6b673",
		Str: "#aad94c", Numeric: "#d2a6ff", Function: "#ffb454", Punctuation: "#bfbdb6",
	},
	{
		Name: "GITHUB_DARK", Dark: true,
		Background: "#0d1117", Foreground: "#c9d1d9", Selection: "#264f78",
		Comment: "#8b949e", Keyword: "#ff7b72", Type: "#ffa657", Special: "#d2a8ff",
		Str: "#a5d6ff", Numeric: "#79c0ff", Function: "#d2a8ff", Punctuation: "#c9d1d9",
	},
	{
		Name: "GITHUB_LIGHT", Dark: false,
		Background: "#ffffff", Foreground: "#24292f", Selection: "#b6e3ff",
		Comment: "#6e7781", Keyword: "#cf222e", Type: "#953800", Special: "#8250df",
		Str: "#0a3069", Numeric: "#0550ae", Function: "#8250df", Punctuation: "#24292f",
	},
	{
		Name: "GRUVBOX", Dark: true,
		Background: "#282828", Foreground: "#ebdbb2", Selection: "#504945",
		Comment: "#928374", Keyword: "#fb4934", Type: "#fabd2f", Special: "#fe8019",
		Str: "#b8bb26", Numeric: "#d3869b", Function: "#8ec07c", Punctuation: "#a89984",
	},
	{
		Name: "GRUVBOX_LIGHT", Dark: false,
		Background: "#fbf1c7", Foreground: "#3c3836", Selection: "#d5c4a1",
		Comment: "#928374", Keyword: "#9d0006", Type: "#b57614", Special: "#af3a03",
		Str: "#79740e", Numeric: "#8f3f71", Function: "#427b58", Punctuation: "#7c6f64",
	},
	{
		Name: "SONOKAI", Dark: true,
		Background: "#2c2e34", Foreground: "#e2e2e3", Selection: "#414550",
		Comment: "#7f8490", Keyword: "#fc5d7c", Type: "#76cce0", Special: "#f39660",
		Str: "#e7c664", Numeric: "#b39df3", Function: "#9ed072", Punctuation: "#e2e2e3",
	},
}

// ThemeNames returns the names of all themes in display order
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName looks a theme up case-insensitively, falling back to GRUVBOX
func ThemeByName(name string) Theme {
	if t, ok := LookupTheme(name); ok {
		return t
	}
	t, _ := LookupTheme(DefaultThemeName)
	return t
}

// LookupTheme reports whether a theme with the given name exists
func LookupTheme(name string) (Theme, bool) {
	name = strings.TrimSpace(name)
	for _, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Theme{}, false
}

// Color returns the foreground colour for a token kind
func (t Theme) Color(kind TokenKind) lipgloss.Color {
	switch kind {
	case Keyword:
		return t.Keyword
	case Type:
		return t.Type
	case Special:
		return t.Special
	case Str:
		return t.Str
	case Numeric:
		return t.Numeric
	case Comment:
		return t.Comment
	case Function:
		return t.Function
	case Punctuation:
		return t.Punctuation
	default:
		return t.Foreground
	}
}

// Style returns the lipgloss style for a token kind
func (t Theme) Style(kind TokenKind) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(t.Color(kind))
	switch kind {
	case Keyword:
		style = style.Bold(true)
	case Comment:
		style = style.Italic(true)
	}
	return style
}

// Highlight renders text with the theme using the default WAQL syntax
func Highlight(text string, theme Theme) string {
	return HighlightWithCursor(DefaultSyntax(), text, -1, theme)
}

// HighlightWithCursor renders text and draws a block cursor at byte offset
// cursor. A negative cursor draws none. Lines are styled independently so the
// result can be split on "\n".
func HighlightWithCursor(syntax *Syntax, text string, cursor int, theme Theme) string {
	cursorStyle := lipgloss.NewStyle().
		Foreground(theme.Background).
		Background(theme.Foreground)

	var sb strings.Builder
	offset := 0
	drawn := false
	for _, tok := range syntax.Tokenize(text) {
		style := theme.Style(tok.Kind)
		end := offset + len(tok.Text)
		if cursor >= offset && cursor < end && !drawn {
			rel := cursor - offset
			sb.WriteString(renderLines(style, tok.Text[:rel], tok.Kind))
			r := tok.Text[rel:]
			size := runeLen(r)
			ch := r[:size]
			if ch == "\n" {
				sb.WriteString(cursorStyle.Render(" "))
				sb.WriteString("\n")
			} else {
				sb.WriteString(cursorStyle.Render(ch))
			}
			sb.WriteString(renderLines(style, r[size:], tok.Kind))
			drawn = true
		} else {
			sb.WriteString(renderLines(style, tok.Text, tok.Kind))
		}
		offset = end
	}
	if cursor >= offset && !drawn {
		sb.WriteString(cursorStyle.Render(" "))
	}
	return sb.String()
}

func renderLines(style lipgloss.Style, text string, kind TokenKind) string {
	if text == "" {
		return ""
	}
	if kind == Whitespace {
		return text
	}
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		if p != "" {
			parts[i] = style.Render(p)
		}
	}
	return strings.Join(parts, "\n")
}

func runeLen(s string) int {
	for i := range s {
		if i > 0 {
			return i
		}
	}
	return len(s)
}
