package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/waql-tui/pkg/waql"
)

// maxPopupRows is how many completion candidates are listed at once
const maxPopupRows = 6

// Editor handles WAQL query editing with highlighting and completion
type Editor struct {
	input     string
	cursorPos int
	selectAll bool

	syntax    *waql.Syntax
	completer *waql.Completer
	theme     waql.Theme

	candidates   []string
	candidateIdx int
	popupOpen    bool
}

// NewEditor creates a new query editor
func NewEditor(syntax *waql.Syntax, completer *waql.Completer, theme waql.Theme) *Editor {
	if syntax == nil {
		syntax = waql.DefaultSyntax()
	}
	if completer == nil {
		completer = waql.NewCompleter(syntax)
	}
	return &Editor{
		syntax:    syntax,
		completer: completer,
		theme:     theme,
	}
}

// SetTheme changes the highlighting palette
func (ed *Editor) SetTheme(theme waql.Theme) {
	ed.theme = theme
}

// SetCompleter replaces the completion source
func (ed *Editor) SetCompleter(completer *waql.Completer) {
	ed.completer = completer
	ed.closePopup()
}

// Completer returns the completer the editor draws candidates from
func (ed *Editor) Completer() *waql.Completer {
	return ed.completer
}

// HandleKey processes keyboard input
func (ed *Editor) HandleKey(key string) {
	if ed.selectAll {
		switch key {
		case "left", "right", "up", "down", "home", "end", "line-home", "line-end", "word-left", "word-right":
			ed.selectAll = false
		case "backspace", "delete":
			ed.input = ""
			ed.cursorPos = 0
			ed.selectAll = false
			ed.closePopup()
			return
		default:
			if key == "newline" || key == "\r" || utf8.RuneCountInString(key) == 1 {
				ed.input = ""
				ed.cursorPos = 0
				ed.selectAll = false
			}
		}
	}

	typed := false
	switch key {
	case "\r", "newline":
		ed.insert("\n")
	case "backspace":
		if ed.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(ed.input[:ed.cursorPos])
			ed.input = ed.input[:ed.cursorPos-size] + ed.input[ed.cursorPos:]
			ed.cursorPos -= size
			typed = ed.popupOpen
		}
	case "delete":
		if ed.cursorPos < len(ed.input) {
			_, size := utf8.DecodeRuneInString(ed.input[ed.cursorPos:])
			ed.input = ed.input[:ed.cursorPos] + ed.input[ed.cursorPos+size:]
		}
	case "left":
		if ed.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(ed.input[:ed.cursorPos])
			ed.cursorPos -= size
		}
	case "right":
		if ed.cursorPos < len(ed.input) {
			_, size := utf8.DecodeRuneInString(ed.input[ed.cursorPos:])
			ed.cursorPos += size
		}
	case "up":
		ed.moveVertical(-1)
	case "down":
		ed.moveVertical(1)
	case "home":
		ed.cursorPos = 0
	case "end":
		ed.cursorPos = len(ed.input)
	case "line-home":
		ed.cursorPos = ed.currentLineStart()
	case "line-end":
		ed.cursorPos = ed.currentLineEnd()
	case "select-all":
		ed.cursorPos = len(ed.input)
		ed.selectAll = true
	case "word-left":
		ed.cursorPos = ed.wordLeft(ed.cursorPos)
	case "word-right":
		ed.cursorPos = ed.wordRight(ed.cursorPos)
	case "delete-word-left":
		start := ed.wordLeft(ed.cursorPos)
		if start < ed.cursorPos {
			ed.input = ed.input[:start] + ed.input[ed.cursorPos:]
			ed.cursorPos = start
		}
	case "delete-word-right":
		end := ed.wordRight(ed.cursorPos)
		if end > ed.cursorPos {
			ed.input = ed.input[:ed.cursorPos] + ed.input[end:]
		}
	case "toggle-comment":
		ed.toggleCommentOnCurrentLine()
	case "duplicate-line":
		ed.duplicateCurrentLine()
	case "indent":
		ed.indentCurrentLine()
	case "unindent":
		ed.unindentCurrentLine()
	default:
		if utf8.RuneCountInString(key) == 1 {
			ed.insert(key)
			typed = true
		}
	}

	if typed {
		ed.refreshCompletions()
	} else {
		ed.closePopup()
	}
}

func (ed *Editor) insert(s string) {
	ed.input = ed.input[:ed.cursorPos] + s + ed.input[ed.cursorPos:]
	ed.cursorPos += len(s)
	ed.selectAll = false
}

// InsertText inserts pasted text at the cursor
func (ed *Editor) InsertText(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if ed.selectAll {
		ed.input = ""
		ed.cursorPos = 0
	}
	ed.insert(s)
	ed.closePopup()
}

// refreshCompletions recomputes candidates for the word before the cursor
func (ed *Editor) refreshCompletions() {
	_, candidates := ed.completer.Complete(ed.input, ed.cursorPos)
	ed.candidates = candidates
	ed.candidateIdx = 0
	ed.popupOpen = len(candidates) > 0
}

func (ed *Editor) closePopup() {
	ed.popupOpen = false
	ed.candidates = nil
	ed.candidateIdx = 0
}

// PopupOpen reports whether completion candidates are showing
func (ed *Editor) PopupOpen() bool {
	return ed.popupOpen
}

// Candidates returns the completion candidates currently offered
func (ed *Editor) Candidates() []string {
	return append([]string{}, ed.candidates...)
}

// TriggerCompletion opens the popup for the word before the cursor
func (ed *Editor) TriggerCompletion() bool {
	ed.refreshCompletions()
	return ed.popupOpen
}

// MoveSelection moves the highlighted candidate by delta, wrapping around
func (ed *Editor) MoveSelection(delta int) {
	if !ed.popupOpen || len(ed.candidates) == 0 {
		return
	}
	n := len(ed.candidates)
	ed.candidateIdx = ((ed.candidateIdx+delta)%n + n) % n
}

// AcceptCompletion replaces the word before the cursor with the selected candidate
func (ed *Editor) AcceptCompletion() bool {
	if !ed.popupOpen || len(ed.candidates) == 0 {
		return false
	}
	ed.input, ed.cursorPos = ed.completer.Apply(ed.input, ed.cursorPos, ed.candidates[ed.candidateIdx])
	ed.closePopup()
	return true
}

// DismissCompletion hides the popup
func (ed *Editor) DismissCompletion() {
	ed.closePopup()
}

// GetInput returns the current query text
func (ed *Editor) GetInput() string {
	return ed.input
}

// Cursor returns the byte offset of the cursor
func (ed *Editor) Cursor() int {
	return ed.cursorPos
}

// SetInput replaces the query text and moves the cursor to the end
func (ed *Editor) SetInput(input string) {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")
	ed.input = input
	ed.cursorPos = len(input)
	ed.selectAll = false
	ed.closePopup()
}

// Clear clears the input
func (ed *Editor) Clear() {
	ed.SetInput("")
}

// Render draws the editor pane with rows lines of text
func (ed *Editor) Render(width, rows int, focused bool) string {
	var sb strings.Builder

	title := "WAQL EDITOR"
	if focused {
		title = "WAQL EDITOR [EDITING]"
	}
	titleStyled := lipgloss.NewStyle().Bold(true).
		Foreground(ed.theme.Background).
		Background(ed.theme.Keyword).
		Padding(0, 1).
		Render(title)
	sb.WriteString(fmt.Sprintf("┏ %s %s\n", titleStyled, strings.Repeat("━", maxInt(0, width-lipgloss.Width(titleStyled)-3))))

	cursor := -1
	if focused {
		cursor = ed.cursorPos
	}
	lines := strings.Split(waql.HighlightWithCursor(ed.syntax, ed.input, cursor, ed.theme), "\n")
	if ed.input == "" && !focused {
		hint := lipgloss.NewStyle().Foreground(ed.theme.Comment).Render("$ from type Sound | name id path")
		lines = []string{hint}
	}

	rows = maxInt(1, rows)
	cursorLine, _ := lineColAt(ed.input, ed.cursorPos)
	start := 0
	if cursorLine >= rows {
		start = cursorLine - rows + 1
	}
	lineStyle := lipgloss.NewStyle().MaxWidth(maxInt(10, width-4))
	gutter := lipgloss.NewStyle().Foreground(ed.theme.Comment)
	for i := start; i < start+rows; i++ {
		text := ""
		if i < len(lines) {
			text = lineStyle.Render(lines[i])
		}
		sb.WriteString("┃ " + gutter.Render(fmt.Sprintf("%3d ", i+1)) + text + "\n")
		if focused && ed.popupOpen && i == cursorLine {
			sb.WriteString(ed.renderPopup(width))
		}
	}

	if ed.selectAll {
		sb.WriteString("┃ Selection: all query text\n")
	}
	return sb.String()
}

func (ed *Editor) renderPopup(width int) string {
	var sb strings.Builder
	_, col := lineColAt(ed.input, ed.cursorPos)
	prefix := waql.WordBefore(ed.input, ed.cursorPos)
	indent := strings.Repeat(" ", maxInt(0, minInt(col-len(prefix)+4, width-30)))

	normal := lipgloss.NewStyle().Foreground(ed.theme.Foreground).Background(ed.theme.Selection)
	selected := lipgloss.NewStyle().Bold(true).Foreground(ed.theme.Background).Background(ed.theme.Function)

	start := 0
	if ed.candidateIdx >= maxPopupRows {
		start = ed.candidateIdx - maxPopupRows + 1
	}
	end := minInt(len(ed.candidates), start+maxPopupRows)
	itemWidth := 0
	for _, c := range ed.candidates {
		itemWidth = maxInt(itemWidth, len(c))
	}
	for i := start; i < end; i++ {
		item := fmt.Sprintf(" %-*s ", itemWidth, ed.candidates[i])
		if i == ed.candidateIdx {
			item = selected.Render(item)
		} else {
			item = normal.Render(item)
		}
		sb.WriteString("┃ " + indent + item + "\n")
	}
	return sb.String()
}

func (ed *Editor) moveVertical(delta int) {
	currentLine, currentCol := lineColAt(ed.input, ed.cursorPos)
	targetLine := currentLine + delta
	if targetLine < 0 {
		targetLine = 0
	}

	lines := strings.Split(ed.input, "\n")
	if targetLine >= len(lines) {
		targetLine = len(lines) - 1
	}
	ed.cursorPos = indexAtLineCol(lines, targetLine, currentCol)
}

func lineColAt(input string, cursor int) (int, int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(input) {
		cursor = len(input)
	}
	before := input[:cursor]
	line := strings.Count(before, "\n")
	col := len(before) - (strings.LastIndex(before, "\n") + 1)
	return line, col
}

func indexAtLineCol(lines []string, targetLine, targetCol int) int {
	if len(lines) == 0 {
		return 0
	}
	if targetLine < 0 {
		targetLine = 0
	}
	if targetLine >= len(lines) {
		targetLine = len(lines) - 1
	}
	if targetCol < 0 {
		targetCol = 0
	}
	if targetCol > len(lines[targetLine]) {
		targetCol = len(lines[targetLine])
	}

	idx := 0
	for i := 0; i < targetLine; i++ {
		idx += len(lines[i]) + 1
	}
	return idx + targetCol
}

func (ed *Editor) currentLineStart() int {
	if ed.cursorPos <= 0 {
		return 0
	}
	idx := strings.LastIndex(ed.input[:ed.cursorPos], "\n")
	if idx < 0 {
		return 0
	}
	return idx + 1
}

func (ed *Editor) currentLineEnd() int {
	if ed.cursorPos >= len(ed.input) {
		return len(ed.input)
	}
	idx := strings.Index(ed.input[ed.cursorPos:], "\n")
	if idx < 0 {
		return len(ed.input)
	}
	return ed.cursorPos + idx
}

func (ed *Editor) currentLineBounds() (int, int) {
	return ed.currentLineStart(), ed.currentLineEnd()
}

func (ed *Editor) toggleCommentOnCurrentLine() {
	start, end := ed.currentLineBounds()
	line := ed.input[start:end]
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	switch {
	case strings.HasPrefix(trimmed, "// "):
		trimmed = strings.TrimPrefix(trimmed, "// ")
	case strings.HasPrefix(trimmed, "//"):
		trimmed = strings.TrimPrefix(trimmed, "//")
	default:
		trimmed = "// " + trimmed
	}
	updated := indent + trimmed
	ed.input = ed.input[:start] + updated + ed.input[end:]
	if ed.cursorPos > end {
		ed.cursorPos += len(updated) - len(line)
	} else if ed.cursorPos >= start {
		ed.cursorPos = minInt(start+len(updated), len(ed.input))
	}
}

func (ed *Editor) duplicateCurrentLine() {
	start, end := ed.currentLineBounds()
	insert := "\n" + ed.input[start:end]
	ed.input = ed.input[:end] + insert + ed.input[end:]
	ed.cursorPos = end + len(insert)
}

func (ed *Editor) indentCurrentLine() {
	start, _ := ed.currentLineBounds()
	ed.input = ed.input[:start] + "  " + ed.input[start:]
	if ed.cursorPos >= start {
		ed.cursorPos += 2
	}
}

func (ed *Editor) unindentCurrentLine() {
	start, end := ed.currentLineBounds()
	line := ed.input[start:end]
	remove := 0
	if strings.HasPrefix(line, "  ") {
		remove = 2
	} else if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, " ") {
		remove = 1
	}
	if remove == 0 {
		return
	}
	ed.input = ed.input[:start] + line[remove:] + ed.input[end:]
	if ed.cursorPos > start {
		ed.cursorPos = maxInt(start, ed.cursorPos-remove)
	}
}

func (ed *Editor) wordLeft(pos int) int {
	if pos <= 0 {
		return 0
	}
	i := pos
	for i > 0 && isWordBoundary(ed.input[i-1]) {
		i--
	}
	for i > 0 && !isWordBoundary(ed.input[i-1]) {
		i--
	}
	return i
}

func (ed *Editor) wordRight(pos int) int {
	if pos >= len(ed.input) {
		return len(ed.input)
	}
	i := pos
	for i < len(ed.input) && isWordBoundary(ed.input[i]) {
		i++
	}
	for i < len(ed.input) && !isWordBoundary(ed.input[i]) {
		i++
	}
	return i
}

func isWordBoundary(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' ||
		ch == '(' || ch == ')' || ch == '[' || ch == ']' || ch == '{' || ch == '}' ||
		ch == '"' || ch == '\'' || ch == ',' || ch == ';' || ch == '=' ||
		ch == '|' || ch == '.' || ch == '<' || ch == '>'
}
