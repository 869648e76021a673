package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/waql-tui/pkg/waql"
)

type treeLine struct {
	path      string
	text      string
	value     interface{}
	canExpand bool
	expanded  bool
}

// RowDetail shows one WAAPI object as a collapsible tree
type RowDetail struct {
	title    string
	root     interface{}
	expanded map[string]bool
	cursor   int
	scroll   int
}

// NewRowDetail creates a detail view for object
func NewRowDetail(title string, object interface{}) *RowDetail {
	return &RowDetail{
		title:    title,
		root:     object,
		expanded: map[string]bool{"$": true},
	}
}

// Lines returns the visible tree lines
func (rd *RowDetail) Lines() []treeLine {
	lines := make([]treeLine, 0, 32)
	appendTreeNode(&lines, rd.root, "$", "$", nil, true, rd.expanded)
	return lines
}

// Move shifts the cursor by delta lines
func (rd *RowDetail) Move(delta int) {
	rd.cursor = clampIndex(rd.cursor+delta, len(rd.Lines()))
}

// Expand opens the node under the cursor
func (rd *RowDetail) Expand() {
	lines := rd.Lines()
	if rd.cursor < len(lines) && lines[rd.cursor].canExpand {
		rd.expanded[lines[rd.cursor].path] = true
	}
}

// Collapse closes the node under the cursor, or jumps to its parent
func (rd *RowDetail) Collapse() {
	lines := rd.Lines()
	if rd.cursor >= len(lines) {
		return
	}
	line := lines[rd.cursor]
	if line.canExpand && line.expanded {
		rd.expanded[line.path] = false
		return
	}
	parent := parentPath(line.path)
	for i, l := range lines {
		if l.path == parent {
			rd.cursor = i
			return
		}
	}
}

// ExpandAll opens every node
func (rd *RowDetail) ExpandAll() {
	var walk func(value interface{}, path string)
	walk = func(value interface{}, path string) {
		switch typed := value.(type) {
		case map[string]interface{}:
			rd.expanded[path] = true
			for k, child := range typed {
				walk(child, path+"."+k)
			}
		case []interface{}:
			rd.expanded[path] = true
			for i, child := range typed {
				walk(child, fmt.Sprintf("%s[%d]", path, i))
			}
		}
	}
	walk(rd.root, "$")
}

// Selected returns the path and copyable value under the cursor
func (rd *RowDetail) Selected() (string, string) {
	lines := rd.Lines()
	if rd.cursor >= len(lines) {
		return "", ""
	}
	return lines[rd.cursor].path, valueForCopy(lines[rd.cursor].value)
}

// Render draws the tree inside a panel
func (rd *RowDetail) Render(width, height int, theme waql.Theme) string {
	innerWidth := minInt(maxInt(40, width-8), 120)
	rows := maxInt(5, height-8)
	lines := rd.Lines()
	rd.cursor = clampIndex(rd.cursor, len(lines))
	if rd.cursor < rd.scroll {
		rd.scroll = rd.cursor
	}
	if rd.cursor >= rd.scroll+rows {
		rd.scroll = rd.cursor - rows + 1
	}

	selected := lipgloss.NewStyle().Foreground(theme.Background).Background(theme.Function)
	fit := lipgloss.NewStyle().MaxWidth(innerWidth - 2)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var sb strings.Builder
	title := " " + rd.title + " "
	sb.WriteString("┏" + title + strings.Repeat("━", maxInt(0, innerWidth-lipgloss.Width(title))) + "\n")
	for i := rd.scroll; i < minInt(len(lines), rd.scroll+rows); i++ {
		text := fit.Render(lines[i].text)
		if i == rd.cursor {
			text = selected.Render(text)
		}
		sb.WriteString("┃ " + text + "\n")
	}
	sb.WriteString("┣" + strings.Repeat("━", innerWidth) + "\n")
	path, _ := rd.Selected()
	sb.WriteString("┃ " + dim.Render(fit.Render(path)) + "\n")
	sb.WriteString("┃ " + dim.Render("j/k move | l expand | h collapse | E expand all | y copy value | esc close") + "\n")
	return sb.String()
}

func appendTreeNode(lines *[]treeLine, value interface{}, path, label string, ancestorsHasNext []bool, isLast bool, expanded map[string]bool) {
	canExpand := isExpandable(value)
	isExpanded := canExpand && expanded[path]
	marker := "•"
	if canExpand {
		if isExpanded {
			marker = "▾"
		} else {
			marker = "▸"
		}
	}
	text := fmt.Sprintf("%s%s %s %s", treePrefix(ancestorsHasNext, isLast), marker, label, summarizeValue(value))

	*lines = append(*lines, treeLine{
		path:      path,
		value:     value,
		canExpand: canExpand,
		expanded:  isExpanded,
		text:      text,
	})

	if !isExpanded {
		return
	}

	nextAncestors := append([]bool{}, ancestorsHasNext...)
	nextAncestors = append(nextAncestors, !isLast)

	switch typed := value.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			appendTreeNode(lines, typed[k], path+"."+k, k+":", nextAncestors, i == len(keys)-1, expanded)
		}
	case []interface{}:
		for i, child := range typed {
			childPath := fmt.Sprintf("%s[%d]", path, i)
			appendTreeNode(lines, child, childPath, "["+strconv.Itoa(i)+"]:", nextAncestors, i == len(typed)-1, expanded)
		}
	}
}

func treePrefix(ancestorsHasNext []bool, isLast bool) string {
	if len(ancestorsHasNext) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < len(ancestorsHasNext)-1; i++ {
		if ancestorsHasNext[i] {
			sb.WriteString("│  ")
		} else {
			sb.WriteString("   ")
		}
	}
	if isLast {
		sb.WriteString("└─ ")
	} else {
		sb.WriteString("├─ ")
	}
	return sb.String()
}

func isExpandable(value interface{}) bool {
	switch typed := value.(type) {
	case map[string]interface{}:
		return len(typed) > 0
	case []interface{}:
		return len(typed) > 0
	}
	return false
}

func summarizeValue(value interface{}) string {
	switch typed := value.(type) {
	case map[string]interface{}:
		return fmt.Sprintf("{...} (%d keys)", len(typed))
	case []interface{}:
		return fmt.Sprintf("[...] (%d items)", len(typed))
	case string:
		if len(typed) > 72 {
			return strconv.Quote(typed[:69] + "...")
		}
		return strconv.Quote(typed)
	case nil:
		return "null"
	case float64:
		return "= " + strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("= %v", typed)
	}
}

func parentPath(path string) string {
	if path == "$" {
		return ""
	}
	idxDot := strings.LastIndex(path, ".")
	idxBracket := strings.LastIndex(path, "[")
	idx := maxInt(idxDot, idxBracket)
	if idx <= 0 {
		return "$"
	}
	return path[:idx]
}

func valueForCopy(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case map[string]interface{}, []interface{}:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(data)
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// returnedObjects decodes the object items of a raw WAAPI response
func returnedObjects(rawJSON string) []map[string]interface{} {
	var body map[string]interface{}
	if err := json.Unmarshal([]byte(rawJSON), &body); err != nil {
		return nil
	}
	items, _ := body["return"].([]interface{})
	objects := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			objects = append(objects, obj)
		}
	}
	return objects
}
