package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHorizontalSplit renders multiple panes side-by-side
func renderHorizontalSplit(panes []string, widths []int) string {
	if len(panes) == 0 {
		return ""
	}

	// Split each pane into lines
	paneLines := make([][]string, len(panes))
	maxHeight := 0

	for i, pane := range panes {
		lines := strings.Split(strings.TrimRight(pane, "\n"), "\n")
		paneLines[i] = lines
		if len(lines) > maxHeight {
			maxHeight = len(lines)
		}
	}

	// Normalize heights
	for i := range paneLines {
		for len(paneLines[i]) < maxHeight {
			paneLines[i] = append(paneLines[i], "")
		}
	}

	// Combine lines
	var result []string
	for lineIdx := 0; lineIdx < maxHeight; lineIdx++ {
		var lineParts []string
		for paneIdx := range paneLines {
			lineParts = append(lineParts, fitWidth(paneLines[paneIdx][lineIdx], widths[paneIdx]))
		}
		result = append(result, strings.Join(lineParts, ""))
	}

	return strings.Join(result, "\n")
}

// renderVerticalSplit stacks panes, giving each exactly its height in lines
func renderVerticalSplit(panes []string, heights []int) string {
	var out []string
	for i, pane := range panes {
		lines := strings.Split(strings.TrimRight(pane, "\n"), "\n")
		if i < len(heights) && heights[i] > 0 {
			for len(lines) < heights[i] {
				lines = append(lines, "")
			}
			lines = lines[:heights[i]]
		}
		out = append(out, lines...)
	}
	return strings.Join(out, "\n") + "\n"
}

// fitWidth pads or cuts a possibly styled line to exactly width cells
func fitWidth(line string, width int) string {
	w := lipgloss.Width(line)
	if w > width {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
		w = lipgloss.Width(line)
	}
	if w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

// renderCenteredPopup draws popup over the middle of base
func renderCenteredPopup(base, popup string, width, height int) string {
	baseLines := strings.Split(strings.TrimRight(base, "\n"), "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	popupLines := strings.Split(strings.TrimRight(popup, "\n"), "\n")
	if len(popupLines) == 0 {
		return base
	}
	popupWidth := 0
	for _, line := range popupLines {
		popupWidth = maxInt(popupWidth, lipgloss.Width(line))
	}
	startRow := maxInt(1, (height-len(popupLines))/2)
	leftPad := maxInt(0, (width-popupWidth)/2)
	for i, line := range popupLines {
		row := startRow + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		baseLines[row] = strings.Repeat(" ", leftPad) + fitWidth(line, popupWidth)
	}
	return strings.Join(baseLines, "\n")
}

// wrapMultiline hard-wraps input to width, keeping at most maxLines
func wrapMultiline(input string, width int, maxLines int) []string {
	if width < 8 {
		width = 8
	}
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")
	rawLines := strings.Split(input, "\n")
	out := make([]string, 0, len(rawLines))
	for _, raw := range rawLines {
		if raw == "" {
			out = append(out, "")
			continue
		}
		line := []rune(raw)
		for len(line) > width {
			out = append(out, string(line[:width]))
			line = line[width:]
		}
		out = append(out, string(line))
	}
	if maxLines > 0 && len(out) > maxLines {
		out = out[:maxLines]
		last := []rune(out[maxLines-1])
		if len(last) > width-3 {
			last = last[:width-3]
		}
		out[maxLines-1] = string(last) + "..."
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
