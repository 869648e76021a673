package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Status message levels
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// StatusLine keeps recent notices and renders the newest one
type StatusLine struct {
	messages []StatusMessage
	maxSize  int
}

// StatusMessage represents a single notice
type StatusMessage struct {
	Text      string
	Level     string
	Timestamp time.Time
	Duration  time.Duration
}

// NewStatusLine creates an empty status line
func NewStatusLine() *StatusLine {
	return &StatusLine{
		messages: []StatusMessage{},
		maxSize:  10,
	}
}

// Add records a notice. A zero duration keeps it until replaced.
func (sl *StatusLine) Add(level, text string, duration time.Duration) {
	sl.messages = append(sl.messages, StatusMessage{
		Text:      text,
		Level:     level,
		Timestamp: time.Now(),
		Duration:  duration,
	})

	if len(sl.messages) > sl.maxSize {
		sl.messages = sl.messages[len(sl.messages)-sl.maxSize:]
	}
}

// Info records an informational notice
func (sl *StatusLine) Info(text string) {
	sl.Add(LevelInfo, text, 0)
}

// Success records a success notice
func (sl *StatusLine) Success(text string) {
	sl.Add(LevelSuccess, text, 0)
}

// Error records an error notice
func (sl *StatusLine) Error(text string) {
	sl.Add(LevelError, text, 0)
}

// ClearExpired removes expired messages
func (sl *StatusLine) ClearExpired() {
	now := time.Now()
	var active []StatusMessage

	for _, msg := range sl.messages {
		if msg.Duration == 0 || now.Sub(msg.Timestamp) < msg.Duration {
			active = append(active, msg)
		}
	}

	sl.messages = active
}

// GetLatest returns the most recent message
func (sl *StatusLine) GetLatest() *StatusMessage {
	sl.ClearExpired()
	if len(sl.messages) == 0 {
		return nil
	}
	return &sl.messages[len(sl.messages)-1]
}

// LatestText returns the text of the newest message, or ""
func (sl *StatusLine) LatestText() string {
	if latest := sl.GetLatest(); latest != nil {
		return latest.Text
	}
	return ""
}

// HasErrors reports whether the newest message is an error
func (sl *StatusLine) HasErrors() bool {
	latest := sl.GetLatest()
	return latest != nil && latest.Level == LevelError
}

// Render renders the newest message on one line
func (sl *StatusLine) Render(width int) string {
	latest := sl.GetLatest()
	if latest == nil {
		return ""
	}

	msg := strings.ReplaceAll(latest.Text, "\n", " ")
	if width > 10 && len(msg) > width-4 {
		msg = msg[:width-7] + "..."
	}

	color := lipgloss.Color("250")
	prefix := ""
	switch latest.Level {
	case LevelError:
		color = lipgloss.Color("203")
		prefix = "⚠ "
	case LevelSuccess:
		color = lipgloss.Color("114")
		prefix = "✓ "
	}
	return lipgloss.NewStyle().Foreground(color).Render(prefix + msg)
}

// RenderList renders all active messages, oldest first
func (sl *StatusLine) RenderList(width, maxHeight int) string {
	sl.ClearExpired()

	if len(sl.messages) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Recent Notices"))
	sb.WriteString("\n")

	count := minInt(len(sl.messages), maxHeight)
	for i := len(sl.messages) - count; i < len(sl.messages); i++ {
		text := sl.messages[i].Text
		if width > 10 && len(text) > width-5 {
			text = text[:width-8] + "..."
		}
		sb.WriteString("  • ")
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Clear removes all messages
func (sl *StatusLine) Clear() {
	sl.messages = []StatusMessage{}
}
