package ui

import (
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/waql-tui/pkg/config"
)

func TestSettingsPanelSectionsWrap(t *testing.T) {
	s := config.DefaultSettings()
	sp := NewSettingsPanel(&s)

	sp.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	if sp.Section() != sectionKeywords {
		t.Errorf("shift+tab from the first section should wrap, got %d", sp.Section())
	}
	sp.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if sp.Section() != sectionTheme {
		t.Errorf("tab from the last section should wrap, got %d", sp.Section())
	}
}

func TestSettingsPanelThemeCycle(t *testing.T) {
	s := config.DefaultSettings()
	sp := NewSettingsPanel(&s)

	action := sp.HandleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if action.Kind != ActionThemeChanged || s.ThemeName != "GITHUB_LIGHT" {
		t.Errorf("Expected previous theme, got %+v / %q", action, s.ThemeName)
	}
	if !action.Changed() {
		t.Error("Theme change should be persisted")
	}

	s.ThemeName = "SONOKAI"
	sp.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	if s.ThemeName != "AYU" {
		t.Errorf("Cycling past the last theme should wrap, got %q", s.ThemeName)
	}
}

func TestSettingsPanelFontSize(t *testing.T) {
	s := config.DefaultSettings()
	s.FontSize = config.MinFontSize
	sp := NewSettingsPanel(&s)
	sp.HandleKey(tea.KeyMsg{Type: tea.KeyTab})

	if action := sp.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")}); action.Kind != ActionNone {
		t.Errorf("Below minimum should be a no-op, got %+v", action)
	}
	action := sp.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	want := config.MinFontSize + 1
	if action.Kind != ActionFontChanged || action.Value != strconv.Itoa(want) || s.FontSize != want {
		t.Errorf("Expected font size %d, got %+v / %d", want, action, s.FontSize)
	}
}

func TestSettingsPanelSavedQueries(t *testing.T) {
	s := config.DefaultSettings()
	s.AddSavedQuery("sounds", "$ from type Sound")
	s.AddSavedQuery("buses", "$ from type Bus")
	sp := NewSettingsPanel(&s)
	sp.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	sp.HandleKey(tea.KeyMsg{Type: tea.KeyTab})

	sp.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	action := sp.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action.Kind != ActionLoadQuery || action.Value != "$ from type Bus" {
		t.Errorf("Expected second query loaded, got %+v", action)
	}

	action = sp.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if action.Kind != ActionRemoveQuery || action.Value != "buses" {
		t.Errorf("Expected buses removed, got %+v", action)
	}
	if len(s.SavedQueries) != 1 || sp.savedCursor != 0 {
		t.Errorf("Cursor should move onto the remaining query, got %d queries cursor %d", len(s.SavedQueries), sp.savedCursor)
	}

	sp.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if action := sp.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}); action.Kind != ActionNone {
		t.Errorf("Deleting from an empty list should be a no-op, got %+v", action)
	}
}

func TestSettingsPanelKeywordInput(t *testing.T) {
	s := config.DefaultSettings()
	sp := NewSettingsPanel(&s)
	for i := 0; i < sectionKeywords; i++ {
		sp.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	}

	sp.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if !sp.Editing() {
		t.Fatal("a should focus the keyword input")
	}
	sp.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("  ")})
	if action := sp.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action.Kind != ActionRejected {
		t.Errorf("Blank keyword should be rejected, got %+v", action)
	}

	sp.kwInput.SetValue("")
	sp.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("MusicBus")})
	action := sp.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action.Kind != ActionAddKeyword || action.Value != "MusicBus" {
		t.Errorf("Expected keyword added, got %+v", action)
	}

	sp.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if sp.Editing() {
		t.Error("esc should leave the keyword input")
	}
	out := sp.Render(120, 40)
	if !strings.Contains(out, "MusicBus") || !strings.Contains(out, "Custom Keywords (1)") {
		t.Errorf("Render should list the keyword, got %q", out)
	}
}

func TestSettingsPanelRender(t *testing.T) {
	s := config.DefaultSettings()
	sp := NewSettingsPanel(&s)
	out := sp.Render(120, 40)

	for _, want := range []string{"SETTINGS", "Theme", "GRUVBOX", "Font Size", "18 pt", "Saved Queries (0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q", want)
		}
	}
}

func TestTruncateWideRunes(t *testing.T) {
	got := truncate("音效音效音效音效音效", 9)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate split a rune: %q", got)
	}
	if w := lipgloss.Width(got); w > 9 {
		t.Errorf("Expected at most 9 cells, got %d (%q)", w, got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected an ellipsis, got %q", got)
	}
	if truncate("short", 9) != "short" {
		t.Error("Short text should be unchanged")
	}
}
