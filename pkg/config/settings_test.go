package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.ThemeName != "GRUVBOX" {
		t.Errorf("Expected default theme GRUVBOX, got %s", s.ThemeName)
	}
	if s.FontSize != DefaultFontSize {
		t.Errorf("Expected font size %d, got %d", DefaultFontSize, s.FontSize)
	}
	if len(s.SavedQueries) != 0 || len(s.CustomKeywords) != 0 {
		t.Error("Default settings should have no saved queries or keywords")
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !reflect.DeepEqual(s, DefaultSettings()) {
		t.Errorf("Expected defaults, got %+v", s)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	s := DefaultSettings()
	s.AddSavedQuery("Sounds", "$ from type Sound")
	s.AddSavedQuery("", "$ from type Event | name id")
	s.AddCustomKeyword("MyProperty")
	s.SetTheme("SONOKAI")
	s.SetFontSize(22)

	if err := SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings after save failed: %v", err)
	}

	if !reflect.DeepEqual(loaded, s) {
		t.Errorf("Round trip mismatch:\nsaved:  %+v\nloaded: %+v", s, loaded)
	}
}

func TestLoadSettingsCorruptFileFallsBack(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	path, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := LoadSettings()
	if err == nil {
		t.Error("Expected parse error for corrupt settings")
	}
	if !reflect.DeepEqual(s, DefaultSettings()) {
		t.Errorf("Expected defaults on parse failure, got %+v", s)
	}
}

func TestLoadSettingsLegacyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	legacy := `{
  "saved_queries": ["$ from type Sound", "$ from type Event"],
  "theme_name": "AYU_DARK",
  "fontsize": 20.0,
  "custom_keywords": ["Footsteps"]
}`
	if err := os.WriteFile(path, []byte(legacy), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom failed: %v", err)
	}

	if len(s.SavedQueries) != 2 {
		t.Fatalf("Expected 2 saved queries, got %d", len(s.SavedQueries))
	}
	if s.SavedQueries[0].Query != "$ from type Sound" || s.SavedQueries[0].Name != "$ from type Sound" {
		t.Errorf("Unexpected legacy conversion: %+v", s.SavedQueries[0])
	}
	if s.ThemeName != "AYU_DARK" || s.FontSize != 20 {
		t.Errorf("Unexpected theme/font: %s/%d", s.ThemeName, s.FontSize)
	}
	if len(s.CustomKeywords) != 1 || s.CustomKeywords[0] != "Footsteps" {
		t.Errorf("Unexpected keywords: %v", s.CustomKeywords)
	}
}

func TestLoadSettingsClampsFontSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	if err := os.WriteFile(path, []byte(`{"fontsize": 400}`), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom failed: %v", err)
	}
	if s.FontSize != MaxFontSize {
		t.Errorf("Expected clamped font size %d, got %d", MaxFontSize, s.FontSize)
	}
	if s.ThemeName != DefaultThemeName {
		t.Errorf("Missing theme should default, got %s", s.ThemeName)
	}
}

func TestSaveSettingsWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", SettingsFileName)
	if err := SaveSettingsTo(path, DefaultSettings()); err == nil {
		t.Error("Expected write error for missing directory")
	}
}

func TestSetFontSize(t *testing.T) {
	tests := []struct {
		in       int
		expected int
	}{
		{18, 18},
		{8, 10},
		{33, 32},
		{MinFontSize - 1, MinFontSize},
		{0, MinFontSize},
		{MaxFontSize + 10, MaxFontSize},
		{MaxFontSize, MaxFontSize},
	}

	for _, tt := range tests {
		s := DefaultSettings()
		if got := s.SetFontSize(tt.in); got != tt.expected || s.FontSize != tt.expected {
			t.Errorf("SetFontSize(%d): expected %d, got %d", tt.in, tt.expected, got)
		}
	}
}

func TestAddSavedQuery(t *testing.T) {
	s := DefaultSettings()

	if !s.AddSavedQuery("Sounds", "$ from type Sound") {
		t.Fatal("First add should succeed")
	}
	if s.AddSavedQuery("Other name", "  $ from type Sound  ") {
		t.Error("Identical query text should be a no-op")
	}
	if s.AddSavedQuery("x", "   ") {
		t.Error("Empty query should be rejected")
	}
	if len(s.SavedQueries) != 1 {
		t.Fatalf("Expected 1 saved query, got %d", len(s.SavedQueries))
	}
	if s.SavedQueries[0].ID == "" {
		t.Error("Saved query should get an id")
	}

	if !s.AddSavedQuery("Sounds", "$ from type Sound | name") {
		t.Error("Saving under an existing name should replace its text")
	}
	if len(s.SavedQueries) != 1 || s.SavedQueries[0].Query != "$ from type Sound | name" {
		t.Errorf("Expected replaced text, got %+v", s.SavedQueries)
	}
}

func TestAddSavedQueryDerivedNamesStayUnique(t *testing.T) {
	s := DefaultSettings()
	prefix := strings.Repeat("a", 50)

	s.AddSavedQuery("", prefix+"1")
	s.AddSavedQuery("", prefix+"2")

	if len(s.SavedQueries) != 2 {
		t.Fatalf("Expected 2 saved queries, got %d", len(s.SavedQueries))
	}
	if s.SavedQueries[0].Name == s.SavedQueries[1].Name {
		t.Errorf("Derived names should be unique: %q", s.SavedQueries[0].Name)
	}
}

func TestRemoveSavedQuery(t *testing.T) {
	s := DefaultSettings()
	s.AddSavedQuery("a", "$ from type Sound")
	s.AddSavedQuery("b", "$ from type Event")

	removed, ok := s.RemoveSavedQuery(0)
	if !ok || removed.Name != "a" {
		t.Errorf("Expected to remove 'a', got %+v (%v)", removed, ok)
	}
	if _, ok := s.RemoveSavedQuery(5); ok {
		t.Error("Out of range removal should fail")
	}
	if len(s.SavedQueries) != 1 || s.SavedQueries[0].Name != "b" {
		t.Errorf("Unexpected remaining queries: %+v", s.SavedQueries)
	}
}

func TestCustomKeywords(t *testing.T) {
	s := DefaultSettings()

	if !s.AddCustomKeyword("keyword1") {
		t.Error("First add should succeed")
	}
	if s.AddCustomKeyword("keyword1") {
		t.Error("Duplicate keyword should be a no-op")
	}
	if s.AddCustomKeyword(" keyword1 ") {
		t.Error("Duplicate after trimming should be a no-op")
	}
	if s.AddCustomKeyword("") {
		t.Error("Empty keyword should be rejected")
	}
	if len(s.CustomKeywords) != 1 {
		t.Errorf("Expected 1 keyword, got %d", len(s.CustomKeywords))
	}

	removed, ok := s.RemoveCustomKeyword(0)
	if !ok || removed != "keyword1" {
		t.Errorf("Expected to remove keyword1, got %q", removed)
	}
	if _, ok := s.RemoveCustomKeyword(0); ok {
		t.Error("Removing from empty list should fail")
	}
}

func TestDeriveQueryName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"$ from type Sound", "$ from type Sound"},
		{"// comment\n$ from type Event", "$ from type Event"},
		{"\n\n", "Saved query"},
		{strings.Repeat("x", 50), strings.Repeat("x", 42) + "..."},
		{"$ where name = \"" + strings.Repeat("音效", 20) + "\"", "$ where name = \"" + strings.Repeat("音效", 13) + "..."},
	}

	for _, tt := range tests {
		got := DeriveQueryName(tt.input)
		if got != tt.expected {
			t.Errorf("DeriveQueryName(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
		if !utf8.ValidString(got) {
			t.Errorf("DeriveQueryName(%q) produced invalid UTF-8", tt.input)
		}
	}
}

func TestSavedQueryCJKNameSurvivesSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	s := DefaultSettings()
	s.AddSavedQuery("", "$ where name = \""+strings.Repeat("音效", 30)+"\"")
	want := s.SavedQueries[0].Name

	if err := SaveSettingsTo(path, s); err != nil {
		t.Fatalf("SaveSettingsTo failed: %v", err)
	}
	loaded, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom failed: %v", err)
	}
	if loaded.SavedQueries[0].Name != want {
		t.Errorf("Name changed on disk: %q vs %q", loaded.SavedQueries[0].Name, want)
	}
}
