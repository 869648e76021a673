package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/user/waql-tui/pkg/models"
)

// SettingsFileName is the settings document inside the config dir
const SettingsFileName = "user_data.json"

// Font size bounds for the editor
const (
	DefaultFontSize = 18
	MinFontSize     = 10
	MaxFontSize     = 32
)

// DefaultThemeName is used when no theme has been chosen
const DefaultThemeName = "GRUVBOX"

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// Settings holds the user-managed preferences, persisted as one document
type Settings struct {
	SavedQueries   []models.SavedQuery `json:"saved_queries"`
	CustomKeywords []string            `json:"custom_keywords"`
	ThemeName      string              `json:"theme_name"`
	FontSize       int                 `json:"fontsize"`
}

// DefaultSettings returns empty settings with the default theme and font size
func DefaultSettings() Settings {
	return Settings{
		SavedQueries:   []models.SavedQuery{},
		CustomKeywords: []string{},
		ThemeName:      DefaultThemeName,
		FontSize:       DefaultFontSize,
	}
}

// UnmarshalJSON accepts both the current document and the older layout where
// saved queries were plain strings and the font size was a float.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw struct {
		SavedQueries   []json.RawMessage `json:"saved_queries"`
		CustomKeywords []string          `json:"custom_keywords"`
		ThemeName      *string           `json:"theme_name"`
		FontSize       *float64          `json:"fontsize"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := DefaultSettings()
	for _, item := range raw.SavedQueries {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			out.SavedQueries = append(out.SavedQueries, models.SavedQuery{
				Name:  DeriveQueryName(text),
				Query: text,
			})
			continue
		}
		var q models.SavedQuery
		if err := json.Unmarshal(item, &q); err != nil {
			return fmt.Errorf("invalid saved query entry: %w", err)
		}
		out.SavedQueries = append(out.SavedQueries, q)
	}
	if raw.CustomKeywords != nil {
		out.CustomKeywords = raw.CustomKeywords
	}
	if raw.ThemeName != nil && strings.TrimSpace(*raw.ThemeName) != "" {
		out.ThemeName = *raw.ThemeName
	}
	if raw.FontSize != nil {
		out.FontSize = ClampFontSize(int(math.Round(*raw.FontSize)))
	}

	*s = out
	return nil
}

// ClampFontSize bounds n to [MinFontSize, MaxFontSize]
func ClampFontSize(n int) int {
	if n < MinFontSize {
		return MinFontSize
	}
	if n > MaxFontSize {
		return MaxFontSize
	}
	return n
}

// SettingsPath returns the settings file location
func SettingsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, SettingsFileName), nil
}

// LoadSettings loads the settings document. A missing file yields defaults and
// no error; an unreadable or malformed file yields defaults and the error.
func LoadSettings() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return DefaultSettings(), err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings overwrites the settings document
func SaveSettings(s Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return SaveSettingsTo(path, s)
}

// SaveSettingsTo writes settings to an explicit path
func SaveSettingsTo(path string, s Settings) error {
	if s.SavedQueries == nil {
		s.SavedQueries = []models.SavedQuery{}
	}
	if s.CustomKeywords == nil {
		s.CustomKeywords = []string{}
	}
	s.FontSize = ClampFontSize(s.FontSize)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// AddSavedQuery stores a query under name. Identical query text already saved
// is a no-op; an existing name has its text replaced. Returns whether the
// settings changed.
func (s *Settings) AddSavedQuery(name, text string) bool {
	text = strings.TrimSpace(text)
	name = strings.TrimSpace(name)
	if text == "" {
		return false
	}

	for _, q := range s.SavedQueries {
		if q.Query == text {
			return false
		}
	}

	if name == "" {
		name = s.uniqueName(DeriveQueryName(text))
	}

	for i := range s.SavedQueries {
		if s.SavedQueries[i].Name == name {
			s.SavedQueries[i].Query = text
			return true
		}
	}

	id, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		id = ""
	}
	s.SavedQueries = append(s.SavedQueries, models.SavedQuery{
		ID:    id,
		Name:  name,
		Query: text,
	})
	return true
}

func (s *Settings) uniqueName(base string) string {
	name := base
	for n := 2; ; n++ {
		if _, taken := s.FindSavedQuery(name); !taken {
			return name
		}
		name = fmt.Sprintf("%s (%d)", base, n)
	}
}

// RemoveSavedQuery deletes the saved query at index
func (s *Settings) RemoveSavedQuery(index int) (models.SavedQuery, bool) {
	if index < 0 || index >= len(s.SavedQueries) {
		return models.SavedQuery{}, false
	}
	removed := s.SavedQueries[index]
	s.SavedQueries = append(s.SavedQueries[:index], s.SavedQueries[index+1:]...)
	return removed, true
}

// FindSavedQuery looks up a saved query by name or id
func (s *Settings) FindSavedQuery(key string) (int, bool) {
	key = strings.TrimSpace(key)
	for i, q := range s.SavedQueries {
		if q.Name == key || (q.ID != "" && q.ID == key) {
			return i, true
		}
	}
	return -1, false
}

// AddCustomKeyword adds a completion keyword. Empty and duplicate keywords
// are ignored.
func (s *Settings) AddCustomKeyword(keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false
	}
	for _, k := range s.CustomKeywords {
		if k == keyword {
			return false
		}
	}
	s.CustomKeywords = append(s.CustomKeywords, keyword)
	return true
}

// RemoveCustomKeyword deletes the keyword at index
func (s *Settings) RemoveCustomKeyword(index int) (string, bool) {
	if index < 0 || index >= len(s.CustomKeywords) {
		return "", false
	}
	removed := s.CustomKeywords[index]
	s.CustomKeywords = append(s.CustomKeywords[:index], s.CustomKeywords[index+1:]...)
	return removed, true
}

// SetFontSize clamps and stores the font size, returning the stored value
func (s *Settings) SetFontSize(size int) int {
	s.FontSize = ClampFontSize(size)
	return s.FontSize
}

// SetTheme stores the theme name
func (s *Settings) SetTheme(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultThemeName
	}
	s.ThemeName = name
}

// maxDerivedNameRunes caps names derived from query text
const maxDerivedNameRunes = 42

// DeriveQueryName builds a display name from the first meaningful line
func DeriveQueryName(text string) string {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if r := []rune(line); len(r) > maxDerivedNameRunes {
			line = string(r[:maxDerivedNameRunes]) + "..."
		}
		return line
	}
	return "Saved query"
}
