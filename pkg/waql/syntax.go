// Package waql holds the WAQL vocabulary used by the editor: keyword and
// object type tables, WAAPI properties and accessors, a tokenizer, colour
// themes and the word completer.
package waql

import "strings"

// Keywords are the WAQL statement keywords
var Keywords = []string{
	"from", "object", "type", "project", "search", "query",
	"where", "select", "orderby", "reverse", "skip", "take", "distinct",
	"and", "or", "not", "true", "false", "null",
	"contains", "count", "any", "all", "first", "last",
}

// Types are the Wwise object types accepted after "from type"
var Types = []string{
	"Action", "ActionException", "ActorMixer", "AudioDevice", "AudioSource",
	"AuxBus", "BlendContainer", "BlendTrack", "Bus", "ControlSurfaceBinding",
	"ControlSurfaceBindingGroup", "ControlSurfaceSession", "Conversion",
	"CustomState", "DialogueEvent", "Effect", "Event", "ExternalSource",
	"ExternalSourceFile", "Folder", "GameParameter", "Language", "Metadata",
	"MidiParameter", "MixingSession", "Modifier", "ModulatorEnvelope",
	"ModulatorLfo", "ModulatorTime", "MultiSwitchEntry", "MusicClip",
	"MusicClipMidi", "MusicCue", "MusicEventCue", "MusicFade",
	"MusicPlaylistContainer", "MusicPlaylistItem", "MusicSegment",
	"MusicStinger", "MusicSwitchContainer", "MusicTrack", "MusicTrackSequence",
	"MusicTransition", "ObjectSettingAssoc", "Panner", "Path", "Platform",
	"PluginDataSource", "Position", "Project", "Query", "RandomSequenceContainer",
	"SearchCriteria", "Sound", "SoundBank", "SoundcasterSession", "State",
	"StateGroup", "Switch", "SwitchContainer", "SwitchGroup", "Trigger",
	"UserProjectSettings", "WorkUnit",
}

// Specials are the object references that start a WAQL statement
var Specials = []string{"$"}

// Syntax describes the WAQL language for tokenizing and completion
type Syntax struct {
	Language      string
	CaseSensitive bool
	Comment       string
	Keywords      []string
	Types         []string
	Specials      []string

	keywords map[string]bool
	types    map[string]bool
	specials map[string]bool
}

// DefaultSyntax returns the WAQL syntax
func DefaultSyntax() *Syntax {
	return NewSyntax("WAQL", false, "//", Keywords, Types, Specials)
}

// NewSyntax builds a syntax from word tables
func NewSyntax(language string, caseSensitive bool, comment string, keywords, types, specials []string) *Syntax {
	s := &Syntax{
		Language:      language,
		CaseSensitive: caseSensitive,
		Comment:       comment,
		Keywords:      append([]string{}, keywords...),
		Types:         append([]string{}, types...),
		Specials:      append([]string{}, specials...),
	}
	s.keywords = s.index(keywords)
	s.types = s.index(types)
	s.specials = s.index(specials)
	return s
}

func (s *Syntax) index(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[s.fold(w)] = true
	}
	return m
}

func (s *Syntax) fold(word string) string {
	if s.CaseSensitive {
		return word
	}
	return strings.ToLower(word)
}

// IsKeyword reports whether word is a statement keyword
func (s *Syntax) IsKeyword(word string) bool {
	return s.keywords[s.fold(word)]
}

// IsType reports whether word is an object type
func (s *Syntax) IsType(word string) bool {
	return s.types[s.fold(word)]
}

// IsSpecial reports whether word is a special object reference
func (s *Syntax) IsSpecial(word string) bool {
	return s.specials[s.fold(word)]
}

// Words returns every keyword, type and special in table order
func (s *Syntax) Words() []string {
	words := make([]string, 0, len(s.Keywords)+len(s.Types)+len(s.Specials))
	words = append(words, s.Keywords...)
	words = append(words, s.Types...)
	words = append(words, s.Specials...)
	return words
}
