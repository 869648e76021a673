package waql

import (
	"strings"
	"unicode/utf8"
)

// MaxCandidates caps the number of completions offered at once
const MaxCandidates = 10

// Completer offers word completions from the syntax tables, WAAPI
// properties and accessors, and user keywords.
type Completer struct {
	words []string
	seen  map[string]bool
}

// NewCompleter seeds a completer with the syntax words, properties and accessors
func NewCompleter(syntax *Syntax) *Completer {
	c := &Completer{seen: make(map[string]bool)}
	if syntax != nil {
		for _, w := range syntax.Words() {
			c.PushWord(w)
		}
	}
	for _, w := range Properties {
		c.PushWord(w)
	}
	for _, w := range Accessors {
		c.PushWord(w)
	}
	return c
}

// PushWord adds a word. Empty and already known words are ignored.
func (c *Completer) PushWord(word string) bool {
	word = strings.TrimSpace(word)
	if word == "" || c.seen[word] {
		return false
	}
	c.seen[word] = true
	c.words = append(c.words, word)
	return true
}

// Words returns every known word in insertion order
func (c *Completer) Words() []string {
	return append([]string{}, c.words...)
}

// Complete returns the word fragment ending at byte offset cursor and the
// known words it is a case-insensitive prefix of. Exact matches are left out.
func (c *Completer) Complete(text string, cursor int) (string, []string) {
	prefix := WordBefore(text, cursor)
	if prefix == "" {
		return "", nil
	}

	lower := strings.ToLower(prefix)
	var candidates []string
	for _, w := range c.words {
		lw := strings.ToLower(w)
		if lw == lower || !strings.HasPrefix(lw, lower) {
			continue
		}
		candidates = append(candidates, w)
		if len(candidates) == MaxCandidates {
			break
		}
	}
	return prefix, candidates
}

// Apply replaces the fragment before cursor with candidate and returns the
// new text and cursor.
func (c *Completer) Apply(text string, cursor int, candidate string) (string, int) {
	cursor = clampOffset(text, cursor)
	prefix := WordBefore(text, cursor)
	start := cursor - len(prefix)
	out := text[:start] + candidate + text[cursor:]
	return out, start + len(candidate)
}

// WordBefore returns the run of word characters ending at byte offset cursor
func WordBefore(text string, cursor int) string {
	cursor = clampOffset(text, cursor)
	start := cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isWordRune(r) {
			break
		}
		start -= size
	}
	return text[start:cursor]
}

func clampOffset(text string, cursor int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > len(text) {
		return len(text)
	}
	return cursor
}
