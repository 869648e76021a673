package waql

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a span of editor text
type TokenKind int

// Token kinds
const (
	Unknown TokenKind = iota
	Keyword
	Type
	Special
	Str
	Numeric
	Comment
	Punctuation
	Function
	Whitespace
)

func (k TokenKind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case Type:
		return "type"
	case Special:
		return "special"
	case Str:
		return "string"
	case Numeric:
		return "numeric"
	case Comment:
		return "comment"
	case Punctuation:
		return "punctuation"
	case Function:
		return "function"
	case Whitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// Token is a classified span of text
type Token struct {
	Kind TokenKind
	Text string
}

// Tokenize splits text into tokens. Concatenating the token texts always
// gives back the input.
func (s *Syntax) Tokenize(text string) []Token {
	var tokens []Token
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		start := i

		switch {
		case unicode.IsSpace(r):
			i = scanWhile(text, i, unicode.IsSpace)
			tokens = append(tokens, Token{Whitespace, text[start:i]})

		case s.Comment != "" && strings.HasPrefix(text[i:], s.Comment):
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				i = len(text)
			} else {
				i += end
			}
			tokens = append(tokens, Token{Comment, text[start:i]})

		case r == '"':
			i = scanString(text, i)
			tokens = append(tokens, Token{Str, text[start:i]})

		case unicode.IsDigit(r) || (r == '-' && i+1 < len(text) && isDigitByte(text[i+1]) && numberMayStart(tokens)):
			i += size
			i = scanWhile(text, i, func(r rune) bool { return unicode.IsDigit(r) || r == '.' })
			tokens = append(tokens, Token{Numeric, text[start:i]})

		case isWordRune(r):
			i = scanWhile(text, i, isWordRune)
			word := text[start:i]
			tokens = append(tokens, Token{s.classify(word, text[i:]), word})

		case s.IsSpecial(string(r)):
			i += size
			tokens = append(tokens, Token{Special, text[start:i]})

		default:
			i += size
			tokens = append(tokens, Token{Punctuation, text[start:i]})
		}
	}
	return tokens
}

// Tokenize splits text using the default WAQL syntax
func Tokenize(text string) []Token {
	return DefaultSyntax().Tokenize(text)
}

func (s *Syntax) classify(word, rest string) TokenKind {
	switch {
	case s.IsKeyword(word):
		return Keyword
	case s.IsType(word):
		return Type
	case s.IsSpecial(word):
		return Special
	case strings.HasPrefix(strings.TrimLeft(rest, " \t"), "("):
		return Function
	default:
		return Unknown
	}
}

func scanWhile(text string, i int, pred func(rune) bool) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !pred(r) {
			break
		}
		i += size
	}
	return i
}

// scanString returns the offset just past the string starting at i. An
// unterminated string runs to the end of the line.
func scanString(text string, i int) int {
	i++
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return i + 1
		case '\n':
			return i
		}
		i++
	}
	return len(text)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ':' || r == '@'
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

// numberMayStart reports whether a '-' is a sign rather than an operator
func numberMayStart(tokens []Token) bool {
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i].Kind {
		case Whitespace, Comment:
			continue
		case Punctuation, Keyword:
			return true
		default:
			return false
		}
	}
	return true
}
