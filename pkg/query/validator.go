package query

import (
	"errors"
	"strings"
)

// Validator checks WAQL text before it is sent to WAAPI
type Validator struct{}

// NewValidator creates a query validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuery checks if a query string can be sent
func (v *Validator) ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}

	depth := 0
	inString := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		if inString {
			if ch == '\\' {
				i++
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return ErrUnbalancedParens
			}
		}
	}

	if inString {
		return ErrUnterminatedString
	}
	if depth != 0 {
		return ErrUnbalancedParens
	}
	return nil
}

// SanitizeQuery drops blank and // comment lines and joins the rest into
// the single-line form WAAPI expects.
func (v *Validator) SanitizeQuery(query string) string {
	query = strings.ReplaceAll(query, "\r\n", "\n")
	query = strings.ReplaceAll(query, "\r", "\n")
	lines := strings.Split(query, "\n")
	clean := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		clean = append(clean, trimmed)
	}
	return strings.Join(clean, " ")
}

// Error types
var (
	ErrEmptyQuery         = errors.New("please enter a WAQL statement")
	ErrUnbalancedParens   = errors.New("unbalanced parentheses in query")
	ErrUnterminatedString = errors.New("unterminated string literal in query")
)
