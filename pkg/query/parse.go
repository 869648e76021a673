package query

import (
	"strings"
)

// ParseQuery splits editor text of the form "query | field field" into the
// WAQL part and the WAAPI options. The split is at the first pipe outside a
// string literal. Fields after it become the "return" option, ignoring stray
// "|" separators; without a pipe or fields the options are nil.
func ParseQuery(code string) (string, map[string]interface{}) {
	code = strings.TrimSpace(code)

	idx := pipeIndex(code)
	if idx < 0 {
		return code, nil
	}

	waql := strings.TrimSpace(code[:idx])
	var returns []interface{}
	for _, f := range strings.Fields(code[idx+1:]) {
		if f != "|" {
			returns = append(returns, f)
		}
	}
	if len(returns) == 0 {
		return waql, nil
	}
	return waql, map[string]interface{}{
		"return": returns,
	}
}

// pipeIndex returns the byte offset of the first '|' outside a "..."
// literal, or -1
func pipeIndex(text string) int {
	in := false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			if in {
				i++
			}
		case '"':
			in = !in
		case '|':
			if !in {
				return i
			}
		}
	}
	return -1
}
