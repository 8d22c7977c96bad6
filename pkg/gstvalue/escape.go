package gstvalue

import (
	"errors"
	"strings"
)

// Escape escapes s for use inside a quoted structure string.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// Unescape reverses backslash escaping. Any escaped character stands for
// itself, so `\ ` and `\,` from hand-written structures are accepted too.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func needsQuoting(s string) bool {
	return s == "" || strings.ContainsAny(s, " ,;=\"\\()[]{}<>")
}

// Split splits s at sep. Separators inside double quotes, inside [ ], { }
// or < > groups, or escaped with a backslash do not count. An unterminated
// quote keeps the remainder in the last part.
func Split(s string, sep byte) []string {
	var parts []string
	start, depth := 0, 0
	quoted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[' || c == '{' || c == '<':
			depth++
		case c == ']' || c == '}' || c == '>':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

var errUnterminated = errors.New("unterminated quoted string")

func unquote(s string) (string, error) {
	if !strings.HasPrefix(s, `"`) {
		return Unescape(s), nil
	}
	if len(s) < 2 || s[len(s)-1] != '"' || trailingBackslashes(s[:len(s)-1])%2 == 1 {
		return "", errUnterminated
	}
	return Unescape(s[1 : len(s)-1]), nil
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}
