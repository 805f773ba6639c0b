// Package kv is for working with the KEY=VALUE lines found in release description files.
package kv

import (
	"strings"
)

// Split splits a line into a key and a value on the first '='. The value is
// kept as is, it may contain more '=' characters. The returned ok is false when
// the line has no separator or the key is empty.
func Split(line string) (key string, value string, ok bool) {
	return SplitRune(line, '=')
}

// SplitRune is like Split but uses the given separator.
func SplitRune(line string, separator rune) (key string, value string, ok bool) {
	key, value, found := strings.Cut(line, string(separator))
	if !found || key == "" {
		return "", "", false
	}
	return key, value, true
}

// Unquote removes one pair of double quotes wrapping s. Values that are not
// quoted on both ends are returned unchanged.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
