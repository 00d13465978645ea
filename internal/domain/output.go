package domain

import (
	"regexp"
	"unicode/utf8"
)

// csiPattern matches ANSI CSI escape sequences: ESC '[' parameter bytes,
// intermediate bytes and one final byte.
var csiPattern = regexp.MustCompile("\x1b\\[[0-?]*[ -/]*[@-~]")

// StripANSI removes CSI escape sequences from s.
func StripANSI(s string) string {
	return csiPattern.ReplaceAllString(s, "")
}

// isLineBreak reports whether r ends a line. The set matches the universal
// newline characters: \n, \r, \v, \f, the file, group and record separators,
// NEL and the Unicode line and paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// SplitLines splits s into lines. \r\n counts as one break. A trailing line
// break does not produce an empty final line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i, r := range s {
		if i < start || !isLineBreak(r) {
			continue
		}
		lines = append(lines, s[start:i])
		start = i + utf8.RuneLen(r)
		if r == '\r' && start < len(s) && s[start] == '\n' {
			start++
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// TruncateLines keeps at most max lines. When lines exceeds max, the first
// max/2 and the last max/2 lines are kept.
func TruncateLines(lines []string, max int) []string {
	if max <= 0 {
		return nil
	}
	if len(lines) <= max {
		return lines
	}
	half := max / 2
	out := make([]string, 0, 2*half)
	out = append(out, lines[:half]...)
	out = append(out, lines[len(lines)-half:]...)
	return out
}
