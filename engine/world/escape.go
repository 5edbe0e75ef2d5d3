package world

import "strings"

// EscapeExportString escapes backslash, equals sign and semicolon for item
// data in the text export. Backslash is replaced first so the escape
// character itself never gets escaped twice.
func EscapeExportString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `=`, `\=`)
	s = strings.ReplaceAll(s, `;`, `\;`)
	return s
}

// UnescapeExportString is the exact inverse of EscapeExportString
func UnescapeExportString(s string) string {
	if !strings.ContainsRune(s, '\\') {
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

// SplitUnescaped splits s on sep, honouring backslash escapes. The returned
// parts are still escaped.
func SplitUnescaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
