package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Canonical puts a name into display form: the first letter upper-cased and
// the rest lower-cased. With a non-empty sep, every sep-delimited segment is
// cased independently ("solar-power" -> "Solar-Power").
func Canonical(s, sep string) string {
	if sep == "" {
		return capitalize(s)
	}
	parts := strings.Split(s, sep)
	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, sep)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
