package volley

import (
	"strings"
	"unicode"
)

// GroupNumber returns the first run of digits in a group name ("7. GR" -> 7),
// or 0 when there is none.
func GroupNumber(name string) int {
	n, found := 0, false
	for _, r := range name {
		if unicode.IsDigit(r) && r < 128 {
			n = n*10 + int(r-'0')
			found = true
		} else if found {
			break
		}
	}
	return n
}

// GroupLetter returns the part of a group name before the first '.',
// upper-cased and trimmed ("A. Grup" -> "A").
func GroupLetter(name string) string {
	if before, _, ok := strings.Cut(name, "."); ok {
		name = before
	}
	return strings.ToUpper(strings.TrimSpace(name))
}
