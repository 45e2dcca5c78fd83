package miotspec

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatID renders an instance identifier (siid/piid/aiid/eiid) for use in
// mapping keys. Numeric identifiers are zero-padded to three digits; other
// strings are trimmed and passed through; a missing identifier becomes "000".
func FormatID(v any) string {
	if v == nil {
		return "000"
	}

	s := strings.TrimSpace(fmt.Sprint(v))
	if isDigits(s) {
		n, err := strconv.Atoi(s)
		if err == nil {
			return fmt.Sprintf("%03d", n)
		}
	}
	return s
}

// isDigits reports whether s is non-empty and consists only of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
