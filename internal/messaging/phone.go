package messaging

import "strings"

// NormalizePhone maps a free-form phone string to E.164-ish form. Values that
// already carry a + prefix are returned unchanged; everything else is reduced
// to digits, stripped of one leading trunk zero, and given the default
// country prefix. No further validation happens here; the carrier rejects
// numbers it cannot route.
func NormalizePhone(value, defaultPrefix string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "+") {
		return value
	}
	digits := sanitizePhone(value)
	if digits == "" {
		return ""
	}
	digits = strings.TrimPrefix(digits, "0")
	return defaultPrefix + digits
}

// sanitizePhone strips every non-digit character.
func sanitizePhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
