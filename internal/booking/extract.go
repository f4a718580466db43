package booking

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	dateRe     = regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`)
	timeRe     = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?`)
	durationRe = regexp.MustCompile(`\d+`)
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// Filler words around spoken times ("at 10", "um 10 Uhr", "gegen 14:30")
	// are stripped before date/time extraction.
	fillerRe = regexp.MustCompile(`(?i)\b(at|around|o'clock|oclock|um|uhr|gegen)\b`)
)

// stripFillers removes schedule filler words so the regexes see clean text.
func stripFillers(text string) string {
	cleaned := fillerRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// extractDate returns the first DD.MM.YYYY substring verbatim.
func extractDate(text string) (string, bool) {
	match := dateRe.FindString(stripFillers(text))
	return match, match != ""
}

// extractTime returns the first hour[:minute] substring normalized to HH:MM.
func extractTime(text string) (string, bool) {
	m := timeRe.FindStringSubmatch(stripFillers(text))
	if m == nil {
		return "", false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return "", false
	}
	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return "", false
		}
	}
	return two(hour) + ":" + two(minute), true
}

// extractDuration returns the first integer substring as minutes.
func extractDuration(text string) (int, bool) {
	match := durationRe.FindString(text)
	if match == "" {
		return 0, false
	}
	minutes, err := strconv.Atoi(match)
	if err != nil || minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

// extractEmail returns the first local@domain substring, lower-cased.
func extractEmail(text string) (string, bool) {
	match := emailRe.FindString(text)
	if match == "" {
		return "", false
	}
	return strings.ToLower(match), true
}

func two(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
