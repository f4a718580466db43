package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain", "08.11.2025", "08.11.2025", true},
		{"embedded", "Termin am 08.11.2025 bitte", "08.11.2025", true},
		{"first match wins", "08.11.2025 oder 09.11.2025", "08.11.2025", true},
		{"single digit day", "1.2.2026", "1.2.2026", true},
		{"no date", "next friday maybe", "", false},
		{"two digit year", "08.11.25", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"hour and minute", "10:00", "10:00", true},
		{"hour only", "um 9 Uhr", "09:00", true},
		{"filler words", "around 14:30 o'clock", "14:30", true},
		{"afternoon", "16:45", "16:45", true},
		{"hour too large", "25:00", "", false},
		{"no time", "sometime soon", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDuration(t *testing.T) {
	minutes, ok := extractDuration("30 minutes please")
	assert.True(t, ok)
	assert.Equal(t, 30, minutes)

	_, ok = extractDuration("a little while")
	assert.False(t, ok)

	_, ok = extractDuration("0")
	assert.False(t, ok)
}

func TestExtractEmail(t *testing.T) {
	email, ok := extractEmail("you can reach me at A@B.com thanks")
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", email)

	_, ok = extractEmail("no address here")
	assert.False(t, ok)
}

func TestStripFillers(t *testing.T) {
	assert.Equal(t, "10:00", stripFillers("um 10:00 Uhr"))
	assert.Equal(t, "9", stripFillers("at around 9 o'clock"))
}
