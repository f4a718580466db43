package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already e164", "+491701234567", "+491701234567"},
		{"national with space", "0170 1234567", "+491701234567"},
		{"national with separators", "0170-123.4567", "+491701234567"},
		{"no trunk zero", "170 1234567", "+491701234567"},
		{"whitespace padding", "  +1 555 0100  ", "+1 555 0100"},
		{"empty", "", ""},
		{"no digits", "call me", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in, "+49"))
		})
	}
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "15551234567", sanitizePhone(" +1 (555) 123-4567 "))
	assert.Equal(t, "", sanitizePhone(""))
}
