package session

import "time"

// Stage names the point in the booking conversation a user has reached.
type Stage string

const (
	StageStart            Stage = "start"
	StageAwaitingDate     Stage = "awaiting_date"
	StageAwaitingTime     Stage = "awaiting_time"
	StageAwaitingDuration Stage = "awaiting_duration"
	StageAwaitingEmail    Stage = "awaiting_email"
	StageCreating         Stage = "creating"
	StageCompleted        Stage = "completed"
)

// Data is the partially filled booking record. Fields only ever gain values
// over a session's lifetime; nothing clears them.
type Data struct {
	Date            string `json:"date,omitempty"`     // DD.MM.YYYY as extracted
	Time            string `json:"time,omitempty"`     // HH:MM
	DurationMinutes int    `json:"duration,omitempty"` // minutes
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
}

// Session is the per-user conversation state, keyed by phone number or
// email/IP depending on the inbound channel.
type Session struct {
	Key       string    `json:"key"`
	Stage     Stage     `json:"stage"`
	Data      Data      `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a fresh session at the start stage.
func New(key string) *Session {
	now := time.Now().UTC()
	return &Session{
		Key:       key,
		Stage:     StageStart,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
