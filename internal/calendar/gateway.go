package calendar

import (
	"context"
	"errors"
	"time"
)

// ErrNotConnected is returned when no stored credential exists for the
// calendar account.
var ErrNotConnected = errors.New("calendar: no credential stored")

// Invite is the result of creating a calendar event.
type Invite struct {
	EventID  string
	MeetLink string
}

// NoLinkAvailable is the sentinel used when the provider returns an event
// without any conferencing link.
const NoLinkAvailable = "(no link available)"

// Gateway is the narrow calendar surface the conversation engine consumes.
type Gateway interface {
	// IsFree reports whether no events overlap the half-open interval
	// [start, end) on the configured calendar.
	IsFree(ctx context.Context, start, end time.Time) (bool, error)
	// CreateEvent inserts an event with a generated conferencing link and
	// invites the attendee.
	CreateEvent(ctx context.Context, summary string, start, end time.Time, attendeeEmail string) (Invite, error)
}
