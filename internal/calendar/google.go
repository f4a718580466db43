package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/termio-ai/termio/pkg/logging"
)

// GoogleGateway implements Gateway against the Google Calendar API. The
// OAuth token comes from the shared TokenStore; refreshed tokens are written
// back so the file always holds the latest credential.
type GoogleGateway struct {
	oauth      *oauth2.Config
	tokens     *TokenStore
	calendarID string
	timezone   string
	logger     *logging.Logger
}

// NewGoogleGateway creates a calendar gateway for the configured calendar.
func NewGoogleGateway(oauthCfg *oauth2.Config, tokens *TokenStore, calendarID, timezone string, logger *logging.Logger) *GoogleGateway {
	if logger == nil {
		logger = logging.Default()
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleGateway{
		oauth:      oauthCfg,
		tokens:     tokens,
		calendarID: calendarID,
		timezone:   timezone,
		logger:     logger,
	}
}

var _ Gateway = (*GoogleGateway)(nil)

// IsFree reports whether the interval has no overlapping events.
func (g *GoogleGateway) IsFree(ctx context.Context, start, end time.Time) (bool, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return false, err
	}

	resp, err := svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("calendar: freebusy query: %w", err)
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return false, fmt.Errorf("calendar: freebusy response missing calendar %q", g.calendarID)
	}
	return len(cal.Busy) == 0, nil
}

// CreateEvent inserts an event and requests a Meet link for it.
func (g *GoogleGateway) CreateEvent(ctx context.Context, summary string, start, end time.Time, attendeeEmail string) (Invite, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return Invite{}, err
	}

	event := &gcal.Event{
		Summary: summary,
		Start:   &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: g.timezone},
		End:     &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: g.timezone},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}
	if attendeeEmail != "" {
		event.Attendees = []*gcal.EventAttendee{{Email: attendeeEmail}}
	}

	created, err := svc.Events.Insert(g.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return Invite{}, fmt.Errorf("calendar: insert event: %w", err)
	}

	g.logger.Info("calendar event created", "event_id", created.Id, "start", start)
	return Invite{EventID: created.Id, MeetLink: meetLink(created)}, nil
}

// service builds a Calendar API client from the stored token.
func (g *GoogleGateway) service(ctx context.Context) (*gcal.Service, error) {
	token, err := g.tokens.Load()
	if err != nil {
		if errors.Is(err, ErrNotConnected) {
			return nil, ErrNotConnected
		}
		return nil, err
	}

	source := &persistingTokenSource{
		base:   g.oauth.TokenSource(ctx, token),
		tokens: g.tokens,
		last:   token,
		logger: g.logger,
	}
	svc, err := gcal.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("calendar: build service: %w", err)
	}
	return svc, nil
}

func meetLink(event *gcal.Event) string {
	if event.HangoutLink != "" {
		return event.HangoutLink
	}
	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" && ep.Uri != "" {
				return ep.Uri
			}
		}
	}
	if event.HtmlLink != "" {
		return event.HtmlLink
	}
	return NoLinkAvailable
}

// persistingTokenSource writes refreshed tokens back to the store so the
// single token file always holds a usable credential.
type persistingTokenSource struct {
	base   oauth2.TokenSource
	tokens *TokenStore
	last   *oauth2.Token
	logger *logging.Logger
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if s.last == nil || token.AccessToken != s.last.AccessToken {
		if err := s.tokens.Save(token); err != nil {
			s.logger.Error("failed to persist refreshed token", "error", err)
		}
		s.last = token
	}
	return token, nil
}
