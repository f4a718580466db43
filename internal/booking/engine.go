package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/termio-ai/termio/internal/ai"
	"github.com/termio-ai/termio/internal/calendar"
	"github.com/termio-ai/termio/internal/notify"
	"github.com/termio-ai/termio/internal/observability/metrics"
	"github.com/termio-ai/termio/internal/session"
	"github.com/termio-ai/termio/pkg/logging"
)

// triggerWords start the booking flow from the start stage.
var triggerWords = []string{"termin", "appointment", "meeting", "book", "schedule"}

// fieldSpec describes one step of the linear form-filling flow: which stage
// collects it, how to pull it out of the text, and where to go next.
type fieldSpec struct {
	stage    session.Stage
	next     session.Stage
	prompt   string
	reprompt string
	extract  func(sess *session.Session, text string) bool
	missing  func(data session.Data) bool
}

var fields = []fieldSpec{
	{
		stage:    session.StageAwaitingDate,
		next:     session.StageAwaitingTime,
		prompt:   promptDate,
		reprompt: repromptDate,
		extract: func(sess *session.Session, text string) bool {
			date, ok := extractDate(text)
			if ok {
				sess.Data.Date = date
			}
			return ok
		},
		missing: func(data session.Data) bool { return data.Date == "" },
	},
	{
		stage:    session.StageAwaitingTime,
		next:     session.StageAwaitingDuration,
		prompt:   promptTime,
		reprompt: repromptTime,
		extract: func(sess *session.Session, text string) bool {
			t, ok := extractTime(text)
			if ok {
				sess.Data.Time = t
			}
			return ok
		},
		missing: func(data session.Data) bool { return data.Time == "" },
	},
	{
		stage:    session.StageAwaitingDuration,
		next:     session.StageAwaitingEmail,
		prompt:   promptDuration,
		reprompt: repromptDur,
		extract: func(sess *session.Session, text string) bool {
			minutes, ok := extractDuration(text)
			if ok {
				sess.Data.DurationMinutes = minutes
			}
			return ok
		},
		missing: func(data session.Data) bool { return data.DurationMinutes == 0 },
	},
	{
		stage:    session.StageAwaitingEmail,
		next:     session.StageCreating,
		prompt:   promptEmail,
		reprompt: repromptEmail,
		extract: func(sess *session.Session, text string) bool {
			email, ok := extractEmail(text)
			if ok {
				sess.Data.Email = email
			}
			return ok
		},
		missing: func(data session.Data) bool { return data.Email == "" },
	},
}

// Engine drives the booking conversation. Turns for the same user key are
// serialized so concurrent webhook deliveries cannot interleave a session's
// read-modify-write.
type Engine struct {
	store     session.Store
	calendar  calendar.Gateway
	completer ai.Completer
	email     notify.EmailSender
	metrics   *metrics.ConversationMetrics
	logger    *logging.Logger
	botName   string
	loc       *time.Location

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine creates a conversation engine. completer and email may be nil.
func NewEngine(store session.Store, cal calendar.Gateway, completer ai.Completer, email notify.EmailSender, m *metrics.ConversationMetrics, botName string, loc *time.Location, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		store:     store,
		calendar:  cal,
		completer: completer,
		email:     email,
		metrics:   m,
		logger:    logger,
		botName:   botName,
		loc:       loc,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Advance processes one inbound message for the given user key and returns
// the reply text. Only session-store failures surface as errors; provider
// failures become user-facing replies per the recovery rules.
func (e *Engine) Advance(ctx context.Context, userKey, text string) (string, error) {
	unlock := e.lockKey(userKey)
	defer unlock()

	sess, err := e.store.Get(ctx, userKey)
	if errors.Is(err, session.ErrNotFound) {
		sess = session.New(userKey)
	} else if err != nil {
		return "", fmt.Errorf("booking: load session: %w", err)
	}

	reply := e.advance(ctx, sess, text)

	if err := e.store.Put(ctx, sess); err != nil {
		return "", fmt.Errorf("booking: store session: %w", err)
	}
	return reply, nil
}

// StartSession creates a fresh session for a new lead, overwriting any prior
// conversation for the same key.
func (e *Engine) StartSession(ctx context.Context, userKey, firstName, lastName string) error {
	unlock := e.lockKey(userKey)
	defer unlock()

	sess := session.New(userKey)
	sess.Data.FirstName = firstName
	sess.Data.LastName = lastName
	if err := e.store.Put(ctx, sess); err != nil {
		return fmt.Errorf("booking: store session: %w", err)
	}
	return nil
}

func (e *Engine) advance(ctx context.Context, sess *session.Session, text string) string {
	switch sess.Stage {
	case session.StageStart:
		if containsTrigger(text) {
			sess.Stage = session.StageAwaitingDate
			return promptDate
		}
		return e.smallTalk(ctx, text)

	case session.StageCreating:
		return e.create(ctx, sess)

	case session.StageCompleted:
		return replyAlreadyBooked

	default:
		for _, field := range fields {
			if field.stage != sess.Stage {
				continue
			}
			if !field.extract(sess, text) {
				return field.reprompt
			}
			sess.Stage = nextMissingStage(sess.Data, field.next)
			if sess.Stage == session.StageCreating {
				return e.create(ctx, sess)
			}
			return nextPrompt(sess.Stage)
		}
		// Unknown stage tag (e.g. from an older stored session): restart.
		e.logger.Warn("unknown session stage, resetting", "key", sess.Key, "stage", sess.Stage)
		sess.Stage = session.StageStart
		return e.smallTalk(ctx, text)
	}
}

// create runs the booking step: verify fields, check the calendar, insert
// the event and compose the confirmation.
func (e *Engine) create(ctx context.Context, sess *session.Session) string {
	for _, field := range fields {
		if field.missing(sess.Data) {
			sess.Stage = field.stage
			return "It looks like I'm missing something. " + field.prompt
		}
	}

	start, err := e.parseStart(sess.Data.Date, sess.Data.Time)
	if err != nil {
		e.logger.Warn("stored date/time failed to parse", "key", sess.Key, "date", sess.Data.Date, "time", sess.Data.Time)
		sess.Stage = session.StageAwaitingDate
		return repromptDate
	}
	end := start.Add(time.Duration(sess.Data.DurationMinutes) * time.Minute)

	free, err := e.calendar.IsFree(ctx, start, end)
	if err != nil {
		return e.calendarFailure(sess, err, "conflict check")
	}
	if !free {
		e.metrics.ObserveBooking("conflict")
		sess.Stage = session.StageAwaitingTime
		return replyConflict(sess.Data.Date)
	}

	invite, err := e.calendar.CreateEvent(ctx, e.eventSummary(sess), start, end, sess.Data.Email)
	if err != nil {
		return e.calendarFailure(sess, err, "create event")
	}

	sess.Stage = session.StageCompleted
	e.metrics.ObserveBooking("created")
	e.logger.Info("meeting booked", "key", sess.Key, "event_id", invite.EventID, "start", start)
	e.sendConfirmationEmail(ctx, sess, invite)

	return replyConfirmation(sess.Data.Date, sess.Data.Time, sess.Data.DurationMinutes, sess.Data.Email, invite.MeetLink)
}

// calendarFailure maps a calendar error to the reply and stage the recovery
// rules demand: missing credential leaves the stage alone, anything else
// falls back to the last collected field.
func (e *Engine) calendarFailure(sess *session.Session, err error, op string) string {
	if errors.Is(err, calendar.ErrNotConnected) {
		e.logger.Warn("calendar not connected", "key", sess.Key, "op", op)
		return replyNotConnected
	}
	e.logger.Error("calendar call failed", "error", err, "key", sess.Key, "op", op)
	e.metrics.ObserveBooking("error")
	sess.Stage = session.StageAwaitingEmail
	return replyCreateFailed
}

func (e *Engine) smallTalk(ctx context.Context, text string) string {
	if e.completer == nil {
		return ai.FallbackReply
	}
	reply, err := e.completer.Complete(ctx, text)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			e.logger.Error("completion failed", "error", err)
		}
		return ai.FallbackReply
	}
	return reply
}

func (e *Engine) sendConfirmationEmail(ctx context.Context, sess *session.Session, invite calendar.Invite) {
	if e.email == nil {
		return
	}
	msg := notify.EmailMessage{
		To:      sess.Data.Email,
		ToName:  strings.TrimSpace(sess.Data.FirstName + " " + sess.Data.LastName),
		Subject: fmt.Sprintf("Your meeting on %s at %s", sess.Data.Date, sess.Data.Time),
		Body: fmt.Sprintf("Your %d-minute meeting on %s at %s is confirmed.\nJoin link: %s\n",
			sess.Data.DurationMinutes, sess.Data.Date, sess.Data.Time, invite.MeetLink),
	}
	// Fire and forget: a lost email never fails the booking.
	if err := e.email.Send(ctx, msg); err != nil {
		e.logger.Error("confirmation email failed", "error", err, "to", msg.To)
	}
}

func (e *Engine) eventSummary(sess *session.Session) string {
	name := strings.TrimSpace(sess.Data.FirstName + " " + sess.Data.LastName)
	if name == "" {
		name = sess.Data.Email
	}
	return fmt.Sprintf("Meeting with %s (%s)", name, e.botName)
}

// parseStart combines the stored DD.MM.YYYY and HH:MM fields into a start
// instant in the configured timezone.
func (e *Engine) parseStart(date, timeOfDay string) (time.Time, error) {
	return time.ParseInLocation("2.1.2006 15:04", strings.TrimSpace(date)+" "+timeOfDay, e.loc)
}

func (e *Engine) lockKey(key string) func() {
	e.mu.Lock()
	lock, ok := e.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[key] = lock
	}
	e.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}

func containsTrigger(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range triggerWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

// nextMissingStage returns the first stage at or after from whose field is
// still empty. When everything is already collected the flow goes straight
// to creating, so a retry after a conflict only re-collects the time.
func nextMissingStage(data session.Data, from session.Stage) session.Stage {
	reached := false
	for _, field := range fields {
		if field.stage == from {
			reached = true
		}
		if reached && field.missing(data) {
			return field.stage
		}
	}
	return session.StageCreating
}

func nextPrompt(stage session.Stage) string {
	switch stage {
	case session.StageAwaitingDate:
		return promptDate
	case session.StageAwaitingTime:
		return promptTime
	case session.StageAwaitingDuration:
		return promptDuration
	case session.StageAwaitingEmail:
		return promptEmail
	default:
		return ""
	}
}
