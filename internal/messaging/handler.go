package messaging

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/termio-ai/termio/internal/observability/metrics"
	"github.com/termio-ai/termio/pkg/logging"
)

var twilioTracer = otel.Tracer("termio.internal.messaging.twilio")

// Conversation advances a user's booking conversation by one turn.
type Conversation interface {
	Advance(ctx context.Context, userKey, text string) (string, error)
}

// Handler handles inbound SMS webhook requests.
type Handler struct {
	webhookSecret string
	countryCode   string
	conversation  Conversation
	metrics       *metrics.ConversationMetrics
	logger        *logging.Logger
}

// NewHandler creates a new messaging handler.
func NewHandler(webhookSecret, countryCode string, conversation Conversation, m *metrics.ConversationMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if conversation == nil {
		panic("messaging: conversation cannot be nil")
	}
	return &Handler{
		webhookSecret: webhookSecret,
		countryCode:   countryCode,
		conversation:  conversation,
		metrics:       m,
		logger:        logger,
	}
}

// IncomingSMS handles POST /twilio/incoming-sms requests. The reply rides
// back inline as TwiML.
func (h *Handler) IncomingSMS(w http.ResponseWriter, r *http.Request) {
	ctx, span := twilioTracer.Start(r.Context(), "messaging.twilio.webhook")
	defer span.End()

	if h.webhookSecret != "" {
		if !ValidateTwilioSignature(r, h.webhookSecret, buildAbsoluteURL(r)) {
			h.logger.Warn("invalid twilio signature")
			h.metrics.ObserveInbound("sms", "unauthorized")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			span.RecordError(errors.New("invalid twilio signature"))
			return
		}
	}

	sms, err := ParseInboundSMS(r)
	if err != nil {
		h.logger.Error("failed to parse twilio webhook", "error", err)
		h.metrics.ObserveInbound("sms", "bad_request")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		span.RecordError(err)
		return
	}

	from := NormalizePhone(sms.From, h.countryCode)
	if from == "" || sms.Body == "" {
		err := errors.New("missing required twilio fields")
		h.logger.Error("invalid twilio payload", "error", err)
		h.metrics.ObserveInbound("sms", "bad_request")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		span.RecordError(err)
		return
	}
	span.SetAttributes(
		attribute.String("termio.twilio.message_sid", sms.MessageSid),
		attribute.String("termio.twilio.from", from),
	)

	start := time.Now()
	reply, err := h.conversation.Advance(ctx, from, sms.Body)
	h.metrics.ObserveTurnLatency("sms", time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("conversation turn failed", "error", err, "from", from)
		h.metrics.ObserveInbound("sms", "error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		span.RecordError(err)
		return
	}

	h.logger.Info("twilio webhook handled", "from", from, "message_sid", sms.MessageSid)
	h.metrics.ObserveInbound("sms", "ok")
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(TwiMLReply(reply)))
}

// HealthCheck handles GET /health requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
