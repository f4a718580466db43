package leads

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/termio-ai/termio/internal/booking"
	"github.com/termio-ai/termio/internal/messaging"
	"github.com/termio-ai/termio/pkg/logging"
)

// SessionStarter opens a fresh conversation session for a lead.
type SessionStarter interface {
	StartSession(ctx context.Context, userKey, firstName, lastName string) error
}

// Handler handles HTTP requests for leads
type Handler struct {
	repo        Repository
	sms         messaging.SMSSender
	sessions    SessionStarter
	countryCode string
	botName     string
	logger      *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(repo Repository, sms messaging.SMSSender, sessions SessionStarter, countryCode, botName string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:        repo,
		sms:         sms,
		sessions:    sessions,
		countryCode: countryCode,
		botName:     botName,
		logger:      logger,
	}
}

// HandleWebhook handles POST /lead-webhook (and its /lead alias): it stores
// the lead, opens a session keyed by the normalized phone number and fires
// the greeting SMS.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode lead webhook", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	req.Phone = messaging.NormalizePhone(req.Phone, h.countryCode)
	lead, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create lead", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	if err := h.sessions.StartSession(r.Context(), lead.Phone, lead.FirstName, lead.LastName); err != nil {
		h.logger.Error("failed to start session for lead", "error", err, "lead_id", lead.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to start conversation"})
		return
	}

	if err := h.sms.Send(r.Context(), lead.Phone, booking.Greeting(h.botName, lead.FirstName)); err != nil {
		h.logger.Error("failed to send greeting sms", "error", err, "lead_id", lead.ID, "to", lead.Phone)
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "failed to send greeting"})
		return
	}

	h.logger.Info("lead created", "id", lead.ID, "phone", lead.Phone, "source", lead.Source)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "leadId": lead.ID})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
