package webchat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/termio-ai/termio/internal/observability/metrics"
	"github.com/termio-ai/termio/pkg/logging"
)

// Conversation advances a user's booking conversation by one turn.
type Conversation interface {
	Advance(ctx context.Context, userKey, text string) (string, error)
}

// ChatRequest is what the chat widget posts.
type ChatRequest struct {
	Message   string `json:"message"`
	UserLang  string `json:"userLang"`
	UserEmail string `json:"userEmail"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Handler serves the web chat endpoint.
type Handler struct {
	conversation Conversation
	metrics      *metrics.ConversationMetrics
	logger       *logging.Logger
}

// NewHandler creates a web chat handler.
func NewHandler(conversation Conversation, m *metrics.ConversationMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if conversation == nil {
		panic("webchat: conversation cannot be nil")
	}
	return &Handler{conversation: conversation, metrics: m, logger: logger}
}

// HandleChat handles POST /chat requests. The user key is the trimmed,
// lower-cased email when provided; anonymous visitors fall back to their IP
// (chi's RealIP middleware has already rewritten RemoteAddr).
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveInbound("chat", "bad_request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		h.metrics.ObserveInbound("chat", "bad_request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	key := userKey(req.UserEmail, r.RemoteAddr)
	start := time.Now()
	reply, err := h.conversation.Advance(r.Context(), key, req.Message)
	h.metrics.ObserveTurnLatency("chat", time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("chat turn failed", "error", err, "key", key)
		h.metrics.ObserveInbound("chat", "error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong"})
		return
	}

	h.metrics.ObserveInbound("chat", "ok")
	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

func userKey(email, remoteAddr string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		return email
	}
	// RemoteAddr may still carry a port when RealIP had nothing to work with.
	if host, _, ok := strings.Cut(remoteAddr, ":"); ok && host != "" {
		return host
	}
	return remoteAddr
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
