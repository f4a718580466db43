package calendar

import (
	"encoding/json"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/termio-ai/termio/pkg/logging"
)

// NewOAuthConfig builds the oauth2 config for the calendar scope.
func NewOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{gcal.CalendarScope},
		Endpoint:     google.Endpoint,
	}
}

// OAuthHandler serves the one-time Google authorization flow that connects
// the shared calendar account.
type OAuthHandler struct {
	oauth  *oauth2.Config
	tokens *TokenStore
	logger *logging.Logger
}

// NewOAuthHandler creates the setup/callback handler pair.
func NewOAuthHandler(oauthCfg *oauth2.Config, tokens *TokenStore, logger *logging.Logger) *OAuthHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &OAuthHandler{oauth: oauthCfg, tokens: tokens, logger: logger}
}

// Setup handles GET /setup/google by redirecting to the consent screen.
func (h *OAuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	url := h.oauth.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	http.Redirect(w, r, url, http.StatusFound)
}

// Callback handles GET /auth/google/callback: it exchanges the authorization
// code, persists the token and confirms with a small HTML page.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSONError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	token, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("google code exchange failed", "error", err)
		writeJSONError(w, http.StatusBadGateway, "authorization exchange failed")
		return
	}

	if err := h.tokens.Save(token); err != nil {
		h.logger.Error("failed to persist google token", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to store credential")
		return
	}

	h.logger.Info("google calendar connected")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<!DOCTYPE html><html><body><h1>Calendar connected</h1><p>You can close this window.</p></body></html>`))
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
