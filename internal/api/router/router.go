package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/termio-ai/termio/internal/calendar"
	httpmiddleware "github.com/termio-ai/termio/internal/http/middleware"
	"github.com/termio-ai/termio/internal/leads"
	"github.com/termio-ai/termio/internal/messaging"
	"github.com/termio-ai/termio/internal/webchat"
	"github.com/termio-ai/termio/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	ChatHandler      *webchat.Handler
	MessagingHandler *messaging.Handler
	LeadsHandler     *leads.Handler
	OAuthHandler     *calendar.OAuthHandler
	MetricsHandler   http.Handler
	StaticDir        string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.MessagingHandler.HealthCheck)

	r.Post("/chat", cfg.ChatHandler.HandleChat)
	r.Post("/twilio/incoming-sms", cfg.MessagingHandler.IncomingSMS)
	r.Post("/lead-webhook", cfg.LeadsHandler.HandleWebhook)
	r.Post("/lead", cfg.LeadsHandler.HandleWebhook)

	if cfg.OAuthHandler != nil {
		r.Get("/setup/google", cfg.OAuthHandler.Setup)
		r.Get("/auth/google/callback", cfg.OAuthHandler.Callback)
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
