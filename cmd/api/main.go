package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/termio-ai/termio/internal/ai"
	"github.com/termio-ai/termio/internal/api/router"
	"github.com/termio-ai/termio/internal/booking"
	"github.com/termio-ai/termio/internal/calendar"
	appconfig "github.com/termio-ai/termio/internal/config"
	"github.com/termio-ai/termio/internal/leads"
	"github.com/termio-ai/termio/internal/messaging"
	"github.com/termio-ai/termio/internal/notify"
	"github.com/termio-ai/termio/internal/observability/metrics"
	"github.com/termio-ai/termio/internal/session"
	"github.com/termio-ai/termio/internal/webchat"
	"github.com/termio-ai/termio/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting termio API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"bot", cfg.BotName,
	)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, falling back to UTC", "timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}

	// Session store
	var store session.Store
	switch cfg.SessionBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		store = session.NewRedisStore(client, cfg.SessionTTL)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	default:
		memStore := session.NewMemoryStore(cfg.SessionTTL)
		defer memStore.Close()
		store = memStore
	}

	// Calendar gateway + OAuth flow
	tokens := calendar.NewTokenStore(cfg.GoogleTokenFile)
	oauthCfg := calendar.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	gateway := calendar.NewGoogleGateway(oauthCfg, tokens, cfg.CalendarID, cfg.Timezone, logger)
	oauthHandler := calendar.NewOAuthHandler(oauthCfg, tokens, logger)

	// AI completion (optional)
	var completer ai.Completer
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiCompleter(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.BotName)
		if err != nil {
			logger.Error("failed to init gemini, small talk disabled", "error", err)
		} else {
			defer gemini.Close()
			completer = gemini
		}
	}

	// Email: SendGrid when configured, otherwise a log-only stub.
	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		emailSender = sg
	} else {
		logger.Warn("SENDGRID_API_KEY not set, confirmation emails are logged only")
		emailSender = notify.NewStubEmailSender(logger)
	}

	registry := prometheus.NewRegistry()
	convMetrics := metrics.NewConversationMetrics(registry)

	engine := booking.NewEngine(store, gateway, completer, emailSender, convMetrics, cfg.BotName, loc, logger)
	smsSender := messaging.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)

	routerCfg := &router.Config{
		Logger:           logger,
		ChatHandler:      webchat.NewHandler(engine, convMetrics, logger),
		MessagingHandler: messaging.NewHandler(cfg.TwilioWebhookSecret, cfg.DefaultCountryCode, engine, convMetrics, logger),
		LeadsHandler:     leads.NewHandler(leads.NewInMemoryRepository(), smsSender, engine, cfg.DefaultCountryCode, cfg.BotName, logger),
		OAuthHandler:     oauthHandler,
		MetricsHandler:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		StaticDir:        "web",
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
