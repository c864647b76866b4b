// Command server exposes the outreach conversation over HTTP: session
// creation, per-turn messages, session close, health, and metrics.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pharmesol/outreach-ai/internal/api"
	"github.com/pharmesol/outreach-ai/internal/config"
	"github.com/pharmesol/outreach-ai/internal/conversation"
	"github.com/pharmesol/outreach-ai/internal/directory"
	"github.com/pharmesol/outreach-ai/internal/followup"
	"github.com/pharmesol/outreach-ai/internal/observability/metrics"
	"github.com/pharmesol/outreach-ai/internal/prompts"
	"github.com/pharmesol/outreach-ai/pkg/logging"
)

func main() {
	godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Error("OPENAI_API_KEY is required for the API server")
		os.Exit(1)
	}

	logger.Info("starting outreach-ai API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	store, err := prompts.NewStore(cfg.PromptsDir)
	if err != nil {
		logger.Error("failed to open template store", "error", err)
		os.Exit(1)
	}

	llm, err := conversation.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		logger.Error("failed to init OpenAI client", "error", err)
		os.Exit(1)
	}

	m := metrics.NewConversationMetrics(nil)
	composer := conversation.NewComposer(store, cfg.CompanyName)
	extractor := conversation.NewExtractor(llm, composer, logger)
	service := conversation.NewService(llm, composer, extractor, cfg.CompanyPhone, logger, m)

	var emailSender followup.EmailSender = followup.NewStubEmailSender(logger)
	if s := followup.NewSendGridSender(followup.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.FromEmail,
	}, logger); s != nil {
		emailSender = s
	}
	dispatcher := followup.NewDispatcher(emailSender, store, followup.CompanyIdentity{
		Name:  cfg.CompanyName,
		Email: cfg.CompanyEmail,
		Phone: cfg.CompanyPhone,
	}, logger, m)

	dirClient := directory.NewClient(cfg.DirectoryURL,
		directory.WithLogger(logger),
		directory.WithTimeout(cfg.DefaultTimeout),
	)

	handler := api.NewHandler(dirClient, api.NewSessionStore(), service, dispatcher, logger, m)
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Handler:        handler,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
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
