package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/api/router"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/appointments"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/clients"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/companies"
	appconfig "github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/config"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/conversation"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/http/handlers"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/inventory"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/invoices"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/messaging"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/observability/metrics"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/quotes"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/webchat"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lavamaster API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Repositories: Postgres when configured, in-memory otherwise.
	var (
		companyRepo companies.Repository
		clientRepo  clients.Repository
		apptRepo    appointments.Repository
		quoteRepo   quotes.Repository
		productRepo inventory.Repository
		invoiceRepo invoices.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		companyRepo = companies.NewPostgresRepository(pool)
		clientRepo = clients.NewPostgresRepository(pool)
		apptRepo = appointments.NewPostgresRepository(pool)
		quoteRepo = quotes.NewPostgresRepository(pool)
		productRepo = inventory.NewPostgresRepository(pool)
		invoiceRepo = invoices.NewPostgresRepository(pool)
		logger.Info("using postgres repositories")
	} else {
		companyRepo = companies.NewInMemoryRepository()
		clientRepo = clients.NewInMemoryRepository()
		apptRepo = appointments.NewInMemoryRepository()
		quoteRepo = quotes.NewInMemoryRepository()
		productRepo = inventory.NewInMemoryRepository()
		invoiceRepo = invoices.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
	}

	// Metrics registry.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	conversationMetrics := metrics.NewConversationMetrics(registry)

	// Transcript store is optional.
	var transcripts *conversation.TranscriptStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer func() { _ = redisClient.Close() }()
		transcripts = conversation.NewTranscriptStore(redisClient, cfg.TranscriptMaxMessages)
		logger.Info("transcript store enabled", "addr", cfg.RedisAddr)
	} else {
		logger.Warn("REDIS_ADDR not set, transcripts disabled")
	}

	// Outbound messenger.
	var messenger conversation.ReplyMessenger
	if cfg.WhatsAppAccessToken != "" && cfg.WhatsAppPhoneNumberID != "" {
		messenger = messaging.NewWhatsAppSender(messaging.WhatsAppConfig{
			AccessToken:   cfg.WhatsAppAccessToken,
			PhoneNumberID: cfg.WhatsAppPhoneNumberID,
			APIBaseURL:    cfg.WhatsAppAPIBaseURL,
			Timeout:       cfg.WhatsAppSendTimeout,
		}, logger)
	} else {
		messenger = messaging.NewNoopSender(logger)
		logger.Warn("whatsapp credentials not set, replies will be logged only")
	}

	// Conversation pipeline.
	executor := conversation.NewExecutor(companyRepo, clientRepo, apptRepo, conversation.ExecutorConfig{
		AutoCreateMissingClient: cfg.AutoCreateMissingClient,
		DefaultAppointmentHour:  cfg.DefaultAppointmentHour,
	}, logger)
	processor := conversation.NewProcessor(executor, messenger, transcripts, conversationMetrics, logger)

	// Services and handlers.
	apptService := appointments.NewService(apptRepo, logger)

	routerCfg := &router.Config{
		Logger:              logger,
		ChatHandler:         handlers.NewChatHandler(processor, cfg.BotSharedSecret, logger),
		WhatsAppWebhook:     handlers.NewWhatsAppWebhookHandler(processor, cfg.WhatsAppVerifyToken, logger),
		WebchatHandler:      webchat.NewHandler(processor, transcripts, logger),
		CompaniesHandler:    companies.NewHandler(companyRepo, logger),
		ClientsHandler:      clients.NewHandler(clientRepo, logger),
		AppointmentsHandler: appointments.NewHandler(apptRepo, apptService, logger),
		QuotesHandler:       quotes.NewHandler(quoteRepo, logger),
		InventoryHandler:    inventory.NewHandler(productRepo, logger),
		InvoicesHandler:     invoices.NewHandler(invoiceRepo, logger),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
