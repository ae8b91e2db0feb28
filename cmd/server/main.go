// @title VolunteerHub API
// @version 1.0
// @description Turns free-form event notes into structured volunteer records and relays roster rows to an allow-listed webhook.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"volunteerhub/internal/config"
	"volunteerhub/internal/extraction"
	"volunteerhub/internal/extraction/claude"
	"volunteerhub/internal/extraction/gateway"
	"volunteerhub/internal/extraction/gemini"
	"volunteerhub/internal/handler"
	"volunteerhub/internal/ingest"
	"volunteerhub/internal/logging"
	"volunteerhub/internal/metrics"
	"volunteerhub/internal/port"
	"volunteerhub/internal/router"
	"volunteerhub/internal/service"
	s3storage "volunteerhub/internal/storage/s3"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer cleanup()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registerProviders(ctx)

	// Initialize the model chain. A missing provider is not fatal: the server
	// still relays webhooks and reports not-ready on /readyz.
	model, err := extraction.NewChain(&cfg.Extraction)
	if err != nil {
		logger.Warn("main.run: extraction disabled", zap.Error(err))
	} else {
		logger.Info("main.run: extraction enabled",
			zap.String("primary", cfg.Extraction.PrimaryConfig().Provider),
			zap.Strings("registered", extraction.Providers()))
	}

	// Initialize storage
	var objects port.ObjectSource
	if cfg.S3.AccessKey != "" || cfg.S3.Endpoint != "" {
		objects, err = s3storage.NewObjectSource(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	m := metrics.New()

	// Initialize services
	extractionSvc := service.NewExtractionService(model, m)
	webhookSvc := service.NewWebhookService(&cfg.Relay, m)
	ingestor := ingest.New(ingest.OptionsFromConfig(&cfg.Intake), objects)

	// Initialize handlers
	extractionH := handler.NewExtractionHandler(extractionSvc, ingestor)
	webhookH := handler.NewWebhookHandler(webhookSvc)
	healthH := handler.NewHealthHandler(extractionSvc)

	// Setup router
	r := router.Setup(cfg, m, extractionH, webhookH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("main.run: server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("main.run: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// registerProviders makes every model backend selectable by name in config.
func registerProviders(ctx context.Context) {
	extraction.RegisterProvider("gateway", func(cfg *config.ProviderConfig) (port.LanguageModel, error) {
		return gateway.NewModel(cfg), nil
	})
	extraction.RegisterProvider("claude", func(cfg *config.ProviderConfig) (port.LanguageModel, error) {
		return claude.NewModel(cfg), nil
	})
	extraction.RegisterProvider("gemini", func(cfg *config.ProviderConfig) (port.LanguageModel, error) {
		m, err := gemini.NewModel(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}
