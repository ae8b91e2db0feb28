package main

import (
	"fmt"

	"go.uber.org/zap"

	"volunteerhub/internal/config"
	"volunteerhub/internal/email/noop"
	"volunteerhub/internal/email/ses"
	"volunteerhub/internal/ingest"
	"volunteerhub/internal/logging"
	"volunteerhub/internal/port"
	s3storage "volunteerhub/internal/storage/s3"
)

var (
	appConfig  *config.Config
	appCleanup = func() {}
)

func setupApp() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	_, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	appConfig = cfg
	appCleanup = cleanup
	return nil
}

func teardownApp() {
	appCleanup()
}

func newIngestor(cfg *config.Config) (*ingest.Ingestor, error) {
	var objects port.ObjectSource
	if cfg.S3.AccessKey != "" || cfg.S3.Endpoint != "" {
		src, err := s3storage.NewObjectSource(&cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		objects = src
	}
	return ingest.New(ingest.OptionsFromConfig(&cfg.Intake), objects), nil
}

func newNotifier(cfg *config.EmailConfig) (port.Notifier, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESNotifier(cfg)
	case "noop", "":
		return noop.NewNoopNotifier(), nil
	default:
		zap.L().Warn("intake.newNotifier: unknown email provider, using noop", zap.String("provider", cfg.Provider))
		return noop.NewNoopNotifier(), nil
	}
}
