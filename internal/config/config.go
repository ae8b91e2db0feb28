package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	CORS       CORSConfig
	Metrics    MetricsConfig
	Extraction ExtractionConfig
	Relay      RelayConfig
	Intake     IntakeConfig
	S3         S3Config
	Email      EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig holds prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ProviderConfig holds settings for a single LLM provider.
type ProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	Endpoint     string `mapstructure:"endpoint"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractionConfig holds LLM provider settings with multi-provider support.
type ExtractionConfig struct {
	// Legacy flat fields
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	Endpoint     string `mapstructure:"endpoint"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
	Tertiary  ProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (e *ExtractionConfig) PrimaryConfig() *ProviderConfig {
	if e.Primary.Provider != "" {
		return &e.Primary
	}
	return &ProviderConfig{
		Provider:     e.Provider,
		APIKey:       e.APIKey,
		DefaultModel: e.DefaultModel,
		Endpoint:     e.Endpoint,
		TimeoutSecs:  e.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (e *ExtractionConfig) SecondaryConfig() *ProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (e *ExtractionConfig) TertiaryConfig() *ProviderConfig {
	if e.Tertiary.Provider != "" {
		return &e.Tertiary
	}
	return nil
}

// RelayConfig holds the webhook relay allow-list and upstream settings.
type RelayConfig struct {
	AllowedHost  string `mapstructure:"allowed_host"`
	PathPrefix   string `mapstructure:"path_prefix"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
	MaxBodyChars int    `mapstructure:"max_body_chars"`
}

// IntakeConfig holds settings for the intake CLI (the extraction gateway client).
type IntakeConfig struct {
	ExtractURL   string        `mapstructure:"extract_url"`
	RelayURL     string        `mapstructure:"relay_url"`
	WebhookURL   string        `mapstructure:"webhook_url"`
	Origin       string        `mapstructure:"origin"`
	MaxFileMB    int64         `mapstructure:"max_file_mb"`
	ImageMaxEdge int           `mapstructure:"image_max_edge"`
	JPEGQuality  int           `mapstructure:"jpeg_quality"`
	BatchDelay   time.Duration `mapstructure:"batch_delay"`
	TimeoutSecs  int           `mapstructure:"timeout_secs"`
}

// MaxFileBytes returns the file size ceiling in bytes.
func (i *IntakeConfig) MaxFileBytes() int64 {
	return i.MaxFileMB * 1024 * 1024
}

// S3Config holds AWS S3 settings for s3:// inputs.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EmailConfig holds batch summary delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	SummaryTo   string `mapstructure:"summary_to"`
}

// Load reads configuration from environment variables with the VHUB_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:8080")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Extraction defaults (legacy flat)
	v.SetDefault("extraction.provider", "gateway")
	v.SetDefault("extraction.api_key", "")
	v.SetDefault("extraction.default_model", "google/gemini-2.5-flash")
	v.SetDefault("extraction.endpoint", "")
	v.SetDefault("extraction.timeout_secs", 120)

	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("extraction."+tier+".provider", "")
		v.SetDefault("extraction."+tier+".api_key", "")
		v.SetDefault("extraction."+tier+".default_model", "")
		v.SetDefault("extraction."+tier+".endpoint", "")
		v.SetDefault("extraction."+tier+".timeout_secs", 120)
	}

	// Relay defaults
	v.SetDefault("relay.allowed_host", "plumber.gov.sg")
	v.SetDefault("relay.path_prefix", "/webhooks/")
	v.SetDefault("relay.timeout_secs", 30)
	v.SetDefault("relay.max_body_chars", 2000)

	// Intake defaults
	v.SetDefault("intake.extract_url", "http://localhost:8080/api/v1/extract")
	v.SetDefault("intake.relay_url", "http://localhost:8080/api/v1/webhooks/forward")
	v.SetDefault("intake.webhook_url", "")
	v.SetDefault("intake.origin", "volunteerhub-intake")
	v.SetDefault("intake.max_file_mb", 20)
	v.SetDefault("intake.image_max_edge", 1600)
	v.SetDefault("intake.jpeg_quality", 80)
	v.SetDefault("intake.batch_delay", "500ms")
	v.SetDefault("intake.timeout_secs", 180)

	// S3 defaults
	v.SetDefault("s3.region", "ap-southeast-1")
	v.SetDefault("s3.endpoint", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-southeast-1")
	v.SetDefault("email.from_address", "noreply@volunteerhub.local")
	v.SetDefault("email.from_name", "VolunteerHub")
	v.SetDefault("email.summary_to", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "VHUB_SERVER_PORT",
		"server.read_timeout":               "VHUB_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "VHUB_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":           "VHUB_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":                "VHUB_SERVER_ENVIRONMENT",
		"log.level":                         "VHUB_LOG_LEVEL",
		"log.format":                        "VHUB_LOG_FORMAT",
		"cors.allowed_origins":              "VHUB_CORS_ALLOWED_ORIGINS",
		"metrics.enabled":                   "VHUB_METRICS_ENABLED",
		"metrics.path":                      "VHUB_METRICS_PATH",
		"extraction.provider":               "VHUB_EXTRACTION_PROVIDER",
		"extraction.api_key":                "VHUB_EXTRACTION_API_KEY",
		"extraction.default_model":          "VHUB_EXTRACTION_DEFAULT_MODEL",
		"extraction.endpoint":               "VHUB_EXTRACTION_ENDPOINT",
		"extraction.timeout_secs":           "VHUB_EXTRACTION_TIMEOUT_SECS",
		"extraction.primary.provider":       "VHUB_EXTRACTION_PRIMARY_PROVIDER",
		"extraction.primary.api_key":        "VHUB_EXTRACTION_PRIMARY_API_KEY",
		"extraction.primary.default_model":  "VHUB_EXTRACTION_PRIMARY_DEFAULT_MODEL",
		"extraction.primary.endpoint":       "VHUB_EXTRACTION_PRIMARY_ENDPOINT",
		"extraction.primary.timeout_secs":   "VHUB_EXTRACTION_PRIMARY_TIMEOUT_SECS",
		"extraction.secondary.provider":     "VHUB_EXTRACTION_SECONDARY_PROVIDER",
		"extraction.secondary.api_key":      "VHUB_EXTRACTION_SECONDARY_API_KEY",
		"extraction.secondary.default_model": "VHUB_EXTRACTION_SECONDARY_DEFAULT_MODEL",
		"extraction.secondary.endpoint":     "VHUB_EXTRACTION_SECONDARY_ENDPOINT",
		"extraction.secondary.timeout_secs": "VHUB_EXTRACTION_SECONDARY_TIMEOUT_SECS",
		"extraction.tertiary.provider":      "VHUB_EXTRACTION_TERTIARY_PROVIDER",
		"extraction.tertiary.api_key":       "VHUB_EXTRACTION_TERTIARY_API_KEY",
		"extraction.tertiary.default_model": "VHUB_EXTRACTION_TERTIARY_DEFAULT_MODEL",
		"extraction.tertiary.endpoint":      "VHUB_EXTRACTION_TERTIARY_ENDPOINT",
		"extraction.tertiary.timeout_secs":  "VHUB_EXTRACTION_TERTIARY_TIMEOUT_SECS",
		"relay.allowed_host":                "VHUB_RELAY_ALLOWED_HOST",
		"relay.path_prefix":                 "VHUB_RELAY_PATH_PREFIX",
		"relay.timeout_secs":                "VHUB_RELAY_TIMEOUT_SECS",
		"relay.max_body_chars":              "VHUB_RELAY_MAX_BODY_CHARS",
		"intake.extract_url":                "VHUB_INTAKE_EXTRACT_URL",
		"intake.relay_url":                  "VHUB_INTAKE_RELAY_URL",
		"intake.webhook_url":                "VHUB_INTAKE_WEBHOOK_URL",
		"intake.origin":                     "VHUB_INTAKE_ORIGIN",
		"intake.max_file_mb":                "VHUB_INTAKE_MAX_FILE_MB",
		"intake.image_max_edge":             "VHUB_INTAKE_IMAGE_MAX_EDGE",
		"intake.jpeg_quality":               "VHUB_INTAKE_JPEG_QUALITY",
		"intake.batch_delay":                "VHUB_INTAKE_BATCH_DELAY",
		"intake.timeout_secs":               "VHUB_INTAKE_TIMEOUT_SECS",
		"s3.region":                         "VHUB_S3_REGION",
		"s3.endpoint":                       "VHUB_S3_ENDPOINT",
		"s3.access_key":                     "VHUB_S3_ACCESS_KEY",
		"s3.secret_key":                     "VHUB_S3_SECRET_KEY",
		"email.provider":                    "VHUB_EMAIL_PROVIDER",
		"email.region":                      "VHUB_EMAIL_REGION",
		"email.from_address":                "VHUB_EMAIL_FROM_ADDRESS",
		"email.from_name":                   "VHUB_EMAIL_FROM_NAME",
		"email.summary_to":                  "VHUB_EMAIL_SUMMARY_TO",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if VHUB_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("VHUB_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	cfg.Extraction = ExtractionConfig{
		Provider:     v.GetString("extraction.provider"),
		APIKey:       v.GetString("extraction.api_key"),
		DefaultModel: v.GetString("extraction.default_model"),
		Endpoint:     v.GetString("extraction.endpoint"),
		TimeoutSecs:  v.GetInt("extraction.timeout_secs"),
		Primary:      providerConfig(v, "extraction.primary"),
		Secondary:    providerConfig(v, "extraction.secondary"),
		Tertiary:     providerConfig(v, "extraction.tertiary"),
	}

	cfg.Relay = RelayConfig{
		AllowedHost:  v.GetString("relay.allowed_host"),
		PathPrefix:   v.GetString("relay.path_prefix"),
		TimeoutSecs:  v.GetInt("relay.timeout_secs"),
		MaxBodyChars: v.GetInt("relay.max_body_chars"),
	}

	cfg.Intake = IntakeConfig{
		ExtractURL:   v.GetString("intake.extract_url"),
		RelayURL:     v.GetString("intake.relay_url"),
		WebhookURL:   v.GetString("intake.webhook_url"),
		Origin:       v.GetString("intake.origin"),
		MaxFileMB:    v.GetInt64("intake.max_file_mb"),
		ImageMaxEdge: v.GetInt("intake.image_max_edge"),
		JPEGQuality:  v.GetInt("intake.jpeg_quality"),
		BatchDelay:   v.GetDuration("intake.batch_delay"),
		TimeoutSecs:  v.GetInt("intake.timeout_secs"),
	}

	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		SummaryTo:   v.GetString("email.summary_to"),
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, prefix string) ProviderConfig {
	return ProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       v.GetString(prefix + ".api_key"),
		DefaultModel: v.GetString(prefix + ".default_model"),
		Endpoint:     v.GetString(prefix + ".endpoint"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
