package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/idea-validator/internal/entity"
	pkgRetry "github.com/futig/idea-validator/internal/pkg/retry"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string        `env:"SERVER_ADDR" envDefault:":5000"`
	ServerReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	ServerWriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"90s"`

	// Upper bound for a single evaluation including the completion call
	EvaluationTimeout time.Duration `env:"EVALUATION_TIMEOUT" envDefault:"60s"`

	// Completion provider: openai, anthropic or gemini
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai"`

	// External service configurations
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`
	AnthropicCfg    AnthropicConfig    `envPrefix:"ANTHROPIC_"`
	GeminiCfg       GeminiConfig       `envPrefix:"GEMINI_"`

	// Fallback credential name used by OpenAI tooling
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Tracing configuration (optional)
	TracingCfg TracingConfig `envPrefix:"TRACING_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string `env:"BOT_TOKEN"`
	UpdateTimeout   int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds

	// Report attached after each evaluation, empty disables the attachment
	ReportFormat string `env:"REPORT_FORMAT" envDefault:"pdf"`
}

type TracingConfig struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	EndpointURL string `env:"ENDPOINT_URL"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"idea-validator"`
}

// LLMConnectorConfig configures the OpenAI compatible chat completion connector
type LLMConnectorConfig struct {
	HTTPClientConfig
	ChatEndpoint string               `env:"CHAT_ENDPOINT" envDefault:"/v1/chat/completions"`
	Model        string               `env:"MODEL" envDefault:"gpt-4o"`
	Organization string               `env:"ORGANIZATION"`
	Retry        pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type AnthropicConfig struct {
	APIKey string               `env:"API_KEY"`
	Model  string               `env:"MODEL" envDefault:"claude-sonnet-4-20250514"`
	Retry  pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type GeminiConfig struct {
	APIKey string               `env:"API_KEY"`
	Model  string               `env:"MODEL" envDefault:"gemini-1.5-flash"`
	Retry  pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"30s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	TLSHandshakeTimeout   time.Duration `env:"TLS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Missing env file is fine when variables are set externally.
	// Stdout belongs to the MCP stdio transport, so warnings go to stderr.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// The credential is not required here: a missing key surfaces
	// as a transport error on the first completion call.
	if cfg.LLMConnectorCfg.Token == "" {
		cfg.LLMConnectorCfg.Token = cfg.OpenAIAPIKey
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.LLMProvider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
	default:
		errors = append(errors, fmt.Sprintf("LLM_PROVIDER must be one of openai, anthropic, gemini, got %q", cfg.LLMProvider))
	}

	if cfg.EvaluationTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("EVALUATION_TIMEOUT must be positive, got %s", cfg.EvaluationTimeout))
	}

	retries := []struct {
		name     string
		attempts uint
	}{
		{"LLM_RETRY_ATTEMPTS", cfg.LLMConnectorCfg.Retry.Attempts},
		{"ANTHROPIC_RETRY_ATTEMPTS", cfg.AnthropicCfg.Retry.Attempts},
		{"GEMINI_RETRY_ATTEMPTS", cfg.GeminiCfg.Retry.Attempts},
	}
	for _, r := range retries {
		if r.attempts < 1 || r.attempts > 5 {
			errors = append(errors, fmt.Sprintf("%s must be between 1 and 5, got %d", r.name, r.attempts))
		}
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	switch entity.ReportFormat(cfg.TelegramCfg.ReportFormat) {
	case "", entity.FormatPDF, entity.FormatDOCX, entity.FormatMarkdown, entity.FormatHTML:
	default:
		errors = append(errors, fmt.Sprintf("TELEGRAM_REPORT_FORMAT must be empty or one of pdf, docx, markdown, html, got %q", cfg.TelegramCfg.ReportFormat))
	}

	if cfg.TracingCfg.Enabled && cfg.TracingCfg.EndpointURL == "" {
		errors = append(errors, "TRACING_ENDPOINT_URL is required when TRACING_ENABLED is set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
