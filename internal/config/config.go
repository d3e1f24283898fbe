// Package config provides application configuration with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.strands-agent/config.yaml or ./config.yaml)
//  3. Default values
//
// Error handling uses sentinel errors so callers can match with errors.Is().
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidProvider indicates the model provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is empty or malformed.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidPort indicates the HTTP port is out of range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidMaxTurns indicates the agentic loop turn limit is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")

	// ErrInvalidHistoryLimit indicates the history message limit is out of range.
	ErrInvalidHistoryLimit = errors.New("invalid max history messages")
)

// Model provider identifiers used in Config.Provider.
const (
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

// DefaultSystemPrompt is the system prompt handed to the agent at startup.
// It names the registered tools so the model knows what it can call.
const DefaultSystemPrompt = `You are a helpful AI assistant with access to:
- calculator: Perform mathematical calculations
- currentTime: Get the current date and time
- sendSMS: Send SMS messages

Be friendly, concise, and use tools when appropriate.`

// History bounds. The ceiling prevents unbounded per-session memory growth.
const (
	DefaultMaxHistoryMessages = 100
	MaxAllowedHistoryMessages = 10000
)

// Config stores application configuration.
//
// NOTE: OPENAI_API_KEY and GEMINI_API_KEY are read directly by the Genkit
// provider plugins, not via Viper. HasAPIKey() only checks presence so
// startup can warn without blocking (a missing key surfaces as a downstream
// failure on the first agent call).
type Config struct {
	// Model provider and agent configuration
	Provider           string `mapstructure:"provider" json:"provider"`       // "openai" (default) or "googleai"
	ModelName          string `mapstructure:"model_name" json:"model_name"`   // e.g. "gpt-4o-mini", "gemini-2.5-flash"
	MaxTurns           int    `mapstructure:"max_turns" json:"max_turns"`     // maximum agentic loop turns
	MaxHistoryMessages int    `mapstructure:"max_history_messages" json:"max_history_messages"`
	SystemPrompt       string `mapstructure:"system_prompt" json:"system_prompt"`

	// HTTP server configuration
	Host        string   `mapstructure:"host" json:"host"`
	Port        int      `mapstructure:"port" json:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level" json:"log_level"` // "debug", "info", "warn", "error"
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`

	// Observability configuration (empty disables trace export)
	OTLPEndpoint string `mapstructure:"otlp_endpoint" json:"otlp_endpoint"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	v := viper.New()

	// Configuration directory: ~/.strands-agent/ (optional)
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".strands-agent"))
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)
	bindEnvVariables(v)

	// Read configuration file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		// Not finding a file is fine, defaults apply
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// Fail fast on invalid values
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// Agent defaults
	v.SetDefault("provider", ProviderOpenAI)
	v.SetDefault("model_name", "gpt-4o-mini")
	v.SetDefault("max_turns", 5)
	v.SetDefault("max_history_messages", DefaultMaxHistoryMessages)
	v.SetDefault("system_prompt", DefaultSystemPrompt)

	// HTTP defaults
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	// Observability defaults (disabled)
	v.SetDefault("otlp_endpoint", "")
}

// bindEnvVariables binds environment overrides explicitly.
// PORT is bound without a prefix for platform compatibility (Railway, Heroku
// and friends inject it directly).
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys can only fail on programmer error
	mustBind := func(key string, envVars ...string) {
		if err := v.BindEnv(append([]string{key}, envVars...)...); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q: %v", key, err))
		}
	}

	mustBind("provider", "STRANDS_PROVIDER")
	mustBind("model_name", "STRANDS_MODEL_NAME")
	mustBind("max_turns", "STRANDS_MAX_TURNS")
	mustBind("system_prompt", "STRANDS_SYSTEM_PROMPT")
	mustBind("host", "STRANDS_HOST")
	mustBind("port", "STRANDS_PORT", "PORT")
	mustBind("cors_origins", "STRANDS_CORS_ORIGINS")
	mustBind("log_level", "STRANDS_LOG_LEVEL")
	mustBind("log_json", "STRANDS_LOG_JSON")
	mustBind("otlp_endpoint", "STRANDS_OTLP_ENDPOINT")

	// NOTE: OPENAI_API_KEY / GEMINI_API_KEY are read directly by the Genkit
	// provider plugins; presence is checked via HasAPIKey() for the startup
	// warning only.
}

// Validate checks configuration values and returns the first violation found.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGoogleAI:
	default:
		return fmt.Errorf("%w: %q (supported: %s, %s)",
			ErrInvalidProvider, c.Provider, ProviderOpenAI, ProviderGoogleAI)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidModelName)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d (must be 1-65535)", ErrInvalidPort, c.Port)
	}

	if c.MaxTurns < 1 || c.MaxTurns > 100 {
		return fmt.Errorf("%w: %d (must be 1-100)", ErrInvalidMaxTurns, c.MaxTurns)
	}

	if c.MaxHistoryMessages < 1 || c.MaxHistoryMessages > MaxAllowedHistoryMessages {
		return fmt.Errorf("%w: %d (must be 1-%d)",
			ErrInvalidHistoryLimit, c.MaxHistoryMessages, MaxAllowedHistoryMessages)
	}

	return nil
}

// Addr returns the host:port listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIKeyEnvVar returns the environment variable the selected provider reads
// its credential from.
func (c *Config) APIKeyEnvVar() string {
	if c.Provider == ProviderGoogleAI {
		return "GEMINI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// HasAPIKey reports whether the provider credential is present in the
// environment. Absence is tolerated at startup; the first model call will
// fail instead.
func (c *Config) HasAPIKey() bool {
	return os.Getenv(c.APIKeyEnvVar()) != ""
}

// ProviderModel returns the provider-qualified model reference used with
// Genkit, e.g. "openai/gpt-4o-mini".
func (c *Config) ProviderModel() string {
	return c.Provider + "/" + c.ModelName
}
