package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. RECITE_SERVER_PORT.
const EnvPrefix = "RECITE"

// ErrMissingCredential is returned when a selected provider has no API key.
var ErrMissingCredential = errors.New("missing credential")

// setDefaults registers a default for every key. Viper only consults the
// environment for keys it knows about, so keys without a meaningful default
// are registered with their zero value.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("session.backend", SessionBackendCookie)
	v.SetDefault("session.secret", PlaceholderSecret)
	v.SetDefault("session.cookie_name", "recite")
	v.SetDefault("session.lifetime_minutes", 24*60)
	v.SetDefault("session.secure_cookie", false)
	v.SetDefault("session.cache_max_cost_bytes", 64<<20)

	v.SetDefault("database.url", "")

	v.SetDefault("translation.provider", ProviderNone)
	v.SetDefault("translation.gemini_api_key", "")
	v.SetDefault("translation.gemini_model", "gemini-2.0-flash")
	v.SetDefault("translation.openai_api_key", "")
	v.SetDefault("translation.openai_model", "gpt-4o-mini")
	v.SetDefault("translation.openai_url", "")

	v.SetDefault("speech.provider", ProviderNone)
	v.SetDefault("speech.openai_api_key", "")
	v.SetDefault("speech.openai_model", "tts-1")
	v.SetDefault("speech.openai_url", "")
	v.SetDefault("speech.voice", "alloy")
	v.SetDefault("speech.speed", 1.0)
	v.SetDefault("speech.instructions", "")
	v.SetDefault("speech.voices", map[string]string{})
	v.SetDefault("speech.fallback_language", "en")

	v.SetDefault("breaker.max_failures", 5)
	v.SetDefault("breaker.open_timeout_seconds", 30)
}

// Load reads configuration from defaults, an optional config file and
// environment variables, in increasing order of precedence.
//
// When configFile is empty, a file named config.{yaml,json,toml} in the
// working directory is used if present. An explicitly named file must exist.
// Returns a populated Config or an error if loading or validation fails.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and the rules that span several groups.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Session.Backend == SessionBackendPostgres && cfg.Database.URL == "" {
		return fmt.Errorf("config validation failed: database.url is required for the %s session backend",
			SessionBackendPostgres)
	}

	switch cfg.Translation.Provider {
	case ProviderGemini:
		if cfg.Translation.GeminiAPIKey == "" {
			return fmt.Errorf("config validation failed: %w: translation.gemini_api_key", ErrMissingCredential)
		}
	case ProviderOpenAI:
		if cfg.Translation.OpenAIAPIKey == "" {
			return fmt.Errorf("config validation failed: %w: translation.openai_api_key", ErrMissingCredential)
		}
	}

	if cfg.Speech.Provider == ProviderOpenAI && cfg.Speech.OpenAIAPIKey == "" {
		return fmt.Errorf("config validation failed: %w: speech.openai_api_key", ErrMissingCredential)
	}

	return nil
}
