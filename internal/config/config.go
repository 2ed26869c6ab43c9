package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"      validate:"required"`
	Session     SessionConfig     `mapstructure:"session"     validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Translation TranslationConfig `mapstructure:"translation" validate:"required"`
	Speech      SpeechConfig      `mapstructure:"speech"      validate:"required"`
	Breaker     BreakerConfig     `mapstructure:"breaker"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// Session backends.
const (
	SessionBackendCookie   = "cookie"
	SessionBackendMemory   = "memory"
	SessionBackendPostgres = "postgres"
)

// PlaceholderSecret is the default session signing secret. It is fine for a
// local run and must be replaced anywhere else.
const PlaceholderSecret = "replace-with-your-secret-key-0123456789"

// SessionConfig controls where practice sessions are kept and how the
// session cookie is issued.
type SessionConfig struct {
	Backend           string `mapstructure:"backend"              validate:"required,oneof=cookie memory postgres"`
	Secret            string `mapstructure:"secret"               validate:"required,min=32"`
	CookieName        string `mapstructure:"cookie_name"          validate:"required,alphanum"`
	LifetimeMinutes   int    `mapstructure:"lifetime_minutes"     validate:"gte=1"`
	SecureCookie      bool   `mapstructure:"secure_cookie"`
	CacheMaxCostBytes int64  `mapstructure:"cache_max_cost_bytes" validate:"gte=1024"`
}

// DatabaseConfig contains the settings for the postgres session backend.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// Translation providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// TranslationConfig selects and configures the auto-prompt translator.
type TranslationConfig struct {
	Provider     string `mapstructure:"provider"       validate:"required,oneof=gemini openai none"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"   validate:"required"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"   validate:"required"`
	OpenAIURL    string `mapstructure:"openai_url"     validate:"omitempty,url"`
}

// SpeechConfig selects and configures the speech synthesizer.
type SpeechConfig struct {
	Provider     string `mapstructure:"provider"       validate:"required,oneof=openai none"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"   validate:"required"`
	OpenAIURL    string `mapstructure:"openai_url"     validate:"omitempty,url"`
	Voice        string `mapstructure:"voice"          validate:"required"`
	// Voices overrides Voice per detected language code, e.g. {"fr": "nova"}.
	Voices           map[string]string `mapstructure:"voices"`
	Speed            float64           `mapstructure:"speed"             validate:"gte=0.25,lte=4"`
	Instructions     string            `mapstructure:"instructions"`
	FallbackLanguage string            `mapstructure:"fallback_language" validate:"required,min=2,max=5"`
}

// BreakerConfig tunes the circuit breakers around external services.
type BreakerConfig struct {
	MaxFailures        uint32 `mapstructure:"max_failures"         validate:"gte=1"`
	OpenTimeoutSeconds int    `mapstructure:"open_timeout_seconds" validate:"gte=1"`
}
