package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/recite/internal/api"
	"github.com/phrazzld/recite/internal/config"
	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/platform/cache"
	"github.com/phrazzld/recite/internal/platform/gemini"
	"github.com/phrazzld/recite/internal/platform/openai"
	"github.com/phrazzld/recite/internal/platform/postgres"
	"github.com/phrazzld/recite/internal/platform/resilience"
	"github.com/phrazzld/recite/internal/platform/whatlang"
	"github.com/phrazzld/recite/internal/service"
	"github.com/phrazzld/recite/internal/session"
	"github.com/phrazzld/recite/internal/speech"
	"github.com/phrazzld/recite/internal/translation"
	"github.com/phrazzld/recite/internal/view"
)

// detectorMinConfidence is the whatlanggo confidence below which the speech
// fallback language is used.
const detectorMinConfidence = 0.1

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Session backends; at most one is set.
	db    *sql.DB
	cache *cache.SessionCache

	sessions session.Store
	practice service.PracticeService
	speaker  api.Speaker
	renderer api.PageRenderer
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.sessions, err = app.setupSessionStore(ctx)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to set up session store: %w", err)
	}

	translator, err := app.setupTranslator(ctx)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to set up translator: %w", err)
	}
	app.practice = service.NewPractice(translation.NewFetcher(translator, logger), logger)

	app.speaker, err = app.setupSpeaker()
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to set up speech: %w", err)
	}

	app.renderer, err = view.NewRenderer()
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// setupSessionStore builds the configured session store.
func (app *application) setupSessionStore(ctx context.Context) (session.Store, error) {
	cfg := app.config.Session
	opts := session.CookieOptions{
		Name:     cfg.CookieName,
		Lifetime: time.Duration(cfg.LifetimeMinutes) * time.Minute,
		Secure:   cfg.SecureCookie,
	}

	switch cfg.Backend {
	case config.SessionBackendMemory:
		c, err := cache.New(cfg.CacheMaxCostBytes)
		if err != nil {
			return nil, err
		}
		app.cache = c
		app.logger.Info("using in-memory session store", slog.Int64("max_cost_bytes", cfg.CacheMaxCostBytes))
		return session.NewServerStore(c, opts, app.logger), nil

	case config.SessionBackendPostgres:
		db, err := postgres.Open(ctx, app.config.Database.URL)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.logger.Info("using postgres session store")
		return session.NewServerStore(postgres.NewSessionStore(db, app.logger), opts, app.logger), nil

	default:
		app.logger.Info("using signed cookie session store")
		return session.NewCookieStore(cfg.Secret, opts, app.logger)
	}
}

// setupTranslator builds the auto-prompt translator behind a circuit
// breaker. It returns nil when translation is disabled.
func (app *application) setupTranslator(ctx context.Context) (translation.Translator, error) {
	cfg := app.config.Translation

	var next translation.Translator
	switch cfg.Provider {
	case config.ProviderGemini:
		t, err := gemini.NewTranslator(ctx, app.logger, cfg)
		if err != nil {
			return nil, err
		}
		next = t
	case config.ProviderOpenAI:
		t, err := openai.NewTranslator(app.logger, cfg)
		if err != nil {
			return nil, err
		}
		next = t
	default:
		app.logger.Info("translation prompts disabled")
		return nil, nil
	}

	breaker := resilience.NewBreaker(app.breakerSettings("translation", func(err error) bool {
		return errors.Is(err, translation.ErrEmptyText) ||
			errors.Is(err, domain.ErrUnsupportedLanguage)
	}), app.logger)

	app.logger.Info("translator initialized", slog.String("provider", cfg.Provider))
	return resilience.NewTranslator(next, breaker), nil
}

// setupSpeaker builds the speech service. It returns nil when speech is
// disabled, which makes /tts answer 502.
func (app *application) setupSpeaker() (api.Speaker, error) {
	cfg := app.config.Speech
	if cfg.Provider != config.ProviderOpenAI {
		app.logger.Info("speech synthesis disabled")
		return nil, nil
	}

	synth, err := openai.NewSynthesizer(app.logger, cfg)
	if err != nil {
		return nil, err
	}

	breaker := resilience.NewBreaker(app.breakerSettings("speech", func(err error) bool {
		return errors.Is(err, speech.ErrEmptyText)
	}), app.logger)

	svc, err := speech.NewService(
		whatlang.NewDetector(detectorMinConfidence),
		resilience.NewSynthesizer(synth, breaker),
		cfg.FallbackLanguage,
		app.logger,
	)
	if err != nil {
		return nil, err
	}

	app.logger.Info("speech synthesis initialized",
		slog.String("model", cfg.OpenAIModel),
		slog.String("voice", cfg.Voice))
	return svc, nil
}

func (app *application) breakerSettings(name string, ignore func(error) bool) resilience.Settings {
	return resilience.Settings{
		Name:        name,
		MaxFailures: app.config.Breaker.MaxFailures,
		OpenTimeout: time.Duration(app.config.Breaker.OpenTimeoutSeconds) * time.Second,
		Ignore:      ignore,
	}
}

// Run starts the application server and blocks until ctx is cancelled or the
// server fails.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the session backend.
func (app *application) cleanup() {
	if app.cache != nil {
		app.cache.Close()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
