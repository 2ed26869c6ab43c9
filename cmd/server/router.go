package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/recite/internal/api"
	apiMiddleware "github.com/phrazzld/recite/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	practiceHandler := api.NewPracticeHandler(app.practice, app.sessions, app.renderer, app.logger)
	speechHandler := api.NewSpeechHandler(app.speaker, app.logger)

	r.Get("/", practiceHandler.ShowInput)
	r.Post("/", practiceHandler.StartPractice)
	r.Get("/memorize", practiceHandler.ShowPractice)
	r.Post("/memorize", practiceHandler.SubmitRecall)
	r.Get("/result", practiceHandler.ShowResults)
	r.Get("/tts", speechHandler.Synthesize)

	r.Get("/health", api.Health)

	return r
}
