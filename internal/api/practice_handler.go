package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/recite/internal/api/shared"
	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/service"
	"github.com/phrazzld/recite/internal/session"
	"github.com/phrazzld/recite/internal/view"
)

// maxFormBytes bounds the size of a submitted form.
const maxFormBytes = 1 << 20

const answerTooLongMessage = "That answer is too long to save; shorten it and submit again"

// PageRenderer renders the HTML screens.
type PageRenderer interface {
	RenderInput(w io.Writer, v view.InputView) error
	RenderPractice(w io.Writer, v view.PracticeView) error
	RenderResults(w io.Writer, v view.ResultsView) error
}

// PracticeHandler serves the input, practice and results screens.
type PracticeHandler struct {
	practice service.PracticeService
	sessions session.Store
	renderer PageRenderer
	logger   *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler
func NewPracticeHandler(
	practice service.PracticeService,
	sessions session.Store,
	renderer PageRenderer,
	logger *slog.Logger,
) *PracticeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PracticeHandler{
		practice: practice,
		sessions: sessions,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "practice_handler")),
	}
}

// ShowInput handles GET / requests
func (h *PracticeHandler) ShowInput(w http.ResponseWriter, r *http.Request) {
	h.renderInput(w, r, http.StatusOK, view.NewInputView())
}

// StartPractice handles POST / requests. Invalid input re-renders the form
// with the submitted values and an error message.
func (h *PracticeHandler) StartPractice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid form submission", err)
		return
	}

	req := startPracticeRequestFromForm(r)
	if err := shared.ValidateRequest(req); err != nil {
		h.renderInput(w, r, http.StatusBadRequest, req.toInputView(shared.ValidationMessage(err)))
		return
	}

	sess, err := h.practice.Start(r.Context(), req.toServiceInput())
	if err != nil {
		if status := MapErrorToStatusCode(err); status < http.StatusInternalServerError {
			logger.FromContextOrDefault(r.Context(), h.logger).Debug("input rejected",
				slog.String("error", err.Error()))
			h.renderInput(w, r, status, req.toInputView(GetSafeErrorMessage(err)))
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.sessions.Save(w, r, sess); err != nil {
		if errors.Is(err, session.ErrSessionTooLarge) {
			h.renderInput(w, r, http.StatusRequestEntityTooLarge, req.toInputView(GetSafeErrorMessage(err)))
			return
		}
		HandleAPIError(w, r, err, "Failed to save practice session")
		return
	}

	http.Redirect(w, r, practiceURL(0), http.StatusSeeOther)
}

// ShowPractice handles GET /memorize?idx= requests
func (h *PracticeHandler) ShowPractice(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	idx, err := getIndexParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	step, err := h.practice.Step(r.Context(), sess, idx)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.render(w, r, func(w io.Writer) error {
		return h.renderer.RenderPractice(w, stepToView(step))
	})
}

// SubmitRecall handles POST /memorize?idx= requests
func (h *PracticeHandler) SubmitRecall(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	idx, err := getIndexParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid form submission", err)
		return
	}

	input := strings.TrimSpace(r.PostForm.Get("user_input"))
	outcome, err := h.practice.Submit(r.Context(), sess, idx, input)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.sessions.Save(w, r, sess); err != nil {
		if errors.Is(err, session.ErrSessionTooLarge) {
			h.renderRejectedAnswer(w, r, sess, idx, input)
			return
		}
		HandleAPIError(w, r, err, "Failed to save practice session")
		return
	}

	if outcome.Done {
		http.Redirect(w, r, "/result", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, practiceURL(outcome.NextIndex), http.StatusSeeOther)
}

// ShowResults handles GET /result requests
func (h *PracticeHandler) ShowResults(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	summary := h.practice.Results(r.Context(), sess)
	h.render(w, r, func(w io.Writer) error {
		return h.renderer.RenderResults(w, summaryToView(summary))
	})
}

// renderRejectedAnswer shows the practice screen for idx again with the
// answer that could not be saved. The stored session is unchanged.
func (h *PracticeHandler) renderRejectedAnswer(w http.ResponseWriter, r *http.Request, sess *domain.Session, idx int, input string) {
	logger.FromContextOrDefault(r.Context(), h.logger).Info("answer rejected, session would outgrow its store",
		slog.Int("index", idx),
		slog.Int("input_length", len(input)))

	step, err := h.practice.Step(r.Context(), sess, idx)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	v := stepToView(step)
	v.Input = input
	v.Error = answerTooLongMessage
	h.renderStatus(w, r, http.StatusRequestEntityTooLarge, func(w io.Writer) error {
		return h.renderer.RenderPractice(w, v)
	})
}

// loadSession returns the session of r. Requests without a usable session
// are sent back to the input form.
func (h *PracticeHandler) loadSession(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	sess, err := h.sessions.Load(r)
	if err == nil {
		return sess, true
	}

	if errors.Is(err, session.ErrNotFound) {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("no session, redirecting to input",
			slog.String("path", r.URL.Path),
			slog.Bool("invalid", errors.Is(err, session.ErrInvalidSession)))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}

	HandleAPIError(w, r, err, "Failed to load practice session")
	return nil, false
}

func (h *PracticeHandler) renderInput(w http.ResponseWriter, r *http.Request, status int, v view.InputView) {
	h.renderStatus(w, r, status, func(w io.Writer) error {
		return h.renderer.RenderInput(w, v)
	})
}

func (h *PracticeHandler) render(w http.ResponseWriter, r *http.Request, fn func(io.Writer) error) {
	h.renderStatus(w, r, http.StatusOK, fn)
}

// renderStatus renders a page into a buffer first so a template error still
// produces a clean 500.
func (h *PracticeHandler) renderStatus(w http.ResponseWriter, r *http.Request, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to write page",
			slog.String("error", err.Error()))
	}
}
