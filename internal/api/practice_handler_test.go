package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/recite/internal/api"
	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/mocks"
	"github.com/phrazzld/recite/internal/service"
	"github.com/phrazzld/recite/internal/session"
	"github.com/phrazzld/recite/internal/translation"
	"github.com/phrazzld/recite/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// failingStore is a session.Store whose backend is down.
type failingStore struct {
	loadErr error
	saveErr error
}

func (s failingStore) Load(*http.Request) (*domain.Session, error) { return nil, s.loadErr }

func (s failingStore) Save(http.ResponseWriter, *http.Request, *domain.Session) error {
	return s.saveErr
}

type testApp struct {
	server     *httptest.Server
	client     *http.Client
	translator *mocks.MockTranslator
}

func newTestApp(t *testing.T, store session.Store) *testApp {
	t.Helper()

	translator := &mocks.MockTranslator{
		TranslateFn: func(_ context.Context, text, target string) (string, error) {
			return "[" + target + "] " + text, nil
		},
	}
	if store == nil {
		cookies, err := session.NewCookieStore(testSecret, session.DefaultCookieOptions(), nil)
		require.NoError(t, err)
		store = cookies
	}
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	practice := service.NewPractice(translation.NewFetcher(translator, nil), nil)
	h := api.NewPracticeHandler(practice, store, renderer, nil)

	r := chi.NewRouter()
	r.Get("/", h.ShowInput)
	r.Post("/", h.StartPractice)
	r.Get("/memorize", h.ShowPractice)
	r.Post("/memorize", h.SubmitRecall)
	r.Get("/result", h.ShowResults)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{
		server: server,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		translator: translator,
	}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestShowInput(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, nil)

	resp, body := app.get(t, "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, `name="use_group" checked`)
	assert.Contains(t, body, `name="use_tts" checked`)
	assert.NotContains(t, body, `name="use_auto" checked`)
}

func TestPracticeFlow(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, nil)

	resp, _ := app.post(t, "/", url.Values{
		"text":        {"the cat sat\non the mat"},
		"prompts":     {"1-1: animal"},
		"target_lang": {"fr"},
		"use_group":   {"on"},
		"use_auto":    {"on"},
		"use_tts":     {"on"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/memorize?idx=0", resp.Header.Get("Location"))
	assert.Len(t, app.translator.Calls(), 2)

	resp, body := app.get(t, "/memorize?idx=0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Sentence 1 / 2")
	assert.Contains(t, body, "animal")
	assert.Contains(t, body, "/tts?text=the%20cat%20sat")

	resp, _ = app.post(t, "/memorize?idx=0", url.Values{"user_input": {"  the cat sat "}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/memorize?idx=1", resp.Header.Get("Location"))

	resp, body = app.get(t, "/memorize?idx=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "[fr] on the mat", "uncovered sentence falls back to the translation")

	resp, _ = app.post(t, "/memorize?idx=1", url.Values{"user_input": {"on the mat"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/result", resp.Header.Get("Location"))

	resp, body = app.get(t, "/result")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, strings.Count(body, ">Perfect</td>"))
	assert.Less(t, strings.Index(body, "the cat sat"), strings.Index(body, "on the mat"))
}

func TestSubmitRecallScoresWords(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, nil)

	resp, _ := app.post(t, "/", url.Values{"text": {"one two three four five"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Empty(t, app.translator.Calls(), "auto prompts disabled")

	resp, _ = app.post(t, "/memorize?idx=0", url.Values{"user_input": {"one"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/result", resp.Header.Get("Location"))

	_, body := app.get(t, "/result")
	assert.Contains(t, body, ">None</td>")
}

func TestResubmissionOverwrites(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, nil)

	app.post(t, "/", url.Values{"text": {"a b\nc d"}})
	app.post(t, "/memorize?idx=0", url.Values{"user_input": {"x y"}})
	app.post(t, "/memorize?idx=0", url.Values{"user_input": {"a b"}})

	_, body := app.get(t, "/result")
	assert.Contains(t, body, ">Perfect</td>")
	assert.NotContains(t, body, ">None</td>")
}

func TestOverlongAnswerKeepsProgress(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, nil)

	app.post(t, "/", url.Values{"text": {"first line\nsecond line"}})
	resp, _ := app.post(t, "/memorize?idx=0", url.Values{"user_input": {"first line"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	rambling := strings.TrimSpace(strings.Repeat("rambling ", 600))
	resp, body := app.post(t, "/memorize?idx=1", url.Values{"user_input": {rambling}})

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Sentence 2 / 2")
	assert.Contains(t, body, "too long to save")
	assert.Contains(t, body, rambling+"</textarea>")

	resp, _ = app.post(t, "/memorize?idx=1", url.Values{"user_input": {"second line"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/result", resp.Header.Get("Location"))

	_, body = app.get(t, "/result")
	assert.Equal(t, 2, strings.Count(body, ">Perfect</td>"))
}

// brokenRenderer writes part of a page before failing.
type brokenRenderer struct{}

func (brokenRenderer) RenderInput(w io.Writer, _ view.InputView) error {
	_, _ = io.WriteString(w, "<html><body>half a form")
	return errors.New("template: index.html: boom")
}

func (brokenRenderer) RenderPractice(io.Writer, view.PracticeView) error { return nil }

func (brokenRenderer) RenderResults(io.Writer, view.ResultsView) error { return nil }

func TestRenderFailureWritesNoPartialPage(t *testing.T) {
	t.Parallel()

	h := api.NewPracticeHandler(nil, failingStore{}, brokenRenderer{}, nil)
	rec := httptest.NewRecorder()

	h.ShowInput(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "half a form")
}

func TestStartPracticeRejectsInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   string
	}{
		{
			name:       "malformed prompt range",
			form:       url.Values{"text": {"a\nb"}, "prompts": {"x-2: oops"}, "use_group": {"on"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid prompt range",
		},
		{
			name:       "no sentences",
			form:       url.Values{"text": {"  \n \n"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "at least one sentence",
		},
		{
			name:       "unsupported language",
			form:       url.Values{"text": {"a"}, "target_lang": {"de"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid target_lang",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			app := newTestApp(t, nil)

			resp, body := app.post(t, "/", tc.form)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Contains(t, body, tc.wantBody)
			assert.Contains(t, body, "<form", "form is shown again")
			assert.Contains(t, body, tc.form.Get("text"), "submitted text is echoed")
		})
	}
}

func TestMissingSessionRedirects(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/memorize?idx=0", "/result"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			app := newTestApp(t, nil)

			resp, _ := app.get(t, path)

			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/", resp.Header.Get("Location"))
		})
	}

	t.Run("submit", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil)

		resp, _ := app.post(t, "/memorize?idx=0", url.Values{"user_input": {"x"}})

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})
}

func TestPracticeIndexErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"missing index defaults to first", "/memorize", http.StatusOK},
		{"past the end", "/memorize?idx=2", http.StatusNotFound},
		{"negative", "/memorize?idx=-1", http.StatusNotFound},
		{"not a number", "/memorize?idx=abc", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			app := newTestApp(t, nil)
			resp, _ := app.post(t, "/", url.Values{"text": {"a\nb"}})
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)

			resp, _ = app.get(t, tc.path)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestSessionBackendFailure(t *testing.T) {
	t.Parallel()
	backendErr := errors.New("connection refused")

	t.Run("load", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, failingStore{loadErr: backendErr})

		resp, body := app.get(t, "/result")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, body, "connection refused")
	})

	t.Run("save too large", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, failingStore{saveErr: session.ErrSessionTooLarge})

		resp, body := app.post(t, "/", url.Values{"text": {"a"}})

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Contains(t, body, "server-side session store")
	})
}
