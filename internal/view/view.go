// Package view renders the three HTML screens of the practice flow from
// typed view models. It holds no business logic.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/phrazzld/recite/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageInput    = "index.html"
	pagePractice = "practice.html"
	pageResults  = "results.html"
)

// InputView is the model of the input form.
type InputView struct {
	Languages        []domain.Language
	Text             string
	Prompts          string
	TargetLanguage   string
	UseCustomPrompts bool
	UseAutoPrompts   bool
	UseSpeech        bool
	Error            string
}

// NewInputView returns the form in its initial state: custom prompts and
// speech checked, translation prompts unchecked.
func NewInputView() InputView {
	return InputView{
		Languages:        domain.SupportedLanguages,
		TargetLanguage:   domain.DefaultLanguage,
		UseCustomPrompts: true,
		UseSpeech:        true,
	}
}

// PracticeView is the model of one practice screen. Input and Error are set
// when a submitted answer is shown again.
type PracticeView struct {
	Index     int
	Position  int
	Total     int
	Prompt    string
	Sentence  string
	UseSpeech bool
	Input     string
	Error     string
}

// ResultRow is one line of the results table.
type ResultRow struct {
	Sentence string
	Input    string
	Status   string
}

// TallyEntry counts results with one status.
type TallyEntry struct {
	Status string
	Count  int
}

// ResultsView is the model of the results screen.
type ResultsView struct {
	Rows      []ResultRow
	Tally     []TallyEntry
	Total     int
	Attempted int
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{pageInput, pagePractice, pageResults} {
		t, err := template.New(page).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// RenderInput writes the input form.
func (r *Renderer) RenderInput(w io.Writer, v InputView) error {
	if v.Languages == nil {
		v.Languages = domain.SupportedLanguages
	}
	return r.render(w, pageInput, v)
}

// RenderPractice writes a practice screen.
func (r *Renderer) RenderPractice(w io.Writer, v PracticeView) error {
	return r.render(w, pagePractice, v)
}

// RenderResults writes the results table.
func (r *Renderer) RenderResults(w io.Writer, v ResultsView) error {
	return r.render(w, pageResults, v)
}

// render executes page straight into w. Callers that need an all-or-nothing
// page buffer w themselves.
func (r *Renderer) render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	return nil
}
