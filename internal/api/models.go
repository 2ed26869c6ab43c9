package api

import (
	"net/http"

	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/service"
	"github.com/phrazzld/recite/internal/view"
)

// StartPracticeRequest is the submitted input form.
type StartPracticeRequest struct {
	Text             string `form:"text"        validate:"max=100000"`
	Prompts          string `form:"prompts"     validate:"max=100000"`
	TargetLanguage   string `form:"target_lang" validate:"required,oneof=en zh-cn fr es"`
	UseCustomPrompts bool   `form:"use_group"`
	UseAutoPrompts   bool   `form:"use_auto"`
	UseSpeech        bool   `form:"use_tts"`
}

// startPracticeRequestFromForm reads the input form. r.ParseForm must have
// been called.
func startPracticeRequestFromForm(r *http.Request) StartPracticeRequest {
	req := StartPracticeRequest{
		Text:             r.PostForm.Get("text"),
		Prompts:          r.PostForm.Get("prompts"),
		TargetLanguage:   r.PostForm.Get("target_lang"),
		UseCustomPrompts: isChecked(r, "use_group"),
		UseAutoPrompts:   isChecked(r, "use_auto"),
		UseSpeech:        isChecked(r, "use_tts"),
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = domain.DefaultLanguage
	}
	return req
}

func (req StartPracticeRequest) toServiceInput() service.StartInput {
	return service.StartInput{
		Text:             req.Text,
		Prompts:          req.Prompts,
		TargetLanguage:   req.TargetLanguage,
		UseCustomPrompts: req.UseCustomPrompts,
		UseAutoPrompts:   req.UseAutoPrompts,
		UseSpeech:        req.UseSpeech,
	}
}

// toInputView echoes the submitted values back into the form.
func (req StartPracticeRequest) toInputView(message string) view.InputView {
	v := view.NewInputView()
	v.Text = req.Text
	v.Prompts = req.Prompts
	v.TargetLanguage = req.TargetLanguage
	v.UseCustomPrompts = req.UseCustomPrompts
	v.UseAutoPrompts = req.UseAutoPrompts
	v.UseSpeech = req.UseSpeech
	v.Error = message
	return v
}

func stepToView(step *service.Step) view.PracticeView {
	return view.PracticeView{
		Index:     step.Index,
		Position:  step.Position,
		Total:     step.Total,
		Prompt:    step.Prompt,
		Sentence:  step.Sentence,
		UseSpeech: step.UseSpeech,
	}
}

func summaryToView(s *service.Summary) view.ResultsView {
	v := view.ResultsView{
		Rows:      make([]view.ResultRow, 0, len(s.Rows)),
		Tally:     make([]view.TallyEntry, 0, len(domain.Statuses)),
		Total:     s.Total,
		Attempted: s.Attempted,
	}
	for _, row := range s.Rows {
		v.Rows = append(v.Rows, view.ResultRow{
			Sentence: row.Sentence,
			Input:    row.Input,
			Status:   string(row.Status),
		})
	}
	for _, status := range domain.Statuses {
		v.Tally = append(v.Tally, view.TallyEntry{Status: string(status), Count: s.Tally[status]})
	}
	return v
}
