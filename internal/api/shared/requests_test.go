package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleForm struct {
	Lang string `form:"target_lang" validate:"required,oneof=en fr"`
	Note string `validate:"max=3"`
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		form    sampleForm
		wantMsg string
	}{
		{"valid", sampleForm{Lang: "fr"}, ""},
		{"missing", sampleForm{}, "Invalid target_lang: required field"},
		{"not allowed", sampleForm{Lang: "de"}, "Invalid target_lang: invalid value"},
		{"untagged field uses struct name", sampleForm{Lang: "en", Note: "long"}, "Invalid Note: too long"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateRequest(tc.form)
			if tc.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.wantMsg, ValidationMessage(err))
		})
	}
}

func TestValidationMessageFallback(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Validation error", ValidationMessage(errors.New("other")))
}
