package translation_test

import (
	"testing"

	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/translation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetLanguageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{"en", "English"},
		{"fr", "French"},
		{"es", "Spanish"},
		{"zh-cn", "Simplified Chinese"},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			t.Parallel()
			got, err := translation.TargetLanguageName(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTargetLanguageNameUnsupported(t *testing.T) {
	t.Parallel()

	_, err := translation.TargetLanguageName("klingon")
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)

	_, err = translation.SystemInstruction("")
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestSystemInstructionNamesLanguage(t *testing.T) {
	t.Parallel()

	got, err := translation.SystemInstruction("zh-cn")
	require.NoError(t, err)
	assert.Contains(t, got, "Simplified Chinese")
	assert.Contains(t, got, "only the translation")
}
