package speech_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/recite/internal/mocks"
	"github.com/phrazzld/recite/internal/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, det *mocks.MockDetector, syn *mocks.MockSynthesizer) *speech.Service {
	t.Helper()
	svc, err := speech.NewService(det, syn, "en", nil)
	require.NoError(t, err)
	return svc
}

func TestNewServiceValidation(t *testing.T) {
	t.Parallel()

	_, err := speech.NewService(nil, &mocks.MockSynthesizer{}, "en", nil)
	assert.Error(t, err)
	_, err = speech.NewService(&mocks.MockDetector{}, nil, "en", nil)
	assert.Error(t, err)
	_, err = speech.NewService(&mocks.MockDetector{}, &mocks.MockSynthesizer{}, "", nil)
	assert.Error(t, err)
}

func TestSpeak(t *testing.T) {
	t.Parallel()

	mp3 := []byte("ID3\x03mp3-bytes")

	t.Run("uses detected language", func(t *testing.T) {
		t.Parallel()

		det := &mocks.MockDetector{Language: "fr"}
		syn := &mocks.MockSynthesizer{Audio: &speech.Audio{Data: mp3}}

		audio, err := newService(t, det, syn).Speak(context.Background(), "Le chat dort.")

		require.NoError(t, err)
		assert.Equal(t, mp3, audio.Data)
		assert.Equal(t, speech.ContentTypeMPEG, audio.ContentType)
		assert.Equal(t, []string{"Le chat dort."}, det.Texts())
		assert.Equal(t, []mocks.SynthesizeCall{{Text: "Le chat dort.", Lang: "fr"}}, syn.Calls())
	})

	t.Run("falls back when detection fails", func(t *testing.T) {
		t.Parallel()

		det := &mocks.MockDetector{Err: speech.ErrDetectionFailed}
		syn := &mocks.MockSynthesizer{Audio: &speech.Audio{Data: mp3, ContentType: "audio/mpeg"}}

		_, err := newService(t, det, syn).Speak(context.Background(), "??")

		require.NoError(t, err)
		require.Len(t, syn.Calls(), 1)
		assert.Equal(t, "en", syn.Calls()[0].Lang)
	})

	t.Run("falls back when detector returns nothing", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, &mocks.MockDetector{}, &mocks.MockSynthesizer{})
		assert.Equal(t, "en", svc.DetectLanguage(context.Background(), "x"))
	})

	t.Run("empty text is rejected before any call", func(t *testing.T) {
		t.Parallel()

		det := &mocks.MockDetector{Language: "en"}
		syn := &mocks.MockSynthesizer{}

		_, err := newService(t, det, syn).Speak(context.Background(), "  \n")

		assert.ErrorIs(t, err, speech.ErrEmptyText)
		assert.Empty(t, det.Texts())
		assert.Empty(t, syn.Calls())
	})

	t.Run("synthesis failure is wrapped", func(t *testing.T) {
		t.Parallel()

		upstream := errors.New("429 too many requests")
		syn := &mocks.MockSynthesizer{Err: upstream}

		_, err := newService(t, &mocks.MockDetector{Language: "en"}, syn).Speak(context.Background(), "hello")

		assert.ErrorIs(t, err, speech.ErrSynthesisFailed)
		assert.ErrorIs(t, err, upstream)
	})

	t.Run("empty audio is an error", func(t *testing.T) {
		t.Parallel()

		syn := &mocks.MockSynthesizer{Audio: &speech.Audio{}}

		_, err := newService(t, &mocks.MockDetector{Language: "en"}, syn).Speak(context.Background(), "hello")

		assert.ErrorIs(t, err, speech.ErrNoAudio)
	})

	t.Run("every call synthesizes again", func(t *testing.T) {
		t.Parallel()

		syn := &mocks.MockSynthesizer{Audio: &speech.Audio{Data: mp3}}
		svc := newService(t, &mocks.MockDetector{Language: "en"}, syn)

		for i := 0; i < 3; i++ {
			_, err := svc.Speak(context.Background(), "same text")
			require.NoError(t, err)
		}
		assert.Len(t, syn.Calls(), 3)
	})
}
