package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/recite/internal/mocks"
	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/platform/resilience"
	"github.com/phrazzld/recite/internal/speech"
	"github.com/phrazzld/recite/internal/translation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("service unavailable")

func newBreaker(t *testing.T, maxFailures uint32, timeout time.Duration) (*resilience.Breaker, *logger.TestLogBuffer) {
	t.Helper()
	buf, log := logger.NewTestLogger(t)
	b := resilience.NewBreaker(resilience.Settings{
		Name:        "test",
		MaxFailures: maxFailures,
		OpenTimeout: timeout,
		Ignore: func(err error) bool {
			return errors.Is(err, translation.ErrEmptyText)
		},
	}, log)
	return b, buf
}

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	t.Parallel()

	b, buf := newBreaker(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		err := b.Execute(func() error { return errUnavailable })
		assert.ErrorIs(t, err, errUnavailable)
	}
	assert.Equal(t, "open", b.State())

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.False(t, called)
	logger.AssertLogContains(t, buf, "circuit breaker state changed")
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	t.Parallel()

	b, _ := newBreaker(t, 2, time.Minute)

	_ = b.Execute(func() error { return errUnavailable })
	require.NoError(t, b.Execute(func() error { return nil }))
	_ = b.Execute(func() error { return errUnavailable })

	assert.Equal(t, "closed", b.State())
}

func TestBreakerIgnoredErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	b, _ := newBreaker(t, 1, time.Minute)

	err := b.Execute(func() error { return translation.ErrEmptyText })
	assert.ErrorIs(t, err, translation.ErrEmptyText)

	err = b.Execute(func() error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, "closed", b.State())
}

func TestBreakerHalfOpensAfterTimeout(t *testing.T) {
	t.Parallel()

	b, _ := newBreaker(t, 1, 20*time.Millisecond)

	_ = b.Execute(func() error { return errUnavailable })
	require.Equal(t, "open", b.State())

	assert.Eventually(t, func() bool {
		return b.State() == "half-open"
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, "closed", b.State())
}

func TestTranslatorWrapper(t *testing.T) {
	t.Parallel()

	b, _ := newBreaker(t, 2, time.Minute)
	inner := &mocks.MockTranslator{Err: errUnavailable}
	tr := resilience.NewTranslator(inner, b)

	for i := 0; i < 2; i++ {
		_, err := tr.Translate(context.Background(), "hello", "fr")
		assert.ErrorIs(t, err, errUnavailable)
	}

	_, err := tr.Translate(context.Background(), "hello", "fr")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Len(t, inner.Calls(), 2)
}

func TestTranslatorWrapperPassesResult(t *testing.T) {
	t.Parallel()

	b, _ := newBreaker(t, 2, time.Minute)
	tr := resilience.NewTranslator(&mocks.MockTranslator{Translation: "bonjour"}, b)

	got, err := tr.Translate(context.Background(), "hello", "fr")
	require.NoError(t, err)
	assert.Equal(t, "bonjour", got)
}

func TestSynthesizerWrapper(t *testing.T) {
	t.Parallel()

	b, _ := newBreaker(t, 1, time.Minute)
	inner := &mocks.MockSynthesizer{Audio: &speech.Audio{Data: []byte("mp3")}}
	syn := resilience.NewSynthesizer(inner, b)

	audio, err := syn.Synthesize(context.Background(), "hello", "en")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), audio.Data)

	inner.Err = errUnavailable
	inner.Audio = nil
	_, err = syn.Synthesize(context.Background(), "hello", "en")
	assert.ErrorIs(t, err, errUnavailable)

	_, err = syn.Synthesize(context.Background(), "hello", "en")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Len(t, inner.Calls(), 2)
}
