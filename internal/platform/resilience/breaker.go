// Package resilience wraps calls to external services in circuit breakers
// built on github.com/sony/gobreaker.
package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned when the circuit breaker is open and rejecting calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Settings configures a Breaker.
type Settings struct {
	// Name identifies the breaker in logs.
	Name string
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial call.
	OpenTimeout time.Duration
	// Ignore reports errors that say nothing about the health of the service,
	// such as invalid input. They are returned but do not count as failures.
	Ignore func(err error) bool
}

// Breaker guards calls to one external service.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewBreaker creates a Breaker that opens after s.MaxFailures consecutive
// failures and half-opens after s.OpenTimeout.
func NewBreaker(s Settings, logger *slog.Logger) *Breaker {
	if logger == nil {
		logger = slog.Default()
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = 1
	}
	log := logger.With(slog.String("component", "circuit_breaker"), slog.String("breaker", s.Name))

	ignore := s.Ignore
	return &Breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= s.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if errors.Is(err, context.Canceled) {
				return true
			}
			return ignore != nil && ignore(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			level := slog.LevelInfo
			if to == gobreaker.StateOpen {
				level = slog.LevelWarn
			}
			log.Log(context.Background(), level, "circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})}
}

// Execute runs fn unless the circuit is open.
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}

// State returns the breaker state as "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return b.cb.State().String()
}
