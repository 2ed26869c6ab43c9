package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/phrazzld/recite/internal/domain"
)

var (
	// ErrNotFound is returned by Load when the request carries no usable session.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidSession is returned when the session cookie cannot be trusted
	// or decoded. It wraps ErrNotFound.
	ErrInvalidSession = fmt.Errorf("%w: invalid session cookie", ErrNotFound)

	// ErrSessionTooLarge is returned when a session does not fit in a cookie.
	ErrSessionTooLarge = errors.New("session too large for cookie storage")
)

// Store loads and saves the session of the current request.
type Store interface {
	// Load returns the session for r, or ErrNotFound.
	Load(r *http.Request) (*domain.Session, error)

	// Save writes s and sets the session cookie on w. A session without an
	// ID is given a new one.
	Save(w http.ResponseWriter, r *http.Request, s *domain.Session) error
}

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name     string
	Lifetime time.Duration
	Secure   bool
}

// DefaultCookieOptions returns the options used when none are configured.
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{Name: "recite", Lifetime: 24 * time.Hour}
}

func (o CookieOptions) withDefaults() CookieOptions {
	d := DefaultCookieOptions()
	if o.Name == "" {
		o.Name = d.Name
	}
	if o.Lifetime <= 0 {
		o.Lifetime = d.Lifetime
	}
	return o
}

func (o CookieOptions) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     o.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(o.Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// cookieValue returns the session cookie value of r, or ErrNotFound.
func (o CookieOptions) cookieValue(r *http.Request) (string, error) {
	c, err := r.Cookie(o.Name)
	if err != nil || c.Value == "" {
		return "", ErrNotFound
	}
	return c.Value, nil
}
