package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/platform/logger"
)

// MaxCookieBytes is the largest cookie value CookieStore will emit. Browsers
// drop cookies above roughly 4KB including the name and attributes.
const MaxCookieBytes = 3800

const minSecretLength = 32

// sessionClaims embeds the session into the standard JWT claims.
type sessionClaims struct {
	Session *domain.Session `json:"session"`
	jwt.RegisteredClaims
}

// CookieStore implements Store by signing the whole session into an HS256
// JWT cookie.
type CookieStore struct {
	secret []byte
	opts   CookieOptions
	logger *slog.Logger
	now    func() time.Time
}

var _ Store = (*CookieStore)(nil)

// NewCookieStore creates a CookieStore. secret must be at least 32 bytes.
func NewCookieStore(secret string, opts CookieOptions, logger *slog.Logger) (*CookieStore, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d characters long", minSecretLength)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CookieStore{
		secret: []byte(secret),
		opts:   opts.withDefaults(),
		logger: logger.With(slog.String("component", "cookie_session_store")),
		now:    time.Now,
	}, nil
}

// Load implements Store.
func (s *CookieStore) Load(r *http.Request) (*domain.Session, error) {
	raw, err := s.opts.cookieValue(r)
	if err != nil {
		return nil, err
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Session == nil {
		logger.FromContextOrDefault(r.Context(), s.logger).Debug("rejected session cookie",
			slog.Any("error", err))
		return nil, ErrInvalidSession
	}

	sess := claims.Session
	if sess.Results == nil {
		sess.Results = make(map[int]domain.Result)
	}
	return sess, nil
}

// Save implements Store. A session is rejected with ErrSessionTooLarge
// unless it still fits once every sentence has a result, so a run accepted
// at the start can always be finished.
func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	now := s.now()
	projected, err := s.sign(sess.Completed(), now)
	if err != nil {
		return err
	}
	if len(projected) > MaxCookieBytes {
		logger.FromContextOrDefault(r.Context(), s.logger).Warn("session exceeds cookie size limit",
			slog.String("session_id", sess.ID),
			slog.Int("projected_bytes", len(projected)),
			slog.Int("limit_bytes", MaxCookieBytes))
		return fmt.Errorf("%w: %d bytes", ErrSessionTooLarge, len(projected))
	}

	signed, err := s.sign(sess, now)
	if err != nil {
		return err
	}

	http.SetCookie(w, s.opts.cookie(signed))
	return nil
}

func (s *CookieStore) sign(sess *domain.Session, now time.Time) (string, error) {
	claims := sessionClaims{
		Session: sess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.Lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}
