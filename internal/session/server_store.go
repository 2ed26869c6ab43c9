package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/redact"
	"github.com/phrazzld/recite/internal/store"
)

// ServerStore implements Store by keeping sessions in a backend and putting
// only the session id into the cookie.
type ServerStore struct {
	backend store.SessionStore
	opts    CookieOptions
	logger  *slog.Logger
}

var _ Store = (*ServerStore)(nil)

// NewServerStore creates a ServerStore on backend.
func NewServerStore(backend store.SessionStore, opts CookieOptions, logger *slog.Logger) *ServerStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServerStore{
		backend: backend,
		opts:    opts.withDefaults(),
		logger:  logger.With(slog.String("component", "server_session_store")),
	}
}

// Load implements Store.
func (s *ServerStore) Load(r *http.Request) (*domain.Session, error) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, s.logger)

	id, err := s.opts.cookieValue(r)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		log.Debug("malformed session id in cookie")
		return nil, ErrInvalidSession
	}

	data, err := s.backend.Get(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Warn("discarding undecodable session",
			slog.String("session_id", id),
			slog.String("error", redact.Error(err)))
		return nil, ErrInvalidSession
	}
	sess.ID = id
	if sess.Results == nil {
		sess.Results = make(map[int]domain.Result)
	}
	return &sess, nil
}

// Save implements Store. Saving a fresh session drops the one the request
// previously pointed at.
func (s *ServerStore) Save(w http.ResponseWriter, r *http.Request, sess *domain.Session) error {
	fresh := false
	if _, err := uuid.Parse(sess.ID); err != nil {
		sess.ID = uuid.NewString()
		fresh = true
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.backend.Put(r.Context(), sess.ID, data, s.opts.Lifetime); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if fresh {
		s.discardPrevious(r, sess.ID)
	}

	http.SetCookie(w, s.opts.cookie(sess.ID))
	return nil
}

// discardPrevious deletes the session named by the request cookie unless it
// is current. Failures are logged and otherwise ignored; the entry expires
// on its own.
func (s *ServerStore) discardPrevious(r *http.Request, current string) {
	prev, err := s.opts.cookieValue(r)
	if err != nil || prev == current {
		return
	}
	if _, err := uuid.Parse(prev); err != nil {
		return
	}

	ctx := r.Context()
	if err := s.backend.Delete(ctx, prev); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to delete previous session",
			slog.String("session_id", prev),
			slog.String("error", redact.Error(err)))
	}
}
