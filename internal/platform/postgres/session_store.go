package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/store"
)

// SessionStore implements store.SessionStore on the practice_sessions table.
// It runs on a *sql.DB or inside a caller's *sql.Tx.
type SessionStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore. If logger is nil, a default
// logger is used.
func NewSessionStore(db store.DBTX, logger *slog.Logger) *SessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
		now:    time.Now,
	}
}

const (
	getSessionQuery = `
		SELECT data
		FROM practice_sessions
		WHERE id = $1 AND expires_at > $2
	`
	purgeExpiredQuery = `
		DELETE FROM practice_sessions
		WHERE expires_at <= $1
	`
	upsertSessionQuery = `
		INSERT INTO practice_sessions (id, data, expires_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at
	`
	deleteSessionQuery = `
		DELETE FROM practice_sessions
		WHERE id = $1
	`
)

// Get implements store.SessionStore.
func (s *SessionStore) Get(ctx context.Context, id string) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var data []byte
	err := s.db.QueryRowContext(ctx, getSessionQuery, id, s.now().UTC()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found", slog.String("session_id", id))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session",
			slog.String("error", err.Error()),
			slog.String("session_id", id))
		return nil, store.NewStoreError("session", "get", "query failed", MapError(err))
	}
	return data, nil
}

// Put implements store.SessionStore. Expired rows are purged in the same
// transaction as the write.
func (s *SessionStore) Put(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now().UTC()

	write := func(ctx context.Context, q store.DBTX) error {
		res, err := q.ExecContext(ctx, purgeExpiredQuery, now)
		if err != nil {
			return store.NewStoreError("session", "purge", "delete expired failed", MapError(err))
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			log.Debug("purged expired sessions", slog.Int64("count", n))
		}

		if _, err := q.ExecContext(ctx, upsertSessionQuery, id, string(data), now.Add(ttl), now); err != nil {
			return store.NewStoreError("session", "put", "upsert failed", MapError(err))
		}
		return nil
	}

	var err error
	if db, ok := s.db.(*sql.DB); ok {
		err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return write(ctx, tx)
		})
	} else {
		err = write(ctx, s.db)
	}
	if err != nil {
		log.Error("failed to save session",
			slog.String("error", err.Error()),
			slog.String("session_id", id))
		return err
	}
	return nil
}

// Delete implements store.SessionStore.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, deleteSessionQuery, id); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete session",
			slog.String("error", err.Error()),
			slog.String("session_id", id))
		return store.NewStoreError("session", "delete", "delete failed", MapError(err))
	}
	return nil
}
