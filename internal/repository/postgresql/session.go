package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// SessionRepository is the PostgreSQL auth.SessionStore. Session ids are
// stored hashed.
type SessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// hashSessionID hashes the input string using SHA256 and encodes the result in base64.
func hashSessionID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// Create implements auth.SessionStore.
func (s *SessionRepository) Create(ctx context.Context, session auth.Session) error {
	query := `
		INSERT INTO sessions (id_hash, user_id, username, role, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := GetQuerier(ctx, s.db).Exec(ctx, query,
		hashSessionID(session.ID),
		session.Principal.UserID,
		session.Principal.Username,
		string(session.Principal.Role),
		session.UserAgent,
		session.IPAddress,
		time.Unix(session.ExpiresAt, 0).UTC(),
	)
	if err != nil {
		return apperror.Internal("Unable to create session", err)
	}
	return nil
}

// Get implements auth.SessionStore. Expired sessions are reported as missing.
func (s *SessionRepository) Get(ctx context.Context, sessionID string) (auth.Session, error) {
	query := `
		SELECT user_id, username, role, user_agent, ip_address, expires_at
		FROM sessions
		WHERE id_hash = $1 AND expires_at > NOW()
	`

	var (
		session   = auth.Session{ID: sessionID}
		role      string
		expiresAt time.Time
	)
	err := GetQuerier(ctx, s.db).QueryRow(ctx, query, hashSessionID(sessionID)).Scan(
		&session.Principal.UserID,
		&session.Principal.Username,
		&role,
		&session.UserAgent,
		&session.IPAddress,
		&expiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, apperror.Internal("Unable to get session", err)
	}

	session.Principal.Role = user.Role(role)
	session.ExpiresAt = expiresAt.Unix()
	return session, nil
}

// Delete implements auth.SessionStore.
func (s *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := GetQuerier(ctx, s.db).Exec(ctx, `DELETE FROM sessions WHERE id_hash = $1`, hashSessionID(sessionID)); err != nil {
		return apperror.Internal("Unable to delete session", err)
	}
	return nil
}

// DeleteByUser implements auth.SessionStore.
func (s *SessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := GetQuerier(ctx, s.db).Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return apperror.Internal("Unable to revoke sessions", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry and returns how many were
// removed.
func (s *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := GetQuerier(ctx, s.db).Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, apperror.Internal("Unable to purge sessions", err)
	}
	return tag.RowsAffected(), nil
}
