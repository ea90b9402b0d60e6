package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Session(ctx context.Context, sessionID string) (Session, error)
	RevokeUserSessions(ctx context.Context, userID int64) error
}

// SessionStore keeps sessions server-side so a signed cookie can be revoked.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID int64) error
}
