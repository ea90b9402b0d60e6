package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

// LoginRecorder counts login outcomes. *metrics.Metrics satisfies it.
type LoginRecorder interface {
	LoginAttempt(result string)
}

type AuthServiceImpl struct {
	user.UserService
	auth.SessionStore
	jwt.Service
	recorder LoginRecorder
}

func NewAuthService(userService user.UserService, sessionStore auth.SessionStore, jwtService jwt.Service, recorder LoginRecorder) auth.AuthService {
	return &AuthServiceImpl{
		UserService:  userService,
		SessionStore: sessionStore,
		Service:      jwtService,
		recorder:     recorder,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	userData, err := a.UserService.AuthenticateUser(ctx, loginReq.Username, loginReq.Password)
	if err != nil {
		if errors.Is(err, apperror.ErrAuthentication) {
			a.record("failure")
			slog.Warn("Login failed", "username", loginReq.Username, "ip", sessionTrackReq.IPAddress)
		}
		return auth.LoginResponse{}, err
	}

	principal := auth.Principal{
		UserID:   userData.ID,
		Username: userData.Username,
		Role:     userData.Role,
	}
	sessionID := uuid.NewString()

	token, expiresAt, err := a.Service.GenerateSessionToken(sessionID, principal)
	if err != nil {
		return auth.LoginResponse{}, apperror.Internal("Unable to create session", fmt.Errorf("sign session token: %w", err))
	}

	err = a.SessionStore.Create(ctx, auth.Session{
		ID:        sessionID,
		Principal: principal,
		UserAgent: sessionTrackReq.UserAgent,
		IPAddress: sessionTrackReq.IPAddress,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	a.record("success")
	slog.Info("User logged in", "user_id", userData.ID, "username", userData.Username)

	return auth.LoginResponse{
		User:      userData,
		SessionID: sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout implements auth.AuthService. Deleting an unknown session is not an
// error.
func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return a.SessionStore.Delete(ctx, sessionID)
}

// Session implements auth.AuthService.
func (a *AuthServiceImpl) Session(ctx context.Context, sessionID string) (auth.Session, error) {
	if sessionID == "" {
		return auth.Session{}, auth.ErrNoSession
	}
	return a.SessionStore.Get(ctx, sessionID)
}

// RevokeUserSessions implements auth.AuthService.
func (a *AuthServiceImpl) RevokeUserSessions(ctx context.Context, userID int64) error {
	if err := a.SessionStore.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	slog.Info("User sessions revoked", "user_id", userID)
	return nil
}

func (a *AuthServiceImpl) record(result string) {
	if a.recorder != nil {
		a.recorder.LoginAttempt(result)
	}
}
