package auth

import "github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"

var (
	ErrNoSession       = apperror.Authentication("No login detected. Please login.")
	ErrInvalidToken    = apperror.Authentication("Invalid or expired session")
	ErrSessionNotFound = apperror.Authentication("Session not found or expired")
	ErrTooManyAttempts = apperror.TooManyRequests("Too many login attempts, try again later")
)
