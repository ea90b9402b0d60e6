package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ers-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	sessionTrackReq := auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	loginResp, err := a.authService.Login(r.Context(), loginReq, sessionTrackReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.SessionCookie(loginResp.Token, loginResp.ExpiresAt))
	response.SuccessWithMessage(w, "User logged in successfully", loginResp)
}

// Logout implements AuthHandler. It always clears the cookie, even when the
// session is already gone.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err == nil {
		if sessionID, _, err := a.jwtService.ParseSessionClaims(claims); err == nil {
			if err := a.authService.Logout(r.Context(), sessionID); err != nil {
				slog.Error("Logout service error", "error", err)
				response.HandleError(w, err)
				return
			}
		}
	}

	http.SetCookie(w, a.jwtService.ClearSessionCookie())
	response.NoContent(w)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNoSession)
		return
	}

	response.Success(w, principal)
}
