package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// SessionCookieName is the HttpOnly cookie carrying the session token.
const SessionCookieName = "ers_session"

const tokenTypeSession = "session"

type Service interface {
	GenerateSessionToken(sessionID string, principal auth.Principal) (token string, expiresAt int64, err error)
	ParseSessionClaims(claims map[string]interface{}) (sessionID string, principal auth.Principal, err error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt int64) *http.Cookie
	ClearSessionCookie() *http.Cookie
	TTL() time.Duration
}

type JWTService struct {
	ttl          time.Duration
	secureCookie bool
	tokenAuth    *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, ttl time.Duration, secureCookie bool) Service {
	return &JWTService{
		ttl:          ttl,
		secureCookie: secureCookie,
		tokenAuth:    jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) TTL() time.Duration {
	return j.ttl
}

func (j *JWTService) GenerateSessionToken(sessionID string, principal auth.Principal) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.ttl).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sid":      sessionID,
		"user_id":  principal.UserID,
		"username": principal.Username,
		"role":     string(principal.Role),
		"type":     tokenTypeSession,
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

// ParseSessionClaims reads the claims of a verified session token.
func (j *JWTService) ParseSessionClaims(claims map[string]interface{}) (string, auth.Principal, error) {
	if t, _ := claims["type"].(string); t != tokenTypeSession {
		return "", auth.Principal{}, errors.New("not a session token")
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", auth.Principal{}, errors.New("missing sid claim")
	}

	userID, err := int64Claim(claims["user_id"])
	if err != nil {
		return "", auth.Principal{}, err
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return sid, auth.Principal{UserID: userID, Username: username, Role: user.Role(role)}, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// TokenFromSessionCookie is a jwtauth token finder for the session cookie.
func TokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// JSON numbers decode as float64; tokens built in-process keep int64.
func int64Claim(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("invalid user_id claim %v", v)
	}
}
