package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ers-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
	authService auth.AuthService
}

func NewUserHandler(userService user.UserService, authService auth.AuthService) UserHandler {
	return &UserHandlerImpl{userService: userService, authService: authService}
}

// userLookupParams are the query parameters accepted as single-user lookups,
// checked in order.
var userLookupParams = []string{"id", "username", "email"}

// Register implements UserHandler.
func (h *UserHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	newUser, err := h.userService.AddNewUser(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User registered successfully", newUser)
}

// List implements UserHandler. A lookup query parameter narrows the result to
// a single user.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	for _, field := range userLookupParams {
		if !query.Has(field) {
			continue
		}

		key, err := user.ParseLookupKey(field, query.Get(field))
		if err != nil {
			response.HandleError(w, err)
			return
		}

		found, err := h.userService.GetUserByUniqueKey(r.Context(), key)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, found)
		return
	}

	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.HandleError(w, user.ErrInvalidID)
		return
	}

	found, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.HandleError(w, user.ErrInvalidID)
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.userService.UpdateUser(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", updated)
}

// Delete implements UserHandler. Sessions of the deleted user are revoked.
func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.HandleError(w, user.ErrInvalidID)
		return
	}

	if err := h.userService.DeleteByID(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.authService.RevokeUserSessions(r.Context(), id); err != nil {
		slog.Error("Revoke sessions of deleted user failed", "user_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

// parseID reads the {id} URL parameter.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
