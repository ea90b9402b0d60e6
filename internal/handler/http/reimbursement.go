package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ers-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ers-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ers-backend-go/internal/service/receipt"
	"github.com/go-chi/chi/v5"
)

type ReimbursementHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UploadReceipt(w http.ResponseWriter, r *http.Request)
	ServeReceipt(w http.ResponseWriter, r *http.Request)

	List(w http.ResponseWriter, r *http.Request)
	ListByAuthor(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)

	Delete(w http.ResponseWriter, r *http.Request)
}

type ReimbursementHandlerImpl struct {
	reimbursementService reimbursement.ReimbursementService
	userService          user.UserService
	receiptService       receipt.ReceiptService
}

func NewReimbursementHandler(reimbursementService reimbursement.ReimbursementService, userService user.UserService, receiptService receipt.ReceiptService) ReimbursementHandler {
	return &ReimbursementHandlerImpl{
		reimbursementService: reimbursementService,
		userService:          userService,
		receiptService:       receiptService,
	}
}

var reimbursementLookupParams = []string{"id", "receipt"}

type resolveRequest struct {
	Status reimbursement.Status `json:"status"`
}

type receiptResponse struct {
	Receipt string `json:"receipt"`
	URL     string `json:"url"`
}

// Create implements ReimbursementHandler. The caller is the author unless an
// admin submits on behalf of someone else.
func (h *ReimbursementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNoSession)
		return
	}

	var req reimbursement.CreateReimbursementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateReimbursement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	switch {
	case req.Author == 0:
		req.Author = principal.UserID
	case req.Author != principal.UserID && principal.Role != user.RoleAdmin:
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Receipt != nil {
		if err := h.receiptService.VerifyReceipt(r.Context(), req.Author, *req.Receipt); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	created, err := h.reimbursementService.AddNewReimbursement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Reimbursement submitted successfully", created)
}

// Mine implements ReimbursementHandler.
func (h *ReimbursementHandlerImpl) Mine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNoSession)
		return
	}

	reimbursements, err := h.reimbursementService.GetAllReimbursementsByUser(r.Context(), principal.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reimbursements)
}

// Get implements ReimbursementHandler.
func (h *ReimbursementHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, ok := h.loadAccessible(w, r, user.PermissionReimbursementViewAll)
	if !ok {
		return
	}

	response.Success(w, found)
}

// Update implements ReimbursementHandler. Only the author or a holder of
// reimbursement.edit_any may edit, and the body has to carry the stored
// values of every field except amount, description and type.
func (h *ReimbursementHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := h.loadAccessible(w, r, user.PermissionReimbursementEditAny)
	if !ok {
		return
	}

	var updated reimbursement.Reimbursement
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		slog.Error("UpdateReimbursement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updated.ID = current.ID

	if err := h.reimbursementService.UpdateReimbursement(r.Context(), updated); err != nil {
		response.HandleError(w, err)
		return
	}

	stored, err := h.reimbursementService.GetReimbursementByID(r.Context(), current.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reimbursement updated successfully", stored)
}

// UploadReceipt implements ReimbursementHandler. The returned reference is
// what Create accepts in the receipt field.
func (h *ReimbursementHandlerImpl) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNoSession)
		return
	}

	// Leave room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, receipt.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(receipt.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.HandleError(w, receipt.ErrReceiptTooLarge)
			return
		}
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		response.BadRequest(w, "Receipt file is required", map[string]string{"receipt": "receipt file is required"})
		return
	}
	defer file.Close()

	stored, err := h.receiptService.UploadReceipt(r.Context(), principal.UserID, file, header.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Receipt uploaded successfully", receiptResponse{
		Receipt: stored,
		URL:     h.receiptService.ReceiptURL(stored),
	})
}

// ServeReceipt implements ReimbursementHandler. A receipt file is served to
// its author and to callers allowed to view every reimbursement.
func (h *ReimbursementHandlerImpl) ServeReceipt(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNoSession)
		return
	}

	receiptPath := chi.URLParam(r, "*")
	owner, ok := receipt.OwnerOf(receiptPath)
	if !ok {
		response.HandleError(w, receipt.ErrReceiptNotFound)
		return
	}
	if owner != principal.UserID && !user.HasPermission(principal.Role, user.PermissionReimbursementViewAll) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	file, err := h.receiptService.OpenReceipt(r.Context(), receiptPath)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	if contentType := mime.TypeByExtension(path.Ext(receiptPath)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if seeker, ok := file.(io.ReadSeeker); ok {
		http.ServeContent(w, r, path.Base(receiptPath), time.Time{}, seeker)
		return
	}
	if _, err := io.Copy(w, file); err != nil {
		slog.Warn("Receipt write failed", "receipt", receiptPath, "error", err)
	}
}

// List implements ReimbursementHandler. A lookup query parameter narrows the
// result to a single reimbursement; author narrows it to one author's
// reimbursements by username.
func (h *ReimbursementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Has("author") {
		h.listByAuthorUsername(w, r, query.Get("author"))
		return
	}

	for _, field := range reimbursementLookupParams {
		if !query.Has(field) {
			continue
		}

		key, err := reimbursement.ParseLookupKey(field, query.Get(field))
		if err != nil {
			response.HandleError(w, err)
			return
		}

		found, err := h.reimbursementService.GetReimbursementByUniqueKey(r.Context(), key)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, found)
		return
	}

	reimbursements, err := h.reimbursementService.GetAllReimbursements(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reimbursements)
}

// ListByAuthor implements ReimbursementHandler.
func (h *ReimbursementHandlerImpl) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := parseID(r)
	if err != nil {
		response.HandleError(w, user.ErrInvalidID)
		return
	}

	reimbursements, err := h.reimbursementService.GetAllReimbursementsByUser(r.Context(), authorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reimbursements)
}

func (h *ReimbursementHandlerImpl) listByAuthorUsername(w http.ResponseWriter, r *http.Request, username string) {
	key, err := user.ParseLookupKey(string(user.LookupByUsername), username)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	author, err := h.userService.GetUserByUniqueKey(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reimbursements, err := h.reimbursementService.GetAllReimbursementsByUser(r.Context(), author.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reimbursements)
}

// Resolve implements ReimbursementHandler. The caller is recorded as the
// resolver.
func (h *ReimbursementHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNoSession)
		return
	}

	id, err := parseID(r)
	if err != nil {
		response.HandleError(w, reimbursement.ErrInvalidID)
		return
	}

	var body resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		slog.Error("ResolveReimbursement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req := reimbursement.ResolveReimbursementRequest{
		ID:       id,
		Resolver: principal.UserID,
		Status:   body.Status,
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resolved, err := h.reimbursementService.ResolveReimbursement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reimbursement resolved successfully", resolved)
}

// Delete implements ReimbursementHandler. The attached receipt file is removed
// once the record is gone.
func (h *ReimbursementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.HandleError(w, reimbursement.ErrInvalidID)
		return
	}

	current, err := h.reimbursementService.GetReimbursementByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.reimbursementService.DeleteByID(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	if current.Receipt != nil {
		if err := h.receiptService.DeleteReceipt(r.Context(), *current.Receipt); err != nil {
			slog.Warn("Receipt cleanup failed", "reimbursement_id", id, "receipt", *current.Receipt, "error", err)
		}
	}

	response.NoContent(w)
}

// loadAccessible fetches the {id} reimbursement and checks that the caller
// authored it or holds override.
func (h *ReimbursementHandlerImpl) loadAccessible(w http.ResponseWriter, r *http.Request, override user.Permission) (reimbursement.Reimbursement, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrNoSession)
		return reimbursement.Reimbursement{}, false
	}

	id, err := parseID(r)
	if err != nil {
		response.HandleError(w, reimbursement.ErrInvalidID)
		return reimbursement.Reimbursement{}, false
	}

	found, err := h.reimbursementService.GetReimbursementByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return reimbursement.Reimbursement{}, false
	}

	if found.Author != principal.UserID && !user.HasPermission(principal.Role, override) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return reimbursement.Reimbursement{}, false
	}

	return found, true
}
