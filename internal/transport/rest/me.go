package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/internal/service/user"
)

// maxPhotoUpload caps the accepted photo body. The service enforces its
// own limit; this one just stops oversized bodies early.
const maxPhotoUpload = 6 << 20

// userService defines the minimal interface needed by MeHandler.
type userService interface {
	Get(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, input user.UpdateProfileInput) (*domain.User, error)
	UpdatePhoto(ctx context.Context, data []byte, contentType string) (*domain.User, error)
	DeleteAccount(ctx context.Context) error
}

// MeHandler serves the current user's profile endpoints.
type MeHandler struct {
	svc userService
	log *slog.Logger
}

// NewMeHandler creates a MeHandler.
func NewMeHandler(svc userService, logger *slog.Logger) *MeHandler {
	return &MeHandler{svc: svc, log: logger.With("handler", "me")}
}

type updateProfileRequest struct {
	DisplayName string  `json:"displayName"`
	PhoneNumber *string `json:"phoneNumber"`
}

// Get handles GET /me.
func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdateProfile handles PATCH /me.
func (h *MeHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), user.UpdateProfileInput{
		DisplayName: req.DisplayName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// UpdatePhoto handles PUT /me/photo. The body is the raw image.
func (h *MeHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPhotoUpload))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "photo too large")
		return
	}

	u, err := h.svc.UpdatePhoto(r.Context(), data, r.Header.Get("Content-Type"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /me.
func (h *MeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAccount(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
