package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/internal/service/trip"
)

// tripService defines the minimal interface needed by TripHandler.
type tripService interface {
	Create(ctx context.Context, input trip.CreateInput) (*domain.Trip, error)
	Get(ctx context.Context, tripID uuid.UUID) (*domain.Trip, error)
	ListForUser(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, input trip.UpdateInput) (*domain.Trip, error)
	Delete(ctx context.Context, tripID uuid.UUID) error
	Invite(ctx context.Context, input trip.InviteInput) ([]domain.Invitation, error)
	Respond(ctx context.Context, tripID, invitationID uuid.UUID, accept bool) (*domain.Invitation, error)
	PendingInvitations(ctx context.Context) ([]domain.Trip, error)
	CancelInvitation(ctx context.Context, tripID, invitationID uuid.UUID) error
}

// TripHandler serves trip and invitation REST endpoints.
type TripHandler struct {
	svc tripService
	log *slog.Logger
}

// NewTripHandler creates a TripHandler.
func NewTripHandler(svc tripService, logger *slog.Logger) *TripHandler {
	return &TripHandler{svc: svc, log: logger.With("handler", "trip")}
}

type tripRequest struct {
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Description *string   `json:"description"`
}

type inviteRequest struct {
	Emails  []string `json:"emails"`
	Message *string  `json:"message"`
}

// respondRequest requires an explicit accept value. Declining is
// irreversible, so a missing field must never read as a decline.
type respondRequest struct {
	Accept *bool `json:"accept"`
}

// Create handles POST /trips.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Create(r.Context(), trip.CreateInput{
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTripResponse(t))
}

// List handles GET /trips.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.svc.ListForUser(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponses(trips))
}

// Get handles GET /trips/{tripID}.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	t, err := h.svc.Get(r.Context(), tripID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(t))
}

// Update handles PUT /trips/{tripID}.
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.Update(r.Context(), trip.UpdateInput{
		TripID:      tripID,
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(t))
}

// Delete handles DELETE /trips/{tripID}.
func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), tripID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Invite handles POST /trips/{tripID}/invitations.
func (h *TripHandler) Invite(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invitations, err := h.svc.Invite(r.Context(), trip.InviteInput{
		TripID:  tripID,
		Emails:  req.Emails,
		Message: req.Message,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]invitationResponse, 0, len(invitations))
	for i := range invitations {
		out = append(out, toInvitationResponse(&invitations[i]))
	}
	writeJSON(w, http.StatusCreated, out)
}

// Respond handles POST /trips/{tripID}/invitations/{invitationID}/respond.
func (h *TripHandler) Respond(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	invitationID, ok := pathUUID(w, r, "invitationID")
	if !ok {
		return
	}

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Accept == nil {
		handleError(h.log, w, r, domain.NewValidationError("accept", "required"))
		return
	}

	inv, err := h.svc.Respond(r.Context(), tripID, invitationID, *req.Accept)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvitationResponse(inv))
}

// Pending handles GET /invitations: trips holding a pending invitation for
// the current user's email.
func (h *TripHandler) Pending(w http.ResponseWriter, r *http.Request) {
	trips, err := h.svc.PendingInvitations(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponses(trips))
}

// CancelInvitation handles DELETE /trips/{tripID}/invitations/{invitationID}.
func (h *TripHandler) CancelInvitation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	invitationID, ok := pathUUID(w, r, "invitationID")
	if !ok {
		return
	}

	if err := h.svc.CancelInvitation(r.Context(), tripID, invitationID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses a chi URL parameter as a UUID, answering 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
