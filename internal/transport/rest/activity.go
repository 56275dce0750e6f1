package rest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/internal/service/activity"
)

// activityService defines the minimal interface needed by ActivityHandler.
type activityService interface {
	Create(ctx context.Context, input activity.Input) (*domain.Activity, error)
	Get(ctx context.Context, tripID, id uuid.UUID) (*domain.Activity, error)
	List(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, id uuid.UUID, input activity.Input) (*domain.Activity, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

// ActivityHandler serves activity REST endpoints nested under a trip.
type ActivityHandler struct {
	svc activityService
	log *slog.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc activityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: logger.With("handler", "activity")}
}

type activityRequest struct {
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	StartsAt        time.Time `json:"startsAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Category        string    `json:"category"`
	LinkURL         *string   `json:"linkUrl"`

	// Photo is base64-encoded image bytes, optional.
	Photo            string `json:"photo,omitempty"`
	PhotoContentType string `json:"photoContentType,omitempty"`
}

func (req activityRequest) toInput(tripID uuid.UUID) (activity.Input, error) {
	input := activity.Input{
		TripID:   tripID,
		Name:     req.Name,
		Location: req.Location,
		StartsAt: req.StartsAt,
		Duration: time.Duration(req.DurationMinutes) * time.Minute,
		Category: domain.ActivityCategory(req.Category),
		LinkURL:  req.LinkURL,
	}

	if req.Photo != "" {
		data, err := base64.StdEncoding.DecodeString(req.Photo)
		if err != nil {
			return activity.Input{}, domain.NewValidationError("photo", "invalid base64")
		}
		input.Photo = data
		input.PhotoContentType = req.PhotoContentType
	}

	return input, nil
}

// Create handles POST /trips/{tripID}/activities.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := req.toInput(tripID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toActivityResponse(a))
}

// List handles GET /trips/{tripID}/activities.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	activities, err := h.svc.List(r.Context(), tripID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]activityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, toActivityResponse(&activities[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /trips/{tripID}/activities/{activityID}.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	a, err := h.svc.Get(r.Context(), tripID, activityID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityResponse(a))
}

// Update handles PUT /trips/{tripID}/activities/{activityID}.
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := req.toInput(tripID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := h.svc.Update(r.Context(), activityID, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityResponse(a))
}

// Delete handles DELETE /trips/{tripID}/activities/{activityID}.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	activityID, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), tripID, activityID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
