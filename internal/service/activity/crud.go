package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/adapter/blob"
	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/pkg/ctxutil"
)

// Create adds a scheduled activity to a trip. The caller must be a
// participant; the slot must fit inside the trip's date window.
func (s *Service) Create(ctx context.Context, input Input) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	t, err := s.requireParticipant(ctx, input.TripID, userID)
	if err != nil {
		return nil, fmt.Errorf("activity.Create: %w", err)
	}

	if errs := validateSchedule(t, input.StartsAt, input.Duration); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	now := time.Now()
	a := &domain.Activity{
		ID:        uuid.New(),
		TripID:    input.TripID,
		CreatorID: userID,
		Name:      input.Name,
		Location:  input.Location,
		StartsAt:  input.StartsAt,
		Duration:  input.Duration,
		Category:  input.Category,
		LinkURL:   input.LinkURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if len(input.Photo) > 0 {
		url, err := s.blobs.Upload(ctx,
			blob.ActivityPhotoKey(a.TripID.String(), a.ID.String()),
			input.Photo, input.PhotoContentType)
		if err != nil {
			return nil, fmt.Errorf("activity.Create upload photo: %w", err)
		}
		a.PhotoURL = &url
	}

	created, err := s.activities.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("activity.Create: %w", err)
	}

	s.log.InfoContext(ctx, "activity created",
		slog.String("activity_id", created.ID.String()),
		slog.String("trip_id", created.TripID.String()))

	return created, nil
}

// Get returns one activity. The caller must be a trip participant.
func (s *Service) Get(ctx context.Context, tripID, id uuid.UUID) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.requireParticipant(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("activity.Get: %w", err)
	}

	a, err := s.activities.Get(ctx, tripID, id)
	if err != nil {
		return nil, fmt.Errorf("activity.Get: %w", err)
	}

	return a, nil
}

// List returns a trip's activities sorted by start time ascending.
func (s *Service) List(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.requireParticipant(ctx, tripID, userID); err != nil {
		return nil, fmt.Errorf("activity.List: %w", err)
	}

	list, err := s.activities.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("activity.List: %w", err)
	}

	return list, nil
}

// Update replaces the mutable fields of an activity. A new photo replaces
// the stored blob under the same key. Last write wins.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*domain.Activity, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	t, err := s.requireParticipant(ctx, input.TripID, userID)
	if err != nil {
		return nil, fmt.Errorf("activity.Update: %w", err)
	}

	if errs := validateSchedule(t, input.StartsAt, input.Duration); len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	current, err := s.activities.Get(ctx, input.TripID, id)
	if err != nil {
		return nil, fmt.Errorf("activity.Update: %w", err)
	}

	next := &domain.Activity{
		ID:        current.ID,
		TripID:    current.TripID,
		CreatorID: current.CreatorID,
		Name:      input.Name,
		Location:  input.Location,
		StartsAt:  input.StartsAt,
		Duration:  input.Duration,
		Category:  input.Category,
		PhotoURL:  current.PhotoURL,
		LinkURL:   input.LinkURL,
		UpdatedAt: time.Now(),
	}

	if len(input.Photo) > 0 {
		url, err := s.blobs.Upload(ctx,
			blob.ActivityPhotoKey(next.TripID.String(), next.ID.String()),
			input.Photo, input.PhotoContentType)
		if err != nil {
			return nil, fmt.Errorf("activity.Update upload photo: %w", err)
		}
		next.PhotoURL = &url
	}

	updated, err := s.activities.Update(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("activity.Update: %w", err)
	}

	return updated, nil
}

// Delete removes an activity, then best-effort deletes its photo blob.
// Blob deletion failure is logged, never propagated: the row is already
// gone and a retry would not bring it back.
func (s *Service) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if _, err := s.requireParticipant(ctx, tripID, userID); err != nil {
		return fmt.Errorf("activity.Delete: %w", err)
	}

	a, err := s.activities.Get(ctx, tripID, id)
	if err != nil {
		return fmt.Errorf("activity.Delete: %w", err)
	}

	if err := s.activities.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("activity.Delete: %w", err)
	}

	if a.PhotoURL != nil {
		key := blob.ActivityPhotoKey(tripID.String(), id.String())
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.log.WarnContext(ctx, "delete activity photo blob failed",
				slog.String("activity_id", id.String()),
				slog.String("error", err.Error()))
		}
	}

	s.log.InfoContext(ctx, "activity deleted",
		slog.String("activity_id", id.String()),
		slog.String("trip_id", tripID.String()))

	return nil
}
