// Package activity implements CRUD for scheduled activities within a trip.
package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/adapter/blob"
	"github.com/triptribe/backend/internal/domain"
)

// activityRepo defines the activity repository interface needed by the service.
type activityRepo interface {
	Create(ctx context.Context, a *domain.Activity) (*domain.Activity, error)
	Get(ctx context.Context, tripID, id uuid.UUID) (*domain.Activity, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) (*domain.Activity, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

// tripRepo defines the trip repository interface needed by the service.
type tripRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
}

// Service implements activity operations.
type Service struct {
	log        *slog.Logger
	activities activityRepo
	trips      tripRepo
	blobs      blob.Store
}

// NewService creates a new activity service instance.
func NewService(logger *slog.Logger, activities activityRepo, trips tripRepo, blobs blob.Store) *Service {
	return &Service{
		log:        logger.With("service", "activity"),
		activities: activities,
		trips:      trips,
		blobs:      blobs,
	}
}

// requireParticipant loads the trip and verifies the user belongs to it.
func (s *Service) requireParticipant(ctx context.Context, tripID, userID uuid.UUID) (*domain.Trip, error) {
	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !t.HasParticipant(userID) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

// validateSchedule checks the activity against the trip's date window:
// it must start within the trip and finish by the trip's end.
func validateSchedule(t *domain.Trip, startsAt time.Time, duration time.Duration) []domain.FieldError {
	var errs []domain.FieldError

	if duration < domain.MinActivityDuration {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "must be at least 15 minutes"})
	}
	if startsAt.Before(t.StartDate) || startsAt.After(t.EndDate) {
		errs = append(errs, domain.FieldError{Field: "starts_at", Message: "must fall within the trip dates"})
	} else if startsAt.Add(duration).After(t.EndDate) {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "activity must end before the trip does"})
	}

	return errs
}
