// Package trip implements the trip lifecycle: creation, membership,
// invitations and schedule-derived state.
package trip

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
)

// tripRepo defines the trip repository interface needed by the trip service.
type tripRepo interface {
	Create(ctx context.Context, t *domain.Trip) (*domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	ListIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, t *domain.Trip) (*domain.Trip, error)
	Touch(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddParticipant(ctx context.Context, p *domain.Participant) error
	DeleteParticipantsByTrip(ctx context.Context, tripID uuid.UUID) error

	UpsertInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error)
	GetInvitation(ctx context.Context, tripID, invitationID uuid.UUID) (*domain.Invitation, error)
	UpdateInvitationStatus(ctx context.Context, id uuid.UUID, status domain.InvitationStatus) (*domain.Invitation, error)
	DeleteInvitation(ctx context.Context, tripID, invitationID uuid.UUID) error
	DeleteInvitationsByTrip(ctx context.Context, tripID uuid.UUID) error
	ListPendingByEmail(ctx context.Context, email string) ([]domain.Invitation, error)
}

// activityRepo defines the activity repository interface needed by the trip service.
type activityRepo interface {
	DeleteByTrip(ctx context.Context, tripID uuid.UUID) error
}

// userRepo defines the user repository interface needed by the trip service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// txManager defines the transaction manager interface needed by the trip service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// listConcurrency bounds the per-trip fan-out in ListForUser.
const listConcurrency = 8

// Service implements trip lifecycle operations.
type Service struct {
	log        *slog.Logger
	trips      tripRepo
	activities activityRepo
	users      userRepo
	tx         txManager
}

// NewService creates a new trip service instance.
func NewService(
	logger *slog.Logger,
	trips tripRepo,
	activities activityRepo,
	users userRepo,
	tx txManager,
) *Service {
	return &Service{
		log:        logger.With("service", "trip"),
		trips:      trips,
		activities: activities,
		users:      users,
		tx:         tx,
	}
}

// requireParticipant loads the trip and verifies the user belongs to it.
// Returns ErrForbidden for non-participants.
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
