package trip

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/pkg/ctxutil"
)

// Create makes a new trip with the authenticated user as its creator.
// The trip root and the creator's participant row are written in one
// transaction; a trip can never exist without its creator membership.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Trip, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	// Normalize input before validation.
	input.Name = strings.TrimSpace(input.Name)
	input.Destination = strings.TrimSpace(input.Destination)

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Insert trip + creator participant atomically
	now := time.Now()
	newTrip := &domain.Trip{
		ID:          uuid.New(),
		CreatorID:   userID,
		Name:        input.Name,
		Destination: input.Destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	creator := domain.Participant{
		TripID:   newTrip.ID,
		UserID:   userID,
		Role:     domain.RoleCreator,
		JoinedAt: now,
	}

	var created *domain.Trip
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := s.trips.Create(txCtx, newTrip)
		if err != nil {
			return fmt.Errorf("create trip: %w", err)
		}
		if err := s.trips.AddParticipant(txCtx, &creator); err != nil {
			return fmt.Errorf("add creator participant: %w", err)
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("trip.Create: %w", err)
	}

	created.Participants = []domain.Participant{creator}
	created.Invitations = []domain.Invitation{}

	s.log.InfoContext(ctx, "trip created",
		slog.String("trip_id", created.ID.String()),
		slog.String("user_id", userID.String()))

	return created, nil
}
