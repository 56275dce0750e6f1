package trip

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/pkg/ctxutil"
)

// Update replaces the mutable fields of a trip. The caller must be a
// participant. Concurrent updates are last-writer-wins: there is no version
// token, the second write silently overwrites the first.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Trip, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Destination = strings.TrimSpace(input.Destination)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.requireParticipant(ctx, input.TripID, userID)
	if err != nil {
		return nil, fmt.Errorf("trip.Update: %w", err)
	}

	updated, err := s.trips.Update(ctx, &domain.Trip{
		ID:          current.ID,
		CreatorID:   current.CreatorID,
		Name:        input.Name,
		Destination: input.Destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("trip.Update: %w", err)
	}

	updated.Participants = current.Participants
	updated.Invitations = current.Invitations

	return updated, nil
}
