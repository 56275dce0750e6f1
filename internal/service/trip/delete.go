package trip

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/pkg/ctxutil"
)

// Delete removes a trip and everything hanging off it. Only the creator may
// delete a trip.
//
// Dependent rows go first and the root last, inside one transaction. The
// ordering is deliberate even though the transaction makes it atomic: the
// participant index must never outlive an attempt to remove the root, so a
// store without multi-write atomicity would still never leak index entries
// pointing at a deleted trip.
func (s *Service) Delete(ctx context.Context, tripID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	t, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("trip.Delete: %w", err)
	}
	if t.CreatorID != userID {
		return domain.ErrForbidden
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.trips.DeleteParticipantsByTrip(txCtx, tripID); err != nil {
			return fmt.Errorf("delete participants: %w", err)
		}
		if err := s.trips.DeleteInvitationsByTrip(txCtx, tripID); err != nil {
			return fmt.Errorf("delete invitations: %w", err)
		}
		if err := s.activities.DeleteByTrip(txCtx, tripID); err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}
		if err := s.trips.Delete(txCtx, tripID); err != nil {
			return fmt.Errorf("delete trip: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("trip.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "trip deleted",
		slog.String("trip_id", tripID.String()),
		slog.String("user_id", userID.String()))

	return nil
}
