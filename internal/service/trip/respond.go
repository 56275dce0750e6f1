package trip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/pkg/ctxutil"
)

// Respond records an accept or decline for a pending invitation. The caller
// must be the invited address. Responding to an invitation that is no
// longer pending returns ErrConflict.
//
// On accept the invited address is resolved to an account and added as a
// member participant. An invitation can be accepted by an address with no
// matching account: the status still flips to accepted and no participant
// is created. Decline never touches participants.
func (s *Service) Respond(ctx context.Context, tripID, invitationID uuid.UUID, accept bool) (*domain.Invitation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	caller, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("trip.Respond get caller: %w", err)
	}

	inv, err := s.trips.GetInvitation(ctx, tripID, invitationID)
	if err != nil {
		return nil, fmt.Errorf("trip.Respond: %w", err)
	}

	if domain.NormalizeEmail(caller.Email) != inv.Email {
		return nil, domain.ErrForbidden
	}
	if inv.Status != domain.InvitationPending {
		return nil, fmt.Errorf("trip.Respond invitation %s is %s: %w", inv.ID, inv.Status, domain.ErrConflict)
	}

	status := domain.InvitationDeclined
	if accept {
		status = domain.InvitationAccepted
	}

	var updated *domain.Invitation
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		updated, err = s.trips.UpdateInvitationStatus(txCtx, inv.ID, status)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		if !accept {
			return nil
		}

		invitee, err := s.users.GetByEmail(txCtx, inv.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// No account for the invited address: the invitation is
				// accepted but nobody joins the trip.
				s.log.WarnContext(txCtx, "invitation accepted without account",
					slog.String("invitation_id", inv.ID.String()))
				return nil
			}
			return fmt.Errorf("resolve invitee: %w", err)
		}

		err = s.trips.AddParticipant(txCtx, &domain.Participant{
			TripID:   tripID,
			UserID:   invitee.ID,
			Role:     domain.RoleMember,
			JoinedAt: time.Now(),
		})
		if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("add participant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("trip.Respond: %w", err)
	}

	s.log.InfoContext(ctx, "invitation responded",
		slog.String("invitation_id", inv.ID.String()),
		slog.String("status", status.String()))

	return updated, nil
}

// PendingInvitations returns the trips the authenticated user has open
// invitations to, resolved through the invitation email index.
func (s *Service) PendingInvitations(ctx context.Context) ([]domain.Trip, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	caller, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("trip.PendingInvitations get caller: %w", err)
	}

	invs, err := s.trips.ListPendingByEmail(ctx, domain.NormalizeEmail(caller.Email))
	if err != nil {
		return nil, fmt.Errorf("trip.PendingInvitations: %w", err)
	}

	result := make([]domain.Trip, 0, len(invs))
	for _, inv := range invs {
		t, err := s.trips.GetByID(ctx, inv.TripID)
		if err != nil {
			s.log.WarnContext(ctx, "skipping trip for pending invitation",
				slog.String("trip_id", inv.TripID.String()),
				slog.String("error", err.Error()))
			continue
		}
		result = append(result, *t)
	}

	return result, nil
}

// CancelInvitation hard-deletes an invitation. Only trip participants may
// cancel. There is no cancelled status; the row is simply gone.
func (s *Service) CancelInvitation(ctx context.Context, tripID, invitationID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if _, err := s.requireParticipant(ctx, tripID, userID); err != nil {
		return fmt.Errorf("trip.CancelInvitation: %w", err)
	}

	if err := s.trips.DeleteInvitation(ctx, tripID, invitationID); err != nil {
		return fmt.Errorf("trip.CancelInvitation: %w", err)
	}

	s.log.InfoContext(ctx, "invitation cancelled",
		slog.String("invitation_id", invitationID.String()))

	return nil
}
