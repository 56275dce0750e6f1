package trip

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/pkg/ctxutil"
)

// Invite writes a fresh pending invitation for each address. Re-inviting an
// address replaces its previous invitation (any status) with a new pending
// one. The whole batch is one transaction: either every address is invited
// or none is. Writing the rows is the delivery mechanism; there is no mail
// sender.
func (s *Service) Invite(ctx context.Context, input InviteInput) ([]domain.Invitation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	// Normalize and de-duplicate addresses before validation.
	input.Emails = normalizeEmails(input.Emails)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.requireParticipant(ctx, input.TripID, userID); err != nil {
		return nil, fmt.Errorf("trip.Invite: %w", err)
	}

	now := time.Now()
	result := make([]domain.Invitation, 0, len(input.Emails))

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, email := range input.Emails {
			inv, err := s.trips.UpsertInvitation(txCtx, &domain.Invitation{
				ID:        uuid.New(),
				TripID:    input.TripID,
				Email:     email,
				Status:    domain.InvitationPending,
				Message:   input.Message,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return fmt.Errorf("invite %s: %w", email, err)
			}
			result = append(result, *inv)
		}
		return s.trips.Touch(txCtx, input.TripID)
	})
	if err != nil {
		return nil, fmt.Errorf("trip.Invite: %w", err)
	}

	s.log.InfoContext(ctx, "invitations sent",
		slog.String("trip_id", input.TripID.String()),
		slog.Int("count", len(result)))

	return result, nil
}

// normalizeEmails lowercases, trims and de-duplicates while preserving the
// first occurrence order.
func normalizeEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		n := domain.NormalizeEmail(e)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
