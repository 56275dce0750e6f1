package trip

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/pkg/ctxutil"
)

// Get returns the full trip aggregate. The caller must be a participant.
func (s *Service) Get(ctx context.Context, tripID uuid.UUID) (*domain.Trip, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	t, err := s.requireParticipant(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("trip.Get: %w", err)
	}

	return t, nil
}

// ListForUser returns every trip the authenticated user participates in,
// sorted by start date descending. Trips are fetched concurrently; a trip
// that fails to load is logged and skipped so one bad record never hides
// the rest of the list.
func (s *Service) ListForUser(ctx context.Context) ([]domain.Trip, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	ids, err := s.trips.ListIDsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("trip.ListForUser: %w", err)
	}

	var (
		mu     sync.Mutex
		result = make([]domain.Trip, 0, len(ids))
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)

	for _, id := range ids {
		g.Go(func() error {
			t, err := s.trips.GetByID(gCtx, id)
			if err != nil {
				s.log.WarnContext(gCtx, "skipping unloadable trip",
					slog.String("trip_id", id.String()),
					slog.String("error", err.Error()))
				return nil
			}
			mu.Lock()
			result = append(result, *t)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait only propagates context cancellation.
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("trip.ListForUser: %w", err)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].StartDate.After(result[j].StartDate)
	})

	return result, nil
}
