package trip

import (
	"context"
	"time"

	"github.com/triptribe/backend/internal/domain"
)

// CountdownSnapshot is one tick of a trip countdown.
type CountdownSnapshot struct {
	Status    domain.TripStatus
	Remaining domain.TimeComponents
	Progress  float64
	At        time.Time
}

// snapshotOf derives the countdown state of a trip at a given instant.
func snapshotOf(t *domain.Trip, now time.Time) CountdownSnapshot {
	return CountdownSnapshot{
		Status:    t.Status(now),
		Remaining: t.Countdown(now),
		Progress:  t.Progress(now),
		At:        now,
	}
}

// CountdownTicker emits a countdown snapshot for the trip every period,
// starting with one immediately. The channel is closed when ctx is
// cancelled; the goroutine never outlives the context. A slow consumer
// delays ticks instead of losing them.
func CountdownTicker(ctx context.Context, t *domain.Trip, period time.Duration) <-chan CountdownSnapshot {
	out := make(chan CountdownSnapshot)

	go func() {
		defer close(out)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		send := func(now time.Time) bool {
			select {
			case out <- snapshotOf(t, now):
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(time.Now()) {
			return
		}

		for {
			select {
			case now := <-ticker.C:
				if !send(now) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
