package domain

import "time"

// TripStatus is derived from wall-clock time, never stored.
type TripStatus string

const (
	TripUpcoming  TripStatus = "upcoming"
	TripOngoing   TripStatus = "ongoing"
	TripCompleted TripStatus = "completed"
)

func (s TripStatus) String() string { return string(s) }

// Status derives the trip state at the given instant. A trip is ongoing on
// both boundary instants: startDate <= now <= endDate.
func (t *Trip) Status(now time.Time) TripStatus {
	switch {
	case now.Before(t.StartDate):
		return TripUpcoming
	case now.After(t.EndDate):
		return TripCompleted
	default:
		return TripOngoing
	}
}

// Progress returns the elapsed fraction of the trip at the given instant,
// clamped to [0, 1]. Before the start it is 0, after the end it is 1.
// A zero-length trip is considered fully elapsed once it has started.
func (t *Trip) Progress(now time.Time) float64 {
	if now.Before(t.StartDate) {
		return 0
	}
	if now.After(t.EndDate) {
		return 1
	}
	total := t.EndDate.Sub(t.StartDate)
	if total <= 0 {
		return 1
	}
	frac := float64(now.Sub(t.StartDate)) / float64(total)
	return min(max(frac, 0), 1)
}

// TimeComponents is a countdown broken into whole units.
type TimeComponents struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports whether every component is zero.
func (c TimeComponents) IsZero() bool {
	return c == TimeComponents{}
}

// Countdown returns the remaining time to the trip's next boundary:
// the start date while upcoming, the end date while ongoing, and all
// zeros once completed.
func (t *Trip) Countdown(now time.Time) TimeComponents {
	var target time.Time
	switch t.Status(now) {
	case TripUpcoming:
		target = t.StartDate
	case TripOngoing:
		target = t.EndDate
	default:
		return TimeComponents{}
	}

	remaining := target.Sub(now)
	if remaining < 0 {
		return TimeComponents{}
	}

	const day = 24 * time.Hour
	c := TimeComponents{Days: int(remaining / day)}
	remaining -= time.Duration(c.Days) * day
	c.Hours = int(remaining / time.Hour)
	remaining -= time.Duration(c.Hours) * time.Hour
	c.Minutes = int(remaining / time.Minute)
	remaining -= time.Duration(c.Minutes) * time.Minute
	c.Seconds = int(remaining / time.Second)
	return c
}
