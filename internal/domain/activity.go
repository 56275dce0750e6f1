package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a scheduled sub-event within a trip's date range.
type Activity struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	CreatorID uuid.UUID
	Name      string
	Location  string
	StartsAt  time.Time
	Duration  time.Duration
	Category  ActivityCategory
	PhotoURL  *string
	LinkURL   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt returns the instant the activity finishes.
func (a *Activity) EndsAt() time.Time {
	return a.StartsAt.Add(a.Duration)
}

// MinActivityDuration is the shortest allowed activity.
const MinActivityDuration = 15 * time.Minute

// ActivityCategory is a closed enumeration of activity kinds.
type ActivityCategory string

const (
	CategorySightseeing    ActivityCategory = "Sightseeing"
	CategoryDining         ActivityCategory = "Dining"
	CategoryAdventure      ActivityCategory = "Adventure"
	CategoryRelaxation     ActivityCategory = "Relaxation"
	CategoryCultural       ActivityCategory = "Cultural"
	CategoryShopping       ActivityCategory = "Shopping"
	CategoryEntertainment  ActivityCategory = "Entertainment"
	CategoryTransportation ActivityCategory = "Transportation"
	CategoryAccommodation  ActivityCategory = "Accommodation"
	CategoryOther          ActivityCategory = "Other"
)

// ActivityCategories lists every valid category in display order.
var ActivityCategories = []ActivityCategory{
	CategorySightseeing,
	CategoryDining,
	CategoryAdventure,
	CategoryRelaxation,
	CategoryCultural,
	CategoryShopping,
	CategoryEntertainment,
	CategoryTransportation,
	CategoryAccommodation,
	CategoryOther,
}

func (c ActivityCategory) String() string { return string(c) }

func (c ActivityCategory) IsValid() bool {
	switch c {
	case CategorySightseeing, CategoryDining, CategoryAdventure, CategoryRelaxation,
		CategoryCultural, CategoryShopping, CategoryEntertainment,
		CategoryTransportation, CategoryAccommodation, CategoryOther:
		return true
	}
	return false
}

// IconName returns the display icon identifier for the category.
func (c ActivityCategory) IconName() string {
	switch c {
	case CategorySightseeing:
		return "binoculars"
	case CategoryDining:
		return "fork.knife"
	case CategoryAdventure:
		return "figure.hiking"
	case CategoryRelaxation:
		return "beach.umbrella"
	case CategoryCultural:
		return "building.columns"
	case CategoryShopping:
		return "bag"
	case CategoryEntertainment:
		return "ticket"
	case CategoryTransportation:
		return "car"
	case CategoryAccommodation:
		return "house"
	default:
		return "ellipsis.circle"
	}
}
