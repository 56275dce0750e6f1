package activity

import (
	"time"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
)

// Input holds parameters for creating or updating an activity. Photo bytes,
// when present, are uploaded to the blob store before the row is written.
type Input struct {
	TripID   uuid.UUID
	Name     string
	Location string
	StartsAt time.Time
	Duration time.Duration
	Category domain.ActivityCategory
	LinkURL  *string

	Photo            []byte
	PhotoContentType string
}

// Validate validates the fields that do not depend on the trip window.
func (i Input) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if i.Location == "" {
		errs = append(errs, domain.FieldError{Field: "location", Message: "required"})
	} else if len(i.Location) > 200 {
		errs = append(errs, domain.FieldError{Field: "location", Message: "too long"})
	}

	if i.StartsAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "starts_at", Message: "required"})
	}

	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown category"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
