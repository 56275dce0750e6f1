package trip

import (
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
)

// CreateInput holds parameters for trip creation.
type CreateInput struct {
	Name        string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Description *string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if i.Destination == "" {
		errs = append(errs, domain.FieldError{Field: "destination", Message: "required"})
	} else if len(i.Destination) > 200 {
		errs = append(errs, domain.FieldError{Field: "destination", Message: "too long"})
	}

	if i.StartDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start_date", Message: "required"})
	}
	if i.EndDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "required"})
	}
	if !i.StartDate.IsZero() && !i.EndDate.IsZero() && i.EndDate.Before(i.StartDate) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for trip update. All mutable fields are
// replaced wholesale.
type UpdateInput struct {
	TripID      uuid.UUID
	Name        string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Description *string
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	base := CreateInput{
		Name:        i.Name,
		Destination: i.Destination,
		StartDate:   i.StartDate,
		EndDate:     i.EndDate,
		Description: i.Description,
	}
	return base.Validate()
}

// InviteInput holds parameters for inviting collaborators.
type InviteInput struct {
	TripID  uuid.UUID
	Emails  []string
	Message *string
}

// Validate validates the invite input. Emails are expected to be normalized
// and de-duplicated by the caller before validation.
func (i InviteInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Emails) == 0 {
		errs = append(errs, domain.FieldError{Field: "emails", Message: "required"})
	}
	for _, e := range i.Emails {
		if _, err := mail.ParseAddress(e); err != nil {
			errs = append(errs, domain.FieldError{Field: "emails", Message: "invalid address: " + e})
		}
	}
	if i.Message != nil && len(*i.Message) > 500 {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
