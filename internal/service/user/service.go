// Package user implements profile operations for the authenticated user.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/adapter/blob"
	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/pkg/ctxutil"
)

// userRepo defines the user repository interface needed by the user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, phoneNumber *string) (*domain.User, error)
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL *string) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// tripRepo covers the trip teardown needed when an account goes away.
type tripRepo interface {
	ListIDsCreatedBy(ctx context.Context, creatorID uuid.UUID) ([]uuid.UUID, error)
	DeleteParticipantsByTrip(ctx context.Context, tripID uuid.UUID) error
	DeleteInvitationsByTrip(ctx context.Context, tripID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// activityRepo defines the activity repository interface needed by the user service.
type activityRepo interface {
	DeleteByTrip(ctx context.Context, tripID uuid.UUID) error
	DeleteByCreator(ctx context.Context, creatorID uuid.UUID) error
}

// txManager defines the transaction manager interface needed by the user service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements profile operations.
type Service struct {
	log        *slog.Logger
	users      userRepo
	trips      tripRepo
	activities activityRepo
	blobs      blob.Store
	tx         txManager
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	trips tripRepo,
	activities activityRepo,
	blobs blob.Store,
	tx txManager,
) *Service {
	return &Service{
		log:        logger.With("service", "user"),
		users:      users,
		trips:      trips,
		activities: activities,
		blobs:      blobs,
		tx:         tx,
	}
}

// Get returns the authenticated user's profile.
func (s *Service) Get(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Get: %w", err)
	}

	return u, nil
}

// UpdateProfileInput holds the mutable profile fields.
type UpdateProfileInput struct {
	DisplayName string
	PhoneNumber *string
}

// Validate validates the profile input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.DisplayName == "" {
		errs = append(errs, domain.FieldError{Field: "display_name", Message: "required"})
	} else if len(i.DisplayName) > 100 {
		errs = append(errs, domain.FieldError{Field: "display_name", Message: "too long"})
	}

	if i.PhoneNumber != nil && len(*i.PhoneNumber) > 32 {
		errs = append(errs, domain.FieldError{Field: "phone_number", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateProfile replaces display name and phone number. Last write wins.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.UpdateProfile(ctx, userID, input.DisplayName, input.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateProfile: %w", err)
	}

	return u, nil
}

// maxPhotoBytes caps uploaded profile photos at 5 MiB.
const maxPhotoBytes = 5 << 20

// UpdatePhoto uploads a new profile photo to the blob store and records its
// URL on the user row.
func (s *Service) UpdatePhoto(ctx context.Context, data []byte, contentType string) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if len(data) == 0 {
		return nil, domain.NewValidationError("photo", "required")
	}
	if len(data) > maxPhotoBytes {
		return nil, domain.NewValidationError("photo", "too large")
	}

	url, err := s.blobs.Upload(ctx, blob.UserPhotoKey(userID.String()), data, contentType)
	if err != nil {
		return nil, fmt.Errorf("user.UpdatePhoto upload: %w", err)
	}

	u, err := s.users.UpdatePhotoURL(ctx, userID, &url)
	if err != nil {
		return nil, fmt.Errorf("user.UpdatePhoto: %w", err)
	}

	s.log.InfoContext(ctx, "profile photo updated", slog.String("user_id", userID.String()))
	return u, nil
}

// DeleteAccount removes the user and everything they own, in one
// transaction. Trips the user created are torn down the way trip deletion
// does it (index rows before the root), activities they authored on other
// people's trips go next, and the user row falls last; refresh tokens and
// remaining participations cascade off it. Without the owned-row cleanup
// the user delete would trip the creator_id foreign keys on trips and
// activities. The profile photo blob is removed best-effort afterwards.
func (s *Service) DeleteAccount(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		owned, err := s.trips.ListIDsCreatedBy(txCtx, userID)
		if err != nil {
			return fmt.Errorf("list owned trips: %w", err)
		}

		for _, tripID := range owned {
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
		}

		if err := s.activities.DeleteByCreator(txCtx, userID); err != nil {
			return fmt.Errorf("delete authored activities: %w", err)
		}

		return s.users.Delete(txCtx, userID)
	})
	if err != nil {
		return fmt.Errorf("user.DeleteAccount: %w", err)
	}

	if err := s.blobs.Delete(ctx, blob.UserPhotoKey(userID.String())); err != nil {
		s.log.WarnContext(ctx, "delete profile photo blob failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "account deleted", slog.String("user_id", userID.String()))
	return nil
}
