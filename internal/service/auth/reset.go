package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/triptribe/backend/internal/auth"
	"github.com/triptribe/backend/internal/domain"
)

// RequestPasswordReset issues a single-use reset token for the account
// behind the given email. The raw token is returned to the caller; only its
// hash is stored. An unknown address returns ErrNotFound.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", domain.NewValidationError("email", "required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("auth.RequestPasswordReset: %w", err)
	}

	// Same generator as refresh tokens: 32 random bytes, stored hashed.
	raw, hash, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return "", fmt.Errorf("auth.RequestPasswordReset generate token: %w", err)
	}

	now := time.Now()
	_, err = s.tokens.CreateReset(ctx, &domain.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
		CreatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("auth.RequestPasswordReset store token: %w", err)
	}

	s.log.InfoContext(ctx, "password reset requested",
		slog.String("user_id", user.ID.String()))

	return raw, nil
}

// ResetPassword consumes a reset token and replaces the user's password.
// Every refresh token of the user is revoked so existing sessions die with
// the old password. Unknown, expired and already-used tokens all come back
// as ErrUnauthorized.
func (s *Service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	token, err := s.tokens.GetResetByHash(ctx, auth.HashToken(input.Token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "unknown password reset token presented")
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("auth.ResetPassword get token: %w", err)
	}

	if token.IsUsed() || token.IsExpired(time.Now()) {
		return domain.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword hash password: %w", err)
	}

	if err := s.tokens.MarkResetUsed(ctx, token.ID); err != nil {
		return fmt.Errorf("auth.ResetPassword consume token: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, token.UserID, string(hash)); err != nil {
		return fmt.Errorf("auth.ResetPassword update password: %w", err)
	}
	if err := s.tokens.RevokeAllForUser(ctx, token.UserID); err != nil {
		return fmt.Errorf("auth.ResetPassword revoke sessions: %w", err)
	}

	s.log.InfoContext(ctx, "password reset completed",
		slog.String("user_id", token.UserID.String()))

	return nil
}
