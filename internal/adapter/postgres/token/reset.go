package token

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/adapter/postgres"
	"github.com/triptribe/backend/internal/domain"
)

type resetRow struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	UsedAt    *time.Time `db:"used_at"`
}

func (row resetRow) toDomain() *domain.PasswordResetToken {
	return &domain.PasswordResetToken{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
		UsedAt:    row.UsedAt,
	}
}

const resetColumns = `id, user_id, token_hash, expires_at, created_at, used_at`

const createResetSQL = `
INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + resetColumns

const getResetByHashSQL = `
SELECT ` + resetColumns + `
FROM password_reset_tokens
WHERE token_hash = $1`

const markResetUsedSQL = `
UPDATE password_reset_tokens
SET used_at = now()
WHERE id = $1 AND used_at IS NULL`

const deleteExpiredResetsSQL = `
DELETE FROM password_reset_tokens
WHERE expires_at < now() OR used_at IS NOT NULL`

// CreateReset inserts a new password reset token row.
func (r *Repo) CreateReset(ctx context.Context, t *domain.PasswordResetToken) (*domain.PasswordResetToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row resetRow
	err := pgxscan.Get(ctx, querier, &row, createResetSQL,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "password_reset_token", t.ID)
	}

	return row.toDomain(), nil
}

// GetResetByHash returns a password reset token by its SHA-256 hash.
func (r *Repo) GetResetByHash(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row resetRow
	if err := pgxscan.Get(ctx, querier, &row, getResetByHashSQL, tokenHash); err != nil {
		return nil, postgres.MapError(err, "password_reset_token", "by-hash")
	}

	return row.toDomain(), nil
}

// MarkResetUsed stamps the token as consumed. Tokens are single-use; marking
// an already-used token is a no-op.
func (r *Repo) MarkResetUsed(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := querier.Exec(ctx, markResetUsedSQL, id); err != nil {
		return postgres.MapError(err, "password_reset_token", id)
	}

	return nil
}

// DeleteExpiredResets removes expired and consumed reset tokens. Returns the
// number of rows deleted.
func (r *Repo) DeleteExpiredResets(ctx context.Context) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, deleteExpiredResetsSQL)
	if err != nil {
		return 0, postgres.MapError(err, "password_reset_token", "cleanup")
	}

	return tag.RowsAffected(), nil
}
