// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/adapter/postgres"
	"github.com/triptribe/backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	DisplayName  string    `db:"display_name"`
	PhotoURL     *string   `db:"photo_url"`
	PhoneNumber  *string   `db:"phone_number"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           row.ID,
		Email:        row.Email,
		DisplayName:  row.DisplayName,
		PhotoURL:     row.PhotoURL,
		PhoneNumber:  row.PhoneNumber,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

const userColumns = `id, email, display_name, photo_url, phone_number, password_hash, created_at, updated_at`

const createUserSQL = `
INSERT INTO users (id, email, display_name, photo_url, phone_number, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns

const getUserByIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

const getUserByEmailSQL = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`

const updateProfileSQL = `
UPDATE users
SET display_name = $2, phone_number = $3, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

const updatePhotoURLSQL = `
UPDATE users
SET photo_url = $2, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

const updatePasswordSQL = `
UPDATE users
SET password_hash = $2, updated_at = now()
WHERE id = $1`

const deleteUserSQL = `
DELETE FROM users
WHERE id = $1`

// Create inserts a new user and returns the persisted row.
// A duplicate email maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	err := pgxscan.Get(ctx, querier, &row, createUserSQL,
		u.ID, u.Email, u.DisplayName, u.PhotoURL, u.PhoneNumber, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	return row.toDomain(), nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	if err := pgxscan.Get(ctx, querier, &row, getUserByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return row.toDomain(), nil
}

// GetByEmail returns a user by email address. The caller is expected to
// pass an already-normalized (lowercased) email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	if err := pgxscan.Get(ctx, querier, &row, getUserByEmailSQL, email); err != nil {
		return nil, postgres.MapError(err, "user", email)
	}

	return row.toDomain(), nil
}

// UpdateProfile replaces display_name and phone_number for the given user.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, phoneNumber *string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	if err := pgxscan.Get(ctx, querier, &row, updateProfileSQL, id, displayName, phoneNumber); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return row.toDomain(), nil
}

// UpdatePhotoURL stores a new photo URL (or clears it with nil).
func (r *Repo) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL *string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row userRow
	if err := pgxscan.Get(ctx, querier, &row, updatePhotoURLSQL, id, photoURL); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return row.toDomain(), nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, updatePasswordSQL, id, passwordHash)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a user row. Refresh tokens and participations are removed
// by ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
