// Package activity implements the Activity repository using PostgreSQL.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/adapter/postgres"
	"github.com/triptribe/backend/internal/domain"
)

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new activity repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type activityRow struct {
	ID              uuid.UUID `db:"id"`
	TripID          uuid.UUID `db:"trip_id"`
	CreatorID       uuid.UUID `db:"creator_id"`
	Name            string    `db:"name"`
	Location        string    `db:"location"`
	StartsAt        time.Time `db:"starts_at"`
	DurationMinutes int       `db:"duration_minutes"`
	Category        string    `db:"category"`
	PhotoURL        *string   `db:"photo_url"`
	LinkURL         *string   `db:"link_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (row activityRow) toDomain() *domain.Activity {
	return &domain.Activity{
		ID:        row.ID,
		TripID:    row.TripID,
		CreatorID: row.CreatorID,
		Name:      row.Name,
		Location:  row.Location,
		StartsAt:  row.StartsAt,
		Duration:  time.Duration(row.DurationMinutes) * time.Minute,
		Category:  domain.ActivityCategory(row.Category),
		PhotoURL:  row.PhotoURL,
		LinkURL:   row.LinkURL,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func durationMinutes(d time.Duration) int {
	return int(d / time.Minute)
}

const activityColumns = `id, trip_id, creator_id, name, location, starts_at, duration_minutes, category, photo_url, link_url, created_at, updated_at`

const createActivitySQL = `
INSERT INTO activities (id, trip_id, creator_id, name, location, starts_at, duration_minutes, category, photo_url, link_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + activityColumns

const getActivitySQL = `
SELECT ` + activityColumns + `
FROM activities
WHERE trip_id = $1 AND id = $2`

const listActivitiesByTripSQL = `
SELECT ` + activityColumns + `
FROM activities
WHERE trip_id = $1
ORDER BY starts_at, id`

const updateActivitySQL = `
UPDATE activities
SET name = $3, location = $4, starts_at = $5, duration_minutes = $6,
    category = $7, photo_url = $8, link_url = $9, updated_at = $10
WHERE trip_id = $1 AND id = $2
RETURNING ` + activityColumns

const deleteActivitySQL = `
DELETE FROM activities
WHERE trip_id = $1 AND id = $2`

const deleteActivitiesByTripSQL = `
DELETE FROM activities
WHERE trip_id = $1`

const deleteActivitiesByCreatorSQL = `
DELETE FROM activities
WHERE creator_id = $1`

// Create inserts a new activity. A duration below the table's minimum maps
// to domain.ErrValidation via the CHECK constraint.
func (r *Repo) Create(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row activityRow
	err := pgxscan.Get(ctx, querier, &row, createActivitySQL,
		a.ID, a.TripID, a.CreatorID, a.Name, a.Location, a.StartsAt,
		durationMinutes(a.Duration), a.Category.String(), a.PhotoURL, a.LinkURL,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "activity", a.ID)
	}

	return row.toDomain(), nil
}

// Get returns an activity scoped to a trip.
func (r *Repo) Get(ctx context.Context, tripID, id uuid.UUID) (*domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row activityRow
	if err := pgxscan.Get(ctx, querier, &row, getActivitySQL, tripID, id); err != nil {
		return nil, postgres.MapError(err, "activity", id)
	}

	return row.toDomain(), nil
}

// ListByTrip returns all activities of a trip sorted by start time ascending.
func (r *Repo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var rows []activityRow
	if err := pgxscan.Select(ctx, querier, &rows, listActivitiesByTripSQL, tripID); err != nil {
		return nil, postgres.MapError(err, "activity", tripID)
	}

	result := make([]domain.Activity, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row.toDomain())
	}

	return result, nil
}

// Update replaces the mutable fields of an activity.
func (r *Repo) Update(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row activityRow
	err := pgxscan.Get(ctx, querier, &row, updateActivitySQL,
		a.TripID, a.ID, a.Name, a.Location, a.StartsAt,
		durationMinutes(a.Duration), a.Category.String(), a.PhotoURL, a.LinkURL,
		a.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "activity", a.ID)
	}

	return row.toDomain(), nil
}

// Delete removes an activity scoped to a trip.
func (r *Repo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, deleteActivitySQL, tripID, id)
	if err != nil {
		return postgres.MapError(err, "activity", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activity %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByTrip removes every activity of a trip.
func (r *Repo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := querier.Exec(ctx, deleteActivitiesByTripSQL, tripID); err != nil {
		return postgres.MapError(err, "activity", tripID)
	}

	return nil
}

// DeleteByCreator removes every activity the user authored, across all
// trips. Account deletion uses this so no activities row keeps referencing
// the removed user.
func (r *Repo) DeleteByCreator(ctx context.Context, creatorID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := querier.Exec(ctx, deleteActivitiesByCreatorSQL, creatorID); err != nil {
		return postgres.MapError(err, "activity", creatorID)
	}

	return nil
}
