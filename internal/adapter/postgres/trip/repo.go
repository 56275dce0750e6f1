// Package trip implements the Trip aggregate repository using PostgreSQL.
//
// The trip_participants table doubles as the per-user trip index: listing a
// user's trips is an index scan on user_id, never a scan over all trips.
package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/adapter/postgres"
	"github.com/triptribe/backend/internal/domain"
)

// Repo provides trip, participant and invitation persistence backed by
// PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new trip repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ---------------------------------------------------------------------------
// Row types
// ---------------------------------------------------------------------------

type tripRow struct {
	ID          uuid.UUID `db:"id"`
	CreatorID   uuid.UUID `db:"creator_id"`
	Name        string    `db:"name"`
	Destination string    `db:"destination"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row tripRow) toDomain() *domain.Trip {
	return &domain.Trip{
		ID:          row.ID,
		CreatorID:   row.CreatorID,
		Name:        row.Name,
		Destination: row.Destination,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

type participantRow struct {
	TripID   uuid.UUID `db:"trip_id"`
	UserID   uuid.UUID `db:"user_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

func (row participantRow) toDomain() domain.Participant {
	return domain.Participant{
		TripID:   row.TripID,
		UserID:   row.UserID,
		Role:     domain.ParticipantRole(row.Role),
		JoinedAt: row.JoinedAt,
	}
}

type invitationRow struct {
	ID        uuid.UUID `db:"id"`
	TripID    uuid.UUID `db:"trip_id"`
	Email     string    `db:"email"`
	Status    string    `db:"status"`
	Message   *string   `db:"message"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row invitationRow) toDomain() domain.Invitation {
	return domain.Invitation{
		ID:        row.ID,
		TripID:    row.TripID,
		Email:     row.Email,
		Status:    domain.InvitationStatus(row.Status),
		Message:   row.Message,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const tripColumns = `id, creator_id, name, destination, start_date, end_date, description, created_at, updated_at`

const createTripSQL = `
INSERT INTO trips (id, creator_id, name, destination, start_date, end_date, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + tripColumns

const getTripByIDSQL = `
SELECT ` + tripColumns + `
FROM trips
WHERE id = $1`

const listParticipantsSQL = `
SELECT trip_id, user_id, role, joined_at
FROM trip_participants
WHERE trip_id = $1
ORDER BY joined_at, user_id`

const listInvitationsSQL = `
SELECT id, trip_id, email, status, message, created_at, updated_at
FROM trip_invitations
WHERE trip_id = $1
ORDER BY created_at, id`

const addParticipantSQL = `
INSERT INTO trip_participants (trip_id, user_id, role, joined_at)
VALUES ($1, $2, $3, $4)`

const listTripIDsForUserSQL = `
SELECT trip_id
FROM trip_participants
WHERE user_id = $1`

const listTripIDsCreatedBySQL = `
SELECT id
FROM trips
WHERE creator_id = $1`

const touchTripSQL = `
UPDATE trips
SET updated_at = now()
WHERE id = $1`

const deleteParticipantsByTripSQL = `
DELETE FROM trip_participants
WHERE trip_id = $1`

const deleteInvitationsByTripSQL = `
DELETE FROM trip_invitations
WHERE trip_id = $1`

const deleteTripSQL = `
DELETE FROM trips
WHERE id = $1`

// upsertInvitationSQL replaces any previous invitation for (trip, email)
// with a fresh pending one: new id, new message, reset timestamps.
const upsertInvitationSQL = `
INSERT INTO trip_invitations (id, trip_id, email, status, message, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (trip_id, email) DO UPDATE
SET id = EXCLUDED.id,
    status = EXCLUDED.status,
    message = EXCLUDED.message,
    created_at = EXCLUDED.created_at,
    updated_at = EXCLUDED.updated_at
RETURNING id, trip_id, email, status, message, created_at, updated_at`

const getInvitationSQL = `
SELECT id, trip_id, email, status, message, created_at, updated_at
FROM trip_invitations
WHERE trip_id = $1 AND id = $2`

const updateInvitationStatusSQL = `
UPDATE trip_invitations
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, trip_id, email, status, message, created_at, updated_at`

const deleteInvitationSQL = `
DELETE FROM trip_invitations
WHERE trip_id = $1 AND id = $2`

const listPendingByEmailSQL = `
SELECT id, trip_id, email, status, message, created_at, updated_at
FROM trip_invitations
WHERE email = $1 AND status = 'pending'
ORDER BY created_at DESC, id`

// ---------------------------------------------------------------------------
// Trip operations
// ---------------------------------------------------------------------------

// Create inserts the trip root row. Participants are inserted separately
// (same transaction, via AddParticipant).
func (r *Repo) Create(ctx context.Context, t *domain.Trip) (*domain.Trip, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row tripRow
	err := pgxscan.Get(ctx, querier, &row, createTripSQL,
		t.ID, t.CreatorID, t.Name, t.Destination, t.StartDate, t.EndDate, t.Description, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "trip", t.ID)
	}

	return row.toDomain(), nil
}

// GetByID loads the full trip aggregate: the root row, participants ordered
// by joined_at, and all invitations.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row tripRow
	if err := pgxscan.Get(ctx, querier, &row, getTripByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "trip", id)
	}

	var participants []participantRow
	if err := pgxscan.Select(ctx, querier, &participants, listParticipantsSQL, id); err != nil {
		return nil, postgres.MapError(err, "trip_participant", id)
	}

	var invitations []invitationRow
	if err := pgxscan.Select(ctx, querier, &invitations, listInvitationsSQL, id); err != nil {
		return nil, postgres.MapError(err, "trip_invitation", id)
	}

	t := row.toDomain()
	t.Participants = make([]domain.Participant, 0, len(participants))
	for _, p := range participants {
		t.Participants = append(t.Participants, p.toDomain())
	}
	t.Invitations = make([]domain.Invitation, 0, len(invitations))
	for _, inv := range invitations {
		t.Invitations = append(t.Invitations, inv.toDomain())
	}

	return t, nil
}

// ListIDsForUser returns the ids of every trip the user participates in,
// read from the participant index.
func (r *Repo) ListIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, querier, &ids, listTripIDsForUserSQL, userID); err != nil {
		return nil, postgres.MapError(err, "trip_participant", userID)
	}

	return ids, nil
}

// ListIDsCreatedBy returns the ids of every trip the user created. Account
// deletion walks this list to tear the owned trips down first.
func (r *Repo) ListIDsCreatedBy(ctx context.Context, creatorID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, querier, &ids, listTripIDsCreatedBySQL, creatorID); err != nil {
		return nil, postgres.MapError(err, "trip", creatorID)
	}

	return ids, nil
}

// Update replaces the mutable fields of a trip. Last write wins.
func (r *Repo) Update(ctx context.Context, t *domain.Trip) (*domain.Trip, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	query := psql.Update("trips").
		Set("name", t.Name).
		Set("destination", t.Destination).
		Set("start_date", t.StartDate).
		Set("end_date", t.EndDate).
		Set("description", t.Description).
		Set("updated_at", t.UpdatedAt).
		Where(squirrel.Eq{"id": t.ID}).
		Suffix("RETURNING " + tripColumns)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	var row tripRow
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "trip", t.ID)
	}

	return row.toDomain(), nil
}

// Touch bumps the trip's updated_at without changing other fields.
func (r *Repo) Touch(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := querier.Exec(ctx, touchTripSQL, id); err != nil {
		return postgres.MapError(err, "trip", id)
	}

	return nil
}

// Delete removes the trip root row only. Callers delete the dependent rows
// first (participants, invitations, activities) so the index never outlives
// a root deletion attempt.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, deleteTripSQL, id)
	if err != nil {
		return postgres.MapError(err, "trip", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Participant (per-user index) operations
// ---------------------------------------------------------------------------

// AddParticipant inserts a membership row. A duplicate (trip, user) pair
// maps to domain.ErrAlreadyExists.
func (r *Repo) AddParticipant(ctx context.Context, p *domain.Participant) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	_, err := querier.Exec(ctx, addParticipantSQL, p.TripID, p.UserID, p.Role.String(), p.JoinedAt)
	if err != nil {
		return postgres.MapError(err, "trip_participant", p.UserID)
	}

	return nil
}

// DeleteParticipantsByTrip removes every index row of a trip.
func (r *Repo) DeleteParticipantsByTrip(ctx context.Context, tripID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := querier.Exec(ctx, deleteParticipantsByTripSQL, tripID); err != nil {
		return postgres.MapError(err, "trip_participant", tripID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Invitation operations
// ---------------------------------------------------------------------------

// UpsertInvitation writes a fresh pending invitation for (trip, email),
// replacing any previous invitation for the same address.
func (r *Repo) UpsertInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row invitationRow
	err := pgxscan.Get(ctx, querier, &row, upsertInvitationSQL,
		inv.ID, inv.TripID, inv.Email, inv.Status.String(), inv.Message, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "trip_invitation", inv.ID)
	}

	out := row.toDomain()
	return &out, nil
}

// GetInvitation returns an invitation scoped to a trip. An invitation id
// that exists on a different trip is ErrNotFound.
func (r *Repo) GetInvitation(ctx context.Context, tripID, invitationID uuid.UUID) (*domain.Invitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row invitationRow
	if err := pgxscan.Get(ctx, querier, &row, getInvitationSQL, tripID, invitationID); err != nil {
		return nil, postgres.MapError(err, "trip_invitation", invitationID)
	}

	out := row.toDomain()
	return &out, nil
}

// UpdateInvitationStatus sets the status of an invitation.
func (r *Repo) UpdateInvitationStatus(ctx context.Context, id uuid.UUID, status domain.InvitationStatus) (*domain.Invitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var row invitationRow
	if err := pgxscan.Get(ctx, querier, &row, updateInvitationStatusSQL, id, status.String()); err != nil {
		return nil, postgres.MapError(err, "trip_invitation", id)
	}

	out := row.toDomain()
	return &out, nil
}

// DeleteInvitation removes an invitation scoped to a trip.
func (r *Repo) DeleteInvitation(ctx context.Context, tripID, invitationID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, deleteInvitationSQL, tripID, invitationID)
	if err != nil {
		return postgres.MapError(err, "trip_invitation", invitationID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip_invitation %s: %w", invitationID, domain.ErrNotFound)
	}

	return nil
}

// DeleteInvitationsByTrip removes every invitation of a trip.
func (r *Repo) DeleteInvitationsByTrip(ctx context.Context, tripID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := querier.Exec(ctx, deleteInvitationsByTripSQL, tripID); err != nil {
		return postgres.MapError(err, "trip_invitation", tripID)
	}

	return nil
}

// ListPendingByEmail returns all pending invitations addressed to the given
// (normalized) email, newest first. Targeted index query, not a scan.
func (r *Repo) ListPendingByEmail(ctx context.Context, email string) ([]domain.Invitation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var rows []invitationRow
	if err := pgxscan.Select(ctx, querier, &rows, listPendingByEmailSQL, email); err != nil {
		return nil, postgres.MapError(err, "trip_invitation", email)
	}

	result := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}

	return result, nil
}
