package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triptribe/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row with a unique email. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		DisplayName:  "Test User " + suffix,
		PasswordHash: "$2a$12$test-hash-" + suffix,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, display_name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.DisplayName, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedTrip creates a trip owned by the given user together with the creator
// participant row, mirroring what the trip service writes on Create.
func SeedTrip(t *testing.T, pool *pgxpool.Pool, creatorID uuid.UUID) domain.Trip {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	trip := domain.Trip{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Name:        "Trip " + suffix,
		Destination: "Destination " + suffix,
		StartDate:   now.Add(24 * time.Hour),
		EndDate:     now.Add(96 * time.Hour),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO trips (id, creator_id, name, destination, start_date, end_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		trip.ID, trip.CreatorID, trip.Name, trip.Destination, trip.StartDate, trip.EndDate, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTrip insert trip: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO trip_participants (trip_id, user_id, role, joined_at)
		 VALUES ($1, $2, 'creator', $3)`,
		trip.ID, creatorID, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTrip insert creator participant: %v", err)
	}

	trip.Participants = []domain.Participant{{
		TripID:   trip.ID,
		UserID:   creatorID,
		Role:     domain.RoleCreator,
		JoinedAt: now,
	}}

	return trip
}

// SeedInvitation creates a pending invitation on the given trip.
func SeedInvitation(t *testing.T, pool *pgxpool.Pool, tripID uuid.UUID, email string) domain.Invitation {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	inv := domain.Invitation{
		ID:        uuid.New(),
		TripID:    tripID,
		Email:     domain.NormalizeEmail(email),
		Status:    domain.InvitationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO trip_invitations (id, trip_id, email, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.TripID, inv.Email, inv.Status.String(), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedInvitation insert: %v", err)
	}

	return inv
}
