package trip

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/pkg/ctxutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func tripWithParticipant(tripID, userID uuid.UUID, role domain.ParticipantRole) *domain.Trip {
	now := time.Now()
	return &domain.Trip{
		ID:          tripID,
		CreatorID:   userID,
		Name:        "Trip",
		Destination: "Somewhere",
		StartDate:   now.Add(24 * time.Hour),
		EndDate:     now.Add(72 * time.Hour),
		Participants: []domain.Participant{
			{TripID: tripID, UserID: userID, Role: role, JoinedAt: now},
		},
	}
}

// ─── Create ─────────────────────────────────────────────────────────────────

func TestService_Create_InsertsCreatorParticipant(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var participant *domain.Participant

	trips := &tripRepoMock{
		CreateFunc: func(ctx context.Context, tr *domain.Trip) (*domain.Trip, error) {
			return tr, nil
		},
		AddParticipantFunc: func(ctx context.Context, p *domain.Participant) error {
			participant = p
			return nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	now := time.Now()
	created, err := svc.Create(authedCtx(userID), CreateInput{
		Name:        "Lisbon",
		Destination: "Portugal",
		StartDate:   now.Add(24 * time.Hour),
		EndDate:     now.Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if participant == nil {
		t.Fatal("creator participant was not inserted")
	}
	if participant.Role != domain.RoleCreator {
		t.Errorf("participant role = %s, want creator", participant.Role)
	}
	if participant.UserID != userID || participant.TripID != created.ID {
		t.Errorf("participant = %+v", participant)
	}
	if len(created.Participants) != 1 || created.Participants[0].UserID != userID {
		t.Errorf("Create() participants = %+v, want exactly the creator", created.Participants)
	}
	if len(created.Invitations) != 0 {
		t.Errorf("Create() invitations = %+v, want empty", created.Invitations)
	}
}

func TestService_Create_ParticipantFailureAbortsTrip(t *testing.T) {
	t.Parallel()

	// The callback error must propagate so the surrounding transaction rolls
	// both writes back.
	trips := &tripRepoMock{
		CreateFunc: func(ctx context.Context, tr *domain.Trip) (*domain.Trip, error) {
			return tr, nil
		},
		AddParticipantFunc: func(ctx context.Context, p *domain.Participant) error {
			return errors.New("index write failed")
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	now := time.Now()
	_, err := svc.Create(authedCtx(uuid.New()), CreateInput{
		Name:        "Lisbon",
		Destination: "Portugal",
		StartDate:   now,
		EndDate:     now.Add(time.Hour),
	})
	if err == nil {
		t.Fatal("Create() should fail when the participant write fails")
	}
}

func TestService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(discardLogger(), &tripRepoMock{}, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})
	now := time.Now()

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"empty name", CreateInput{Destination: "X", StartDate: now, EndDate: now}},
		{"empty destination", CreateInput{Name: "X", StartDate: now, EndDate: now}},
		{"end before start", CreateInput{Name: "X", Destination: "Y", StartDate: now.Add(time.Hour), EndDate: now}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Create(authedCtx(uuid.New()), tt.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

// ─── ListForUser ────────────────────────────────────────────────────────────

func TestService_ListForUser_SortsAndSkipsFailures(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now()

	earlier := uuid.New()
	later := uuid.New()
	broken := uuid.New()

	tripsByID := map[uuid.UUID]*domain.Trip{
		earlier: {ID: earlier, StartDate: now.Add(24 * time.Hour),
			Participants: []domain.Participant{{UserID: userID}}},
		later: {ID: later, StartDate: now.Add(48 * time.Hour),
			Participants: []domain.Participant{{UserID: userID}}},
	}

	trips := &tripRepoMock{
		ListIDsForUserFunc: func(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{earlier, broken, later}, nil
		},
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			t, ok := tripsByID[id]
			if !ok {
				return nil, errors.New("corrupt record")
			}
			return t, nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	got, err := svc.ListForUser(authedCtx(userID))
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("ListForUser() len = %d, want 2 (broken trip skipped)", len(got))
	}
	if got[0].ID != later || got[1].ID != earlier {
		t.Errorf("ListForUser() order = [%s, %s], want start date descending", got[0].ID, got[1].ID)
	}
}

func TestService_ListForUser_EmptyIndex(t *testing.T) {
	t.Parallel()

	trips := &tripRepoMock{
		ListIDsForUserFunc: func(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
			return nil, nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	got, err := svc.ListForUser(authedCtx(uuid.New()))
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListForUser() = %v, want empty", got)
	}
}

// ─── Get / authorization ────────────────────────────────────────────────────

func TestService_Get_NonParticipantForbidden(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	owner := uuid.New()
	stranger := uuid.New()

	trips := &tripRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			return tripWithParticipant(tripID, owner, domain.RoleCreator), nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	_, err := svc.Get(authedCtx(stranger), tripID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Get() error = %v, want ErrForbidden", err)
	}
}

// ─── Update ─────────────────────────────────────────────────────────────────

// Updates carry no version token: every save replaces the full field set, so
// when two participants edit concurrently the second save silently overwrites
// the first. This test pins that accepted behavior.
func TestService_Update_LastWriterWins(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	aliceID := uuid.New()
	bobID := uuid.New()

	persisted := tripWithParticipant(tripID, aliceID, domain.RoleCreator)
	persisted.Participants = append(persisted.Participants, domain.Participant{
		TripID: tripID, UserID: bobID, Role: domain.RoleMember,
	})

	trips := &tripRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			snapshot := *persisted
			return &snapshot, nil
		},
		UpdateFunc: func(ctx context.Context, tr *domain.Trip) (*domain.Trip, error) {
			tr.Participants = persisted.Participants
			persisted = tr
			snapshot := *tr
			return &snapshot, nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	start := persisted.StartDate
	end := persisted.EndDate

	notes := "bring hiking boots"
	first, err := svc.Update(authedCtx(aliceID), UpdateInput{
		TripID:      tripID,
		Name:        "Trip v2",
		Destination: "Somewhere",
		StartDate:   start,
		EndDate:     end,
		Description: &notes,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if first.Description == nil || *first.Description != notes {
		t.Fatalf("first Update() description = %v, want %q", first.Description, notes)
	}

	// Bob saves a stale form: old name, no description. His write replaces
	// every mutable field, dropping Alice's rename and her notes.
	second, err := svc.Update(authedCtx(bobID), UpdateInput{
		TripID:      tripID,
		Name:        "Trip",
		Destination: "Somewhere Else",
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if second.Name != "Trip" || second.Destination != "Somewhere Else" {
		t.Errorf("second Update() = %q to %q, want Bob's full field set", second.Name, second.Destination)
	}
	if second.Description != nil {
		t.Errorf("second Update() description = %q, want Alice's notes overwritten", *second.Description)
	}
	if persisted.Name != "Trip" || persisted.Description != nil {
		t.Errorf("persisted trip = %+v, want last write to own every field", persisted)
	}
	if second.CreatorID != aliceID {
		t.Errorf("CreatorID = %s, want unchanged %s", second.CreatorID, aliceID)
	}
	if len(second.Participants) != 2 {
		t.Errorf("participants = %d, want membership untouched by updates", len(second.Participants))
	}
}

func TestService_Update_NonParticipantForbidden(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	owner := uuid.New()

	trips := &tripRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			return tripWithParticipant(tripID, owner, domain.RoleCreator), nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	now := time.Now()
	_, err := svc.Update(authedCtx(uuid.New()), UpdateInput{
		TripID:      tripID,
		Name:        "X",
		Destination: "Y",
		StartDate:   now,
		EndDate:     now.Add(time.Hour),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Update() error = %v, want ErrForbidden", err)
	}
}

// ─── Delete ─────────────────────────────────────────────────────────────────

func TestService_Delete_OrderAndCreatorOnly(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	creatorID := uuid.New()

	activities := &activityRepoMock{
		DeleteByTripFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	trips := &tripRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			return tripWithParticipant(tripID, creatorID, domain.RoleCreator), nil
		},
		DeleteParticipantsByTripFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
		DeleteInvitationsByTripFunc:  func(ctx context.Context, id uuid.UUID) error { return nil },
		DeleteFunc:                   func(ctx context.Context, id uuid.UUID) error { return nil },
	}

	svc := NewService(discardLogger(), trips, activities, &userRepoMock{}, passthroughTx{})

	if err := svc.Delete(authedCtx(creatorID), tripID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	want := []string{"GetByID", "DeleteParticipantsByTrip", "DeleteInvitationsByTrip", "Delete"}
	if len(trips.Calls) != len(want) {
		t.Fatalf("calls = %v, want %v", trips.Calls, want)
	}
	for i := range want {
		if trips.Calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v (index rows before root)", trips.Calls, want)
		}
	}
}

func TestService_Delete_RootNotReachedWhenIndexDeleteFails(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	creatorID := uuid.New()

	trips := &tripRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			return tripWithParticipant(tripID, creatorID, domain.RoleCreator), nil
		},
		DeleteParticipantsByTripFunc: func(ctx context.Context, id uuid.UUID) error {
			return errors.New("index delete failed")
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			t.Error("root Delete must not run after an index failure")
			return nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	if err := svc.Delete(authedCtx(creatorID), tripID); err == nil {
		t.Fatal("Delete() should propagate the index failure")
	}
}

func TestService_Delete_NonCreatorForbidden(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	creatorID := uuid.New()
	memberID := uuid.New()

	tr := tripWithParticipant(tripID, creatorID, domain.RoleCreator)
	tr.Participants = append(tr.Participants, domain.Participant{
		TripID: tripID, UserID: memberID, Role: domain.RoleMember,
	})

	trips := &tripRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			return tr, nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	if err := svc.Delete(authedCtx(memberID), tripID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Delete() error = %v, want ErrForbidden", err)
	}
}

// ─── Invite ─────────────────────────────────────────────────────────────────

func TestService_Invite_NormalizesAndDeduplicates(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	userID := uuid.New()

	var invited []domain.Invitation
	trips := &tripRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			return tripWithParticipant(tripID, userID, domain.RoleCreator), nil
		},
		UpsertInvitationFunc: func(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
			invited = append(invited, *inv)
			return inv, nil
		},
		TouchFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	result, err := svc.Invite(authedCtx(userID), InviteInput{
		TripID: tripID,
		Emails: []string{"  Friend@Example.COM ", "friend@example.com", "other@example.com"},
	})
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}

	if len(invited) != 2 {
		t.Fatalf("UpsertInvitation calls = %d, want 2 (duplicate collapsed)", len(invited))
	}
	if invited[0].Email != "friend@example.com" || invited[1].Email != "other@example.com" {
		t.Errorf("invited emails = %q, %q", invited[0].Email, invited[1].Email)
	}
	for _, inv := range result {
		if inv.Status != domain.InvitationPending {
			t.Errorf("invitation %s status = %s, want pending", inv.Email, inv.Status)
		}
	}
}

func TestService_Invite_TouchesTrip(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	userID := uuid.New()
	touched := false

	trips := &tripRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			return tripWithParticipant(tripID, userID, domain.RoleCreator), nil
		},
		UpsertInvitationFunc: func(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
			return inv, nil
		},
		TouchFunc: func(ctx context.Context, id uuid.UUID) error {
			touched = true
			return nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	_, err := svc.Invite(authedCtx(userID), InviteInput{
		TripID: tripID,
		Emails: []string{"friend@example.com"},
	})
	if err != nil {
		t.Fatalf("Invite() error = %v", err)
	}
	if !touched {
		t.Error("Invite() should bump the trip's updated_at")
	}
}

func TestService_Invite_EmptyListRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(discardLogger(), &tripRepoMock{}, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	_, err := svc.Invite(authedCtx(uuid.New()), InviteInput{TripID: uuid.New()})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Invite() error = %v, want ErrValidation", err)
	}
}

// ─── Respond ────────────────────────────────────────────────────────────────

func respondFixture(t *testing.T, tripID, callerID uuid.UUID, email string) (*tripRepoMock, *userRepoMock, *domain.Invitation) {
	t.Helper()

	inv := &domain.Invitation{
		ID:     uuid.New(),
		TripID: tripID,
		Email:  domain.NormalizeEmail(email),
		Status: domain.InvitationPending,
	}

	trips := &tripRepoMock{
		GetInvitationFunc: func(ctx context.Context, tID, iID uuid.UUID) (*domain.Invitation, error) {
			if tID != tripID || iID != inv.ID {
				return nil, domain.ErrNotFound
			}
			return inv, nil
		},
		UpdateInvitationStatusFunc: func(ctx context.Context, id uuid.UUID, status domain.InvitationStatus) (*domain.Invitation, error) {
			updated := *inv
			updated.Status = status
			return &updated, nil
		},
	}

	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: callerID, Email: domain.NormalizeEmail(email)}, nil
		},
	}

	return trips, users, inv
}

func TestService_Respond_AcceptAddsMember(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	callerID := uuid.New()

	trips, users, inv := respondFixture(t, tripID, callerID, "friend@example.com")
	users.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{ID: callerID, Email: email}, nil
	}

	var added *domain.Participant
	trips.AddParticipantFunc = func(ctx context.Context, p *domain.Participant) error {
		added = p
		return nil
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, users, passthroughTx{})

	updated, err := svc.Respond(authedCtx(callerID), tripID, inv.ID, true)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if updated.Status != domain.InvitationAccepted {
		t.Errorf("status = %s, want accepted", updated.Status)
	}
	if added == nil {
		t.Fatal("participant was not added on accept")
	}
	if added.Role != domain.RoleMember {
		t.Errorf("participant role = %s, want member", added.Role)
	}
}

func TestService_Respond_AcceptWithoutAccount(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	callerID := uuid.New()

	trips, users, inv := respondFixture(t, tripID, callerID, "friend@example.com")
	users.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, domain.ErrNotFound
	}
	trips.AddParticipantFunc = func(ctx context.Context, p *domain.Participant) error {
		t.Error("AddParticipant must not run when no account matches the address")
		return nil
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, users, passthroughTx{})

	// The invitation still flips to accepted even though nobody joins.
	updated, err := svc.Respond(authedCtx(callerID), tripID, inv.ID, true)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if updated.Status != domain.InvitationAccepted {
		t.Errorf("status = %s, want accepted despite missing account", updated.Status)
	}
}

func TestService_Respond_DeclineNeverTouchesParticipants(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	callerID := uuid.New()

	trips, users, inv := respondFixture(t, tripID, callerID, "friend@example.com")
	trips.AddParticipantFunc = func(ctx context.Context, p *domain.Participant) error {
		t.Error("AddParticipant must not run on decline")
		return nil
	}
	users.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		t.Error("GetByEmail must not run on decline")
		return nil, domain.ErrNotFound
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, users, passthroughTx{})

	updated, err := svc.Respond(authedCtx(callerID), tripID, inv.ID, false)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if updated.Status != domain.InvitationDeclined {
		t.Errorf("status = %s, want declined", updated.Status)
	}
}

func TestService_Respond_NonPendingConflict(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	callerID := uuid.New()

	trips, users, inv := respondFixture(t, tripID, callerID, "friend@example.com")
	inv.Status = domain.InvitationDeclined

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, users, passthroughTx{})

	_, err := svc.Respond(authedCtx(callerID), tripID, inv.ID, true)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("Respond() error = %v, want ErrConflict", err)
	}
}

func TestService_Respond_WrongAddressForbidden(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	callerID := uuid.New()

	trips, users, inv := respondFixture(t, tripID, callerID, "friend@example.com")
	users.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: callerID, Email: "someone-else@example.com"}, nil
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, users, passthroughTx{})

	_, err := svc.Respond(authedCtx(callerID), tripID, inv.ID, true)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Respond() error = %v, want ErrForbidden", err)
	}
}

func TestService_Respond_WrongTripNotFound(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	callerID := uuid.New()

	trips, users, inv := respondFixture(t, tripID, callerID, "friend@example.com")

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, users, passthroughTx{})

	_, err := svc.Respond(authedCtx(callerID), uuid.New(), inv.ID, true)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Respond() error = %v, want ErrNotFound", err)
	}
}

// ─── PendingInvitations / CancelInvitation ──────────────────────────────────

func TestService_PendingInvitations(t *testing.T) {
	t.Parallel()

	callerID := uuid.New()
	tripID := uuid.New()

	trips := &tripRepoMock{
		ListPendingByEmailFunc: func(ctx context.Context, email string) ([]domain.Invitation, error) {
			if email != "carol@example.com" {
				t.Errorf("ListPendingByEmail(%q), want normalized caller email", email)
			}
			return []domain.Invitation{{ID: uuid.New(), TripID: tripID, Email: email, Status: domain.InvitationPending}}, nil
		},
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			return &domain.Trip{ID: id, Name: "Weekend"}, nil
		},
	}
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: callerID, Email: "Carol@Example.com"}, nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, users, passthroughTx{})

	got, err := svc.PendingInvitations(authedCtx(callerID))
	if err != nil {
		t.Fatalf("PendingInvitations() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != tripID {
		t.Errorf("PendingInvitations() = %+v", got)
	}
}

func TestService_CancelInvitation(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	invID := uuid.New()
	userID := uuid.New()
	deleted := false

	trips := &tripRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
			return tripWithParticipant(tripID, userID, domain.RoleCreator), nil
		},
		DeleteInvitationFunc: func(ctx context.Context, tID, iID uuid.UUID) error {
			if tID != tripID || iID != invID {
				t.Errorf("DeleteInvitation(%s, %s)", tID, iID)
			}
			deleted = true
			return nil
		},
	}

	svc := NewService(discardLogger(), trips, &activityRepoMock{}, &userRepoMock{}, passthroughTx{})

	if err := svc.CancelInvitation(authedCtx(userID), tripID, invID); err != nil {
		t.Fatalf("CancelInvitation() error = %v", err)
	}
	if !deleted {
		t.Error("invitation row was not deleted")
	}
}
