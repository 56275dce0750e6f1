package trip

import (
	"context"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
)

// tripRepoMock is a function-field test double for tripRepo. Calls records
// the method names in invocation order, which the delete-ordering tests
// assert on.
type tripRepoMock struct {
	Calls []string

	CreateFunc                   func(ctx context.Context, t *domain.Trip) (*domain.Trip, error)
	GetByIDFunc                  func(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	ListIDsForUserFunc           func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	UpdateFunc                   func(ctx context.Context, t *domain.Trip) (*domain.Trip, error)
	TouchFunc                    func(ctx context.Context, id uuid.UUID) error
	DeleteFunc                   func(ctx context.Context, id uuid.UUID) error
	AddParticipantFunc           func(ctx context.Context, p *domain.Participant) error
	DeleteParticipantsByTripFunc func(ctx context.Context, tripID uuid.UUID) error
	UpsertInvitationFunc         func(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error)
	GetInvitationFunc            func(ctx context.Context, tripID, invitationID uuid.UUID) (*domain.Invitation, error)
	UpdateInvitationStatusFunc   func(ctx context.Context, id uuid.UUID, status domain.InvitationStatus) (*domain.Invitation, error)
	DeleteInvitationFunc         func(ctx context.Context, tripID, invitationID uuid.UUID) error
	DeleteInvitationsByTripFunc  func(ctx context.Context, tripID uuid.UUID) error
	ListPendingByEmailFunc       func(ctx context.Context, email string) ([]domain.Invitation, error)
}

func (m *tripRepoMock) record(name string) {
	m.Calls = append(m.Calls, name)
}

func (m *tripRepoMock) Create(ctx context.Context, t *domain.Trip) (*domain.Trip, error) {
	m.record("Create")
	return m.CreateFunc(ctx, t)
}

func (m *tripRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	m.record("GetByID")
	return m.GetByIDFunc(ctx, id)
}

func (m *tripRepoMock) ListIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	m.record("ListIDsForUser")
	return m.ListIDsForUserFunc(ctx, userID)
}

func (m *tripRepoMock) Update(ctx context.Context, t *domain.Trip) (*domain.Trip, error) {
	m.record("Update")
	return m.UpdateFunc(ctx, t)
}

func (m *tripRepoMock) Touch(ctx context.Context, id uuid.UUID) error {
	m.record("Touch")
	return m.TouchFunc(ctx, id)
}

func (m *tripRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.record("Delete")
	return m.DeleteFunc(ctx, id)
}

func (m *tripRepoMock) AddParticipant(ctx context.Context, p *domain.Participant) error {
	m.record("AddParticipant")
	return m.AddParticipantFunc(ctx, p)
}

func (m *tripRepoMock) DeleteParticipantsByTrip(ctx context.Context, tripID uuid.UUID) error {
	m.record("DeleteParticipantsByTrip")
	return m.DeleteParticipantsByTripFunc(ctx, tripID)
}

func (m *tripRepoMock) UpsertInvitation(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	m.record("UpsertInvitation")
	return m.UpsertInvitationFunc(ctx, inv)
}

func (m *tripRepoMock) GetInvitation(ctx context.Context, tripID, invitationID uuid.UUID) (*domain.Invitation, error) {
	m.record("GetInvitation")
	return m.GetInvitationFunc(ctx, tripID, invitationID)
}

func (m *tripRepoMock) UpdateInvitationStatus(ctx context.Context, id uuid.UUID, status domain.InvitationStatus) (*domain.Invitation, error) {
	m.record("UpdateInvitationStatus")
	return m.UpdateInvitationStatusFunc(ctx, id, status)
}

func (m *tripRepoMock) DeleteInvitation(ctx context.Context, tripID, invitationID uuid.UUID) error {
	m.record("DeleteInvitation")
	return m.DeleteInvitationFunc(ctx, tripID, invitationID)
}

func (m *tripRepoMock) DeleteInvitationsByTrip(ctx context.Context, tripID uuid.UUID) error {
	m.record("DeleteInvitationsByTrip")
	return m.DeleteInvitationsByTripFunc(ctx, tripID)
}

func (m *tripRepoMock) ListPendingByEmail(ctx context.Context, email string) ([]domain.Invitation, error) {
	m.record("ListPendingByEmail")
	return m.ListPendingByEmailFunc(ctx, email)
}

type activityRepoMock struct {
	Calls []string

	DeleteByTripFunc func(ctx context.Context, tripID uuid.UUID) error
}

func (m *activityRepoMock) DeleteByTrip(ctx context.Context, tripID uuid.UUID) error {
	m.Calls = append(m.Calls, "DeleteByTrip")
	return m.DeleteByTripFunc(ctx, tripID)
}

type userRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

// passthroughTx runs the callback without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
