package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
	"github.com/triptribe/backend/internal/service/activity"
	"github.com/triptribe/backend/internal/service/auth"
	"github.com/triptribe/backend/internal/service/trip"
	"github.com/triptribe/backend/internal/service/user"
	"github.com/triptribe/backend/internal/transport/middleware"
)

type authServiceMock struct {
	RegisterFunc func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginFunc    func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	RefreshFunc  func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	LogoutFunc   func(ctx context.Context) error

	RequestPasswordResetFunc func(ctx context.Context, email string) (string, error)
	ResetPasswordFunc        func(ctx context.Context, input auth.ResetPasswordInput) error
}

func (m *authServiceMock) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return m.RequestPasswordResetFunc(ctx, email)
}

func (m *authServiceMock) ResetPassword(ctx context.Context, input auth.ResetPasswordInput) error {
	return m.ResetPasswordFunc(ctx, input)
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
	return m.RefreshFunc(ctx, input)
}

func (m *authServiceMock) Logout(ctx context.Context) error {
	return m.LogoutFunc(ctx)
}

type userServiceMock struct {
	GetFunc           func(ctx context.Context) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, input user.UpdateProfileInput) (*domain.User, error)
	UpdatePhotoFunc   func(ctx context.Context, data []byte, contentType string) (*domain.User, error)
	DeleteAccountFunc func(ctx context.Context) error
}

func (m *userServiceMock) Get(ctx context.Context) (*domain.User, error) {
	return m.GetFunc(ctx)
}

func (m *userServiceMock) UpdateProfile(ctx context.Context, input user.UpdateProfileInput) (*domain.User, error) {
	return m.UpdateProfileFunc(ctx, input)
}

func (m *userServiceMock) UpdatePhoto(ctx context.Context, data []byte, contentType string) (*domain.User, error) {
	return m.UpdatePhotoFunc(ctx, data, contentType)
}

func (m *userServiceMock) DeleteAccount(ctx context.Context) error {
	return m.DeleteAccountFunc(ctx)
}

type tripServiceMock struct {
	CreateFunc             func(ctx context.Context, input trip.CreateInput) (*domain.Trip, error)
	GetFunc                func(ctx context.Context, tripID uuid.UUID) (*domain.Trip, error)
	ListForUserFunc        func(ctx context.Context) ([]domain.Trip, error)
	UpdateFunc             func(ctx context.Context, input trip.UpdateInput) (*domain.Trip, error)
	DeleteFunc             func(ctx context.Context, tripID uuid.UUID) error
	InviteFunc             func(ctx context.Context, input trip.InviteInput) ([]domain.Invitation, error)
	RespondFunc            func(ctx context.Context, tripID, invitationID uuid.UUID, accept bool) (*domain.Invitation, error)
	PendingInvitationsFunc func(ctx context.Context) ([]domain.Trip, error)
	CancelInvitationFunc   func(ctx context.Context, tripID, invitationID uuid.UUID) error
}

func (m *tripServiceMock) Create(ctx context.Context, input trip.CreateInput) (*domain.Trip, error) {
	return m.CreateFunc(ctx, input)
}

func (m *tripServiceMock) Get(ctx context.Context, tripID uuid.UUID) (*domain.Trip, error) {
	return m.GetFunc(ctx, tripID)
}

func (m *tripServiceMock) ListForUser(ctx context.Context) ([]domain.Trip, error) {
	return m.ListForUserFunc(ctx)
}

func (m *tripServiceMock) Update(ctx context.Context, input trip.UpdateInput) (*domain.Trip, error) {
	return m.UpdateFunc(ctx, input)
}

func (m *tripServiceMock) Delete(ctx context.Context, tripID uuid.UUID) error {
	return m.DeleteFunc(ctx, tripID)
}

func (m *tripServiceMock) Invite(ctx context.Context, input trip.InviteInput) ([]domain.Invitation, error) {
	return m.InviteFunc(ctx, input)
}

func (m *tripServiceMock) Respond(ctx context.Context, tripID, invitationID uuid.UUID, accept bool) (*domain.Invitation, error) {
	return m.RespondFunc(ctx, tripID, invitationID, accept)
}

func (m *tripServiceMock) PendingInvitations(ctx context.Context) ([]domain.Trip, error) {
	return m.PendingInvitationsFunc(ctx)
}

func (m *tripServiceMock) CancelInvitation(ctx context.Context, tripID, invitationID uuid.UUID) error {
	return m.CancelInvitationFunc(ctx, tripID, invitationID)
}

type activityServiceMock struct {
	CreateFunc func(ctx context.Context, input activity.Input) (*domain.Activity, error)
	GetFunc    func(ctx context.Context, tripID, id uuid.UUID) (*domain.Activity, error)
	ListFunc   func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, input activity.Input) (*domain.Activity, error)
	DeleteFunc func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *activityServiceMock) Create(ctx context.Context, input activity.Input) (*domain.Activity, error) {
	return m.CreateFunc(ctx, input)
}

func (m *activityServiceMock) Get(ctx context.Context, tripID, id uuid.UUID) (*domain.Activity, error) {
	return m.GetFunc(ctx, tripID, id)
}

func (m *activityServiceMock) List(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.ListFunc(ctx, tripID)
}

func (m *activityServiceMock) Update(ctx context.Context, id uuid.UUID, input activity.Input) (*domain.Activity, error) {
	return m.UpdateFunc(ctx, id, input)
}

func (m *activityServiceMock) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.DeleteFunc(ctx, tripID, id)
}

// staticValidator accepts a single token, resolving it to a fixed user.
type staticValidator struct {
	token  string
	userID uuid.UUID
}

func (v *staticValidator) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	if token != v.token {
		return uuid.Nil, errors.New("invalid token")
	}
	return v.userID, nil
}

// testDeps collects mocks that back a routed test server.
type testDeps struct {
	auths      *authServiceMock
	users      *userServiceMock
	trips      *tripServiceMock
	activities *activityServiceMock
	userID     uuid.UUID
}

const testBearer = "test-access-token"

// newTestRouter assembles the real route tree over mocked services, with
// the auth middleware resolving testBearer to deps.userID.
func newTestRouter(t *testing.T, deps testDeps) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := Handlers{
		Auth:     NewAuthHandler(deps.auths, logger),
		Me:       NewMeHandler(deps.users, logger),
		Trip:     NewTripHandler(deps.trips, logger),
		Activity: NewActivityHandler(deps.activities, logger),
		Health:   NewHealthHandler(&dbPingerMock{}, "test"),
	}

	base := middleware.Chain(
		middleware.Auth(&staticValidator{token: testBearer, userID: deps.userID}),
	)

	return NewRouter(h, base)
}
