package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/triptribe/backend/internal/domain"
)

// Function-field test doubles for the consumer-side interfaces.

type userRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc         func(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, passwordHash string) error
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.UpdatePasswordFunc(ctx, id, passwordHash)
}

type tokenRepoMock struct {
	CreateFunc           func(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error)
	GetByHashFunc        func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc       func(ctx context.Context, id uuid.UUID) error
	RevokeAllForUserFunc func(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredFunc    func(ctx context.Context) (int64, error)

	CreateResetFunc    func(ctx context.Context, t *domain.PasswordResetToken) (*domain.PasswordResetToken, error)
	GetResetByHashFunc func(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error)
	MarkResetUsedFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	return m.RevokeByIDFunc(ctx, id)
}

func (m *tokenRepoMock) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.RevokeAllForUserFunc(ctx, userID)
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context) (int64, error) {
	return m.DeleteExpiredFunc(ctx)
}

func (m *tokenRepoMock) CreateReset(ctx context.Context, t *domain.PasswordResetToken) (*domain.PasswordResetToken, error) {
	return m.CreateResetFunc(ctx, t)
}

func (m *tokenRepoMock) GetResetByHash(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	return m.GetResetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) MarkResetUsed(ctx context.Context, id uuid.UUID) error {
	return m.MarkResetUsedFunc(ctx, id)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID) (string, error)
	ValidateAccessTokenFunc  func(token string) (uuid.UUID, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.GenerateAccessTokenFunc(userID)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, error) {
	return m.ValidateAccessTokenFunc(token)
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	return m.GenerateRefreshTokenFunc()
}

// workingJWTMock returns a jwt mock that always succeeds.
func workingJWTMock() *jwtManagerMock {
	return &jwtManagerMock{
		GenerateAccessTokenFunc: func(userID uuid.UUID) (string, error) {
			return "access_token", nil
		},
		GenerateRefreshTokenFunc: func() (string, string, error) {
			return "raw_refresh", "hash_refresh", nil
		},
	}
}

// storingTokenMock returns a token repo mock whose Create echoes its input.
func storingTokenMock() *tokenRepoMock {
	return &tokenRepoMock{
		CreateFunc: func(ctx context.Context, token *domain.RefreshToken) (*domain.RefreshToken, error) {
			return token, nil
		},
	}
}
