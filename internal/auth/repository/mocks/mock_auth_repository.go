package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Adal612Git/miNegocioApp-backend/internal/auth/domain"
)

type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) CreateBusiness(ctx context.Context, business *domain.Business) error {
	args := m.Called(ctx, business)
	if args.Error(0) == nil {
		business.ID = "mock-business-id"
	}
	return args.Error(0)
}

func (m *MockAuthRepository) FindBusinessByID(ctx context.Context, id string) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if business := args.Get(0); business != nil {
		return business.(*domain.Business), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = "mock-user-id"
	}
	return args.Error(0)
}

func (m *MockAuthRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockAuthRepository) CreatePasswordReset(ctx context.Context, reset *domain.PasswordReset) error {
	args := m.Called(ctx, reset)
	if args.Error(0) == nil {
		reset.ID = "mock-reset-id"
	}
	return args.Error(0)
}

func (m *MockAuthRepository) FindPasswordResetByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error) {
	args := m.Called(ctx, tokenHash)
	if reset := args.Get(0); reset != nil {
		return reset.(*domain.PasswordReset), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) DeletePasswordReset(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAuthRepository) DeleteExpiredPasswordResets(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
