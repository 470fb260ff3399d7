package usecase_test

import (
	"context"
	"testing"

	"go-devnet-backend/internal/domain"
	"go-devnet-backend/pkg/apperror"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) profile(args mock.Arguments) (*domain.Profile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, userID))
}
func (m *MockProfileRepo) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, handle))
}
func (m *MockProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockProfileRepo) Update(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.Profile, error) {
	return m.profile(m.Called(ctx, userID, fields))
}
func (m *MockProfileRepo) SaveEntries(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockProfileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) post(args mock.Arguments) (*domain.Post, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return m.post(m.Called(ctx, id))
}
func (m *MockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}
func (m *MockPostRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPostRepo) AddLike(ctx context.Context, postID string, like domain.Like) (*domain.Post, error) {
	return m.post(m.Called(ctx, postID, like))
}
func (m *MockPostRepo) RemoveLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	return m.post(m.Called(ctx, postID, userID))
}

// asAppError unwraps err and fails the test when it is not an AppError.
func asAppError(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr
}
