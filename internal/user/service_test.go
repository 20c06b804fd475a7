package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yaarfetch-be/internal/apperr"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUser(ctx context.Context, userID string) (*User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) EnsureUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) error {
	args := m.Called(ctx, userID, input)
	return args.Error(0)
}

func TestService_GetProfile(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetUser", ctx, "u-1").Return(&User{ID: "u-1", DisplayName: "Alex"}, nil)

	u, err := svc.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Alex", u.DisplayName)
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		input := UpdateProfileInput{DisplayName: strPtr("Sam")}
		repo.On("UpdateProfile", ctx, "u-1", input).Return(nil)
		repo.On("GetUser", ctx, "u-1").Return(&User{ID: "u-1", DisplayName: "Sam"}, nil)

		u, err := svc.UpdateProfile(ctx, "u-1", input)
		require.NoError(t, err)
		assert.Equal(t, "Sam", u.DisplayName)
		repo.AssertExpectations(t)
	})

	t.Run("EmptyDisplayName", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.UpdateProfile(ctx, "u-1", UpdateProfileInput{DisplayName: strPtr("   ")})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		input := UpdateProfileInput{Campus: strPtr("South Campus")}
		repo.On("UpdateProfile", ctx, "missing", input).Return(ErrUserNotFound)

		_, err := svc.UpdateProfile(ctx, "missing", input)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
