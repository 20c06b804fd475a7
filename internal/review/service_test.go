package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yaarfetch-be/internal/apperr"
	"yaarfetch-be/internal/match"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateReview(ctx context.Context, rv *Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockRepository) GetReview(ctx context.Context, reviewID string) (*Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) ListReviewsForSubject(ctx context.Context, subjectID string, limit, offset int32) ([]*Review, error) {
	args := m.Called(ctx, subjectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Review), args.Error(1)
}

type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) AcceptOfferTx(ctx context.Context, ma *match.Match) error {
	args := m.Called(ctx, ma)
	return args.Error(0)
}

func (m *MockMatchRepository) AdvanceMatchTx(ctx context.Context, ma *match.Match, target match.Status) error {
	args := m.Called(ctx, ma, target)
	return args.Error(0)
}

func (m *MockMatchRepository) GetMatch(ctx context.Context, matchID string) (*match.Match, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*match.Match), args.Error(1)
}

func (m *MockMatchRepository) ListMatchesForOrder(ctx context.Context, orderID string, limit, offset int32) ([]*match.Match, error) {
	args := m.Called(ctx, orderID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*match.Match), args.Error(1)
}

func (m *MockMatchRepository) ListMatchesForOffer(ctx context.Context, offerID string, limit, offset int32) ([]*match.Match, error) {
	args := m.Called(ctx, offerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*match.Match), args.Error(1)
}

func (m *MockMatchRepository) ListMatchesForUser(ctx context.Context, userID string, limit, offset int32) ([]*match.Match, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*match.Match), args.Error(1)
}

func storedMatch(status match.Status) *match.Match {
	return &match.Match{
		ID:          "m-1",
		OrderID:     "o-1",
		OfferID:     "f-1",
		RequesterID: "u-1",
		CourierID:   "u-2",
		Status:      status,
	}
}

func TestService_CreateReview(t *testing.T) {
	ctx := context.Background()

	input := CreateReviewInput{
		MatchID:   "m-1",
		SubjectID: "u-2",
		Rating:    5,
		Comment:   "fast and friendly",
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		matches := new(MockMatchRepository)
		svc := NewService(repo, matches)

		matches.On("GetMatch", ctx, "m-1").Return(storedMatch(match.StatusCompleted), nil)
		repo.On("CreateReview", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

		rv, err := svc.CreateReview(ctx, "u-1", input)
		require.NoError(t, err)
		assert.NotEmpty(t, rv.ID)
		assert.Equal(t, "u-1", rv.AuthorID)
		assert.Equal(t, "u-2", rv.SubjectID)
		repo.AssertExpectations(t)
	})

	t.Run("CourierReviewsRequester", func(t *testing.T) {
		repo := new(MockRepository)
		matches := new(MockMatchRepository)
		svc := NewService(repo, matches)

		matches.On("GetMatch", ctx, "m-1").Return(storedMatch(match.StatusCompleted), nil)
		repo.On("CreateReview", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

		reversed := input
		reversed.SubjectID = "u-1"
		rv, err := svc.CreateReview(ctx, "u-2", reversed)
		require.NoError(t, err)
		assert.Equal(t, "u-2", rv.AuthorID)
		assert.Equal(t, "u-1", rv.SubjectID)
	})

	t.Run("MatchNotComplete", func(t *testing.T) {
		repo := new(MockRepository)
		matches := new(MockMatchRepository)
		svc := NewService(repo, matches)

		matches.On("GetMatch", ctx, "m-1").Return(storedMatch(match.StatusDelivered), nil)

		_, err := svc.CreateReview(ctx, "u-1", input)
		assert.ErrorIs(t, err, ErrMatchNotComplete)
		repo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})

	t.Run("SelfReview", func(t *testing.T) {
		repo := new(MockRepository)
		matches := new(MockMatchRepository)
		svc := NewService(repo, matches)

		matches.On("GetMatch", ctx, "m-1").Return(storedMatch(match.StatusCompleted), nil)

		self := input
		self.SubjectID = "u-1"
		_, err := svc.CreateReview(ctx, "u-1", self)
		assert.ErrorIs(t, err, ErrNotParticipants)
	})

	t.Run("OutsiderAuthor", func(t *testing.T) {
		repo := new(MockRepository)
		matches := new(MockMatchRepository)
		svc := NewService(repo, matches)

		matches.On("GetMatch", ctx, "m-1").Return(storedMatch(match.StatusCompleted), nil)

		_, err := svc.CreateReview(ctx, "u-9", input)
		assert.ErrorIs(t, err, ErrNotParticipants)
	})

	t.Run("OutsiderSubject", func(t *testing.T) {
		repo := new(MockRepository)
		matches := new(MockMatchRepository)
		svc := NewService(repo, matches)

		matches.On("GetMatch", ctx, "m-1").Return(storedMatch(match.StatusCompleted), nil)

		outsider := input
		outsider.SubjectID = "u-9"
		_, err := svc.CreateReview(ctx, "u-1", outsider)
		assert.ErrorIs(t, err, ErrNotParticipants)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockMatchRepository))

		for _, rating := range []int{0, -1, 6} {
			bad := input
			bad.Rating = rating
			_, err := svc.CreateReview(ctx, "u-1", bad)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "rating %d", rating)
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		repo := new(MockRepository)
		matches := new(MockMatchRepository)
		svc := NewService(repo, matches)

		matches.On("GetMatch", ctx, "m-1").Return(storedMatch(match.StatusCompleted), nil)
		repo.On("CreateReview", ctx, mock.AnythingOfType("*review.Review")).Return(ErrDuplicateReview)

		_, err := svc.CreateReview(ctx, "u-1", input)
		assert.ErrorIs(t, err, ErrDuplicateReview)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})
}

func TestService_ListReviewsForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockMatchRepository))

		repo.On("ListReviewsForSubject", ctx, "u-2", int32(20), int32(0)).Return([]*Review{}, nil)

		_, err := svc.ListReviewsForUser(ctx, "u-2", 0, 0)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockMatchRepository))

		_, err := svc.ListReviewsForUser(ctx, "", 0, 0)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}
