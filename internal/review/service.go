package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yaarfetch-be/internal/apperr"
	"yaarfetch-be/internal/logger"
	"yaarfetch-be/internal/match"
	"yaarfetch-be/internal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service interface {
	CreateReview(ctx context.Context, authorID string, input CreateReviewInput) (*Review, error)
	GetReview(ctx context.Context, reviewID string) (*Review, error)
	ListReviewsForUser(ctx context.Context, userID string, limit, page int32) ([]*Review, error)
}

type service struct {
	repo    Repository
	matches match.Repository
}

func NewService(repo Repository, matches match.Repository) Service {
	return &service{repo: repo, matches: matches}
}

func (s *service) CreateReview(ctx context.Context, authorID string, input CreateReviewInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateReview"),
		zap.String("match_id", input.MatchID),
		zap.String("author_id", authorID),
	)

	if input.MatchID == "" {
		return nil, apperr.Validation("match id is required")
	}
	if input.SubjectID == "" {
		return nil, apperr.Validation("subject id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	mt, err := s.matches.GetMatch(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if mt.Status != match.StatusCompleted {
		return nil, ErrMatchNotComplete
	}

	// Author and subject must be the two participants, in either
	// direction, and never the same person.
	if authorID == input.SubjectID ||
		!mt.Participant(authorID) ||
		!mt.Participant(input.SubjectID) {
		log.Warn("review participants check failed")
		return nil, ErrNotParticipants
	}

	rv := &Review{
		ID:        uuid.New().String(),
		MatchID:   input.MatchID,
		AuthorID:  authorID,
		SubjectID: input.SubjectID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateReview(ctx, rv); err != nil {
		log.Warn("failed to create review", zap.Error(err))
		return nil, err
	}

	log.Info("review created", zap.String("review_id", rv.ID))
	return rv, nil
}

func (s *service) GetReview(ctx context.Context, reviewID string) (*Review, error) {
	return s.repo.GetReview(ctx, reviewID)
}

func (s *service) ListReviewsForUser(ctx context.Context, userID string, limit, page int32) ([]*Review, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	l, offset := utils.NormalizePage(limit, page, defaultPageSize, maxPageSize)
	return s.repo.ListReviewsForSubject(ctx, userID, l, offset)
}
