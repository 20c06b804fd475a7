package message

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yaarfetch-be/internal/apperr"
	"yaarfetch-be/internal/logger"
	"yaarfetch-be/internal/match"
	"yaarfetch-be/internal/utils"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
	maxBodyLength   = 4000
)

type Service interface {
	SendMessage(ctx context.Context, matchID, senderID, body string) (*Message, error)
	ListMessages(ctx context.Context, matchID, actorID string, limit, page int32) ([]*Message, error)
}

type service struct {
	repo    Repository
	matches match.Repository
}

func NewService(repo Repository, matches match.Repository) Service {
	return &service{repo: repo, matches: matches}
}

func (s *service) SendMessage(ctx context.Context, matchID, senderID, body string) (*Message, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SendMessage"),
		zap.String("match_id", matchID),
		zap.String("sender_id", senderID),
	)

	body = strings.TrimSpace(body)
	if matchID == "" {
		return nil, apperr.Validation("match id is required")
	}
	if body == "" {
		return nil, apperr.Validation("message body is required")
	}
	if len(body) > maxBodyLength {
		return nil, apperr.Validation("message body is too long")
	}

	mt, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !mt.Participant(senderID) {
		log.Warn("message attempt by non-participant")
		return nil, ErrNotParticipant
	}
	if mt.Status == match.StatusCancelled {
		return nil, ErrMatchCancelled
	}

	m := &Message{
		ID:       uuid.New().String(),
		MatchID:  matchID,
		SenderID: senderID,
		Body:     body,
		SentAt:   time.Now(),
	}

	if err := s.repo.CreateMessage(ctx, m); err != nil {
		log.Error("failed to store message", zap.Error(err))
		return nil, err
	}

	return m, nil
}

func (s *service) ListMessages(ctx context.Context, matchID, actorID string, limit, page int32) ([]*Message, error) {
	mt, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !mt.Participant(actorID) {
		return nil, ErrNotParticipant
	}

	l, offset := utils.NormalizePage(limit, page, defaultPageSize, maxPageSize)
	return s.repo.ListMessagesForMatch(ctx, matchID, l, offset)
}
