package user

import (
	"context"
	"strings"

	"yaarfetch-be/internal/apperr"
)

type Service interface {
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUser(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*User, error) {
	if input.DisplayName != nil && strings.TrimSpace(*input.DisplayName) == "" {
		return nil, apperr.Validation("display name cannot be empty")
	}

	if err := s.repo.UpdateProfile(ctx, userID, input); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, userID)
}
