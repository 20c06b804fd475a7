package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yaarfetch-be/internal/apperr"
	"yaarfetch-be/internal/events"
	"yaarfetch-be/internal/logger"
	"yaarfetch-be/internal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service interface {
	CreateOrder(ctx context.Context, requesterID string, input CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	CancelOrder(ctx context.Context, orderID, actorID string) (*Order, error)
	ListOpenOrders(ctx context.Context, limit, page int32) ([]*Order, error)
	ListMyOrders(ctx context.Context, requesterID string, limit, page int32) ([]*Order, error)
}

type service struct {
	repo   Repository
	events events.Publisher
}

func NewService(repo Repository, pub events.Publisher) Service {
	return &service{repo: repo, events: pub}
}

func (s *service) CreateOrder(ctx context.Context, requesterID string, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("requester_id", requesterID),
	)

	if requesterID == "" {
		return nil, apperr.Forbidden("missing requester identity")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperr.Validation("description is required")
	}
	if strings.TrimSpace(input.Pickup) == "" {
		return nil, apperr.Validation("pickup location is required")
	}
	if strings.TrimSpace(input.Dropoff) == "" {
		return nil, apperr.Validation("dropoff location is required")
	}
	if input.Price <= 0 {
		return nil, apperr.Validation("price must be greater than zero")
	}

	o := &Order{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		Description: strings.TrimSpace(input.Description),
		Pickup:      strings.TrimSpace(input.Pickup),
		Dropoff:     strings.TrimSpace(input.Dropoff),
		Price:       input.Price,
		Status:      StatusOpen,
		CreatedAt:   time.Now(),
	}
	o.UpdatedAt = o.CreatedAt

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	s.events.Publish(events.Event{
		Entity:    "order",
		EntityID:  o.ID,
		NewStatus: string(StatusOpen),
		ActorID:   requesterID,
		At:        o.CreatedAt,
	})

	log.Info("order created", zap.String("order_id", o.ID))
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

func (s *service) CancelOrder(ctx context.Context, orderID, actorID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.String("order_id", orderID),
		zap.String("actor_id", actorID),
	)

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.RequesterID != actorID {
		log.Warn("cancel attempt by non-requester")
		return nil, ErrNotRequester
	}
	if !o.Status.Cancellable() {
		return nil, ErrNotCancellable
	}

	// State is re-checked inside the transaction under the row lock.
	if err := s.repo.CancelOrderTx(ctx, orderID); err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{
		Entity:    "order",
		EntityID:  o.ID,
		OldStatus: string(o.Status),
		NewStatus: string(StatusCancelled),
		ActorID:   actorID,
		At:        time.Now(),
	})

	o.Status = StatusCancelled
	return o, nil
}

func (s *service) ListOpenOrders(ctx context.Context, limit, page int32) ([]*Order, error) {
	l, offset := utils.NormalizePage(limit, page, defaultPageSize, maxPageSize)
	return s.repo.ListOpenOrders(ctx, l, offset)
}

func (s *service) ListMyOrders(ctx context.Context, requesterID string, limit, page int32) ([]*Order, error) {
	l, offset := utils.NormalizePage(limit, page, defaultPageSize, maxPageSize)
	return s.repo.ListOrdersByRequester(ctx, requesterID, l, offset)
}
