package offer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yaarfetch-be/internal/apperr"
	"yaarfetch-be/internal/logger"
	"yaarfetch-be/internal/order"
	"yaarfetch-be/internal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service interface {
	CreateOffer(ctx context.Context, courierID string, input CreateOfferInput) (*Offer, error)
	GetOffer(ctx context.Context, offerID string) (*Offer, error)
	WithdrawOffer(ctx context.Context, offerID, actorID string) (*Offer, error)
	UpdateOfferPrice(ctx context.Context, offerID, actorID string, price float64) (*Offer, error)
	ListOffersForOrder(ctx context.Context, orderID string, limit, page int32) ([]*Offer, error)
	ListMyOffers(ctx context.Context, courierID string, limit, page int32) ([]*Offer, error)
}

type service struct {
	repo   Repository
	orders order.Repository
}

func NewService(repo Repository, orders order.Repository) Service {
	return &service{repo: repo, orders: orders}
}

func (s *service) CreateOffer(ctx context.Context, courierID string, input CreateOfferInput) (*Offer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOffer"),
		zap.String("order_id", input.OrderID),
		zap.String("courier_id", courierID),
	)

	if courierID == "" {
		return nil, apperr.Forbidden("missing courier identity")
	}
	if input.OrderID == "" {
		return nil, apperr.Validation("order id is required")
	}
	if input.Price <= 0 {
		return nil, apperr.Validation("price must be greater than zero")
	}

	ord, err := s.orders.GetOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if ord.Status != order.StatusOpen {
		return nil, ErrOrderNotOpen
	}
	if ord.RequesterID == courierID {
		return nil, ErrSelfOffer
	}

	o := &Offer{
		ID:        uuid.New().String(),
		OrderID:   input.OrderID,
		CourierID: courierID,
		Price:     input.Price,
		Note:      input.Note,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	o.UpdatedAt = o.CreatedAt

	if err := s.repo.CreateOffer(ctx, o); err != nil {
		log.Error("failed to create offer", zap.Error(err))
		return nil, err
	}

	log.Info("offer created", zap.String("offer_id", o.ID))
	return o, nil
}

func (s *service) GetOffer(ctx context.Context, offerID string) (*Offer, error) {
	return s.repo.GetOffer(ctx, offerID)
}

func (s *service) WithdrawOffer(ctx context.Context, offerID, actorID string) (*Offer, error) {
	o, err := s.authorizePendingChange(ctx, offerID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.WithdrawOffer(ctx, offerID); err != nil {
		return nil, err
	}

	o.Status = StatusWithdrawn
	return o, nil
}

func (s *service) UpdateOfferPrice(ctx context.Context, offerID, actorID string, price float64) (*Offer, error) {
	if price <= 0 {
		return nil, apperr.Validation("price must be greater than zero")
	}

	o, err := s.authorizePendingChange(ctx, offerID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOfferPrice(ctx, offerID, price); err != nil {
		return nil, err
	}

	o.Price = price
	return o, nil
}

// authorizePendingChange loads the offer and verifies the actor owns it
// and it is still open to mutation. Non-PENDING offers are immutable.
func (s *service) authorizePendingChange(ctx context.Context, offerID, actorID string) (*Offer, error) {
	o, err := s.repo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if o.CourierID != actorID {
		return nil, ErrNotCourier
	}
	if o.Status != StatusPending {
		return nil, ErrOfferNotPending
	}
	return o, nil
}

func (s *service) ListOffersForOrder(ctx context.Context, orderID string, limit, page int32) ([]*Offer, error) {
	if orderID == "" {
		return nil, apperr.Validation("order id is required")
	}
	l, offset := utils.NormalizePage(limit, page, defaultPageSize, maxPageSize)
	return s.repo.ListOffersForOrder(ctx, orderID, l, offset)
}

func (s *service) ListMyOffers(ctx context.Context, courierID string, limit, page int32) ([]*Offer, error) {
	l, offset := utils.NormalizePage(limit, page, defaultPageSize, maxPageSize)
	return s.repo.ListOffersByCourier(ctx, courierID, l, offset)
}
