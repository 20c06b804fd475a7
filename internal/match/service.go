package match

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yaarfetch-be/internal/apperr"
	"yaarfetch-be/internal/events"
	"yaarfetch-be/internal/logger"
	"yaarfetch-be/internal/offer"
	"yaarfetch-be/internal/order"
	"yaarfetch-be/internal/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service interface {
	// AcceptOffer is the single entry point that turns a pending offer
	// into a match. All preconditions are re-verified inside the
	// repository transaction; the checks here exist to give callers
	// precise errors on the common paths.
	AcceptOffer(ctx context.Context, offerID, actorID string) (*Match, error)

	AdvanceMatch(ctx context.Context, matchID, actorID string, target Status) (*Match, error)

	GetMatch(ctx context.Context, matchID string) (*Match, error)
	ListMatchesForOrder(ctx context.Context, orderID string, limit, page int32) ([]*Match, error)
	ListMatchesForOffer(ctx context.Context, offerID string, limit, page int32) ([]*Match, error)
	ListMyMatches(ctx context.Context, userID string, limit, page int32) ([]*Match, error)
}

type service struct {
	repo   Repository
	orders order.Repository
	offers offer.Repository
	events events.Publisher
}

func NewService(repo Repository, orders order.Repository, offers offer.Repository, pub events.Publisher) Service {
	return &service{
		repo:   repo,
		orders: orders,
		offers: offers,
		events: pub,
	}
}

func (s *service) AcceptOffer(ctx context.Context, offerID, actorID string) (*Match, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AcceptOffer"),
		zap.String("offer_id", offerID),
		zap.String("actor_id", actorID),
	)

	if offerID == "" {
		return nil, apperr.Validation("offer id is required")
	}

	off, err := s.offers.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	ord, err := s.orders.GetOrder(ctx, off.OrderID)
	if err != nil {
		return nil, err
	}

	if ord.RequesterID != actorID {
		log.Warn("accept attempt by non-requester")
		return nil, ErrNotRequester
	}
	if off.Status != offer.StatusPending {
		return nil, ErrOfferNotPending
	}
	if ord.Status != order.StatusOpen {
		return nil, ErrOrderNotOpen
	}

	m := &Match{
		ID:          uuid.New().String(),
		OrderID:     ord.ID,
		OfferID:     off.ID,
		RequesterID: ord.RequesterID,
		CourierID:   off.CourierID,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
	m.UpdatedAt = m.CreatedAt

	if err := s.repo.AcceptOfferTx(ctx, m); err != nil {
		log.Warn("accept transaction failed", zap.Error(err))
		return nil, err
	}

	s.events.Publish(events.Event{
		Entity:    "order",
		EntityID:  ord.ID,
		OldStatus: string(order.StatusOpen),
		NewStatus: string(order.StatusMatched),
		ActorID:   actorID,
		At:        m.CreatedAt,
	})
	s.events.Publish(events.Event{
		Entity:    "match",
		EntityID:  m.ID,
		NewStatus: string(StatusPending),
		ActorID:   actorID,
		At:        m.CreatedAt,
	})

	log.Info("match created",
		zap.String("match_id", m.ID),
		zap.String("courier_id", m.CourierID),
	)
	return m, nil
}

func (s *service) AdvanceMatch(ctx context.Context, matchID, actorID string, target Status) (*Match, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AdvanceMatch"),
		zap.String("match_id", matchID),
		zap.String("actor_id", actorID),
		zap.String("target", string(target)),
	)

	// PENDING is the initial status; no transition reaches it.
	if !target.Valid() || target == StatusPending {
		return nil, ErrInvalidTransition
	}

	m, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !m.Participant(actorID) {
		log.Warn("advance attempt by non-participant")
		return nil, ErrNotParticipant
	}
	if m.Status.Terminal() {
		return nil, ErrMatchFinalized
	}
	if !CanTransition(m.Status, target) {
		return nil, ErrInvalidTransition
	}
	if !m.allowedActor(actorID, target) {
		return nil, ErrWrongRole
	}

	previous := m.Status
	if err := s.repo.AdvanceMatchTx(ctx, m, target); err != nil {
		return nil, err
	}

	m.Status = target
	now := time.Now()
	s.events.Publish(events.Event{
		Entity:    "match",
		EntityID:  m.ID,
		OldStatus: string(previous),
		NewStatus: string(target),
		ActorID:   actorID,
		At:        now,
	})

	// Cascaded order transitions are worth a signal of their own.
	switch target {
	case StatusCompleted:
		s.events.Publish(events.Event{
			Entity:    "order",
			EntityID:  m.OrderID,
			OldStatus: string(order.StatusMatched),
			NewStatus: string(order.StatusCompleted),
			ActorID:   actorID,
			At:        now,
		})
	case StatusCancelled:
		s.events.Publish(events.Event{
			Entity:    "order",
			EntityID:  m.OrderID,
			OldStatus: string(order.StatusMatched),
			NewStatus: string(order.StatusOpen),
			ActorID:   actorID,
			At:        now,
		})
	}

	log.Info("match transition applied", zap.String("from", string(previous)))
	return m, nil
}

func (s *service) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	return s.repo.GetMatch(ctx, matchID)
}

func (s *service) ListMatchesForOrder(ctx context.Context, orderID string, limit, page int32) ([]*Match, error) {
	if orderID == "" {
		return nil, apperr.Validation("order id is required")
	}
	l, offset := utils.NormalizePage(limit, page, defaultPageSize, maxPageSize)
	return s.repo.ListMatchesForOrder(ctx, orderID, l, offset)
}

func (s *service) ListMatchesForOffer(ctx context.Context, offerID string, limit, page int32) ([]*Match, error) {
	if offerID == "" {
		return nil, apperr.Validation("offer id is required")
	}
	l, offset := utils.NormalizePage(limit, page, defaultPageSize, maxPageSize)
	return s.repo.ListMatchesForOffer(ctx, offerID, l, offset)
}

func (s *service) ListMyMatches(ctx context.Context, userID string, limit, page int32) ([]*Match, error) {
	l, offset := utils.NormalizePage(limit, page, defaultPageSize, maxPageSize)
	return s.repo.ListMatchesForUser(ctx, userID, l, offset)
}
