package match

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"yaarfetch-be/internal/logger"
	"yaarfetch-be/internal/order"
)

type Repository interface {
	// AcceptOfferTx performs the whole acceptance as one transaction:
	// lock the order row, flip the accepted offer, bulk-reject the
	// other pending offers, mark the order MATCHED and insert the
	// match. Exactly one of two racing calls on the same order can
	// succeed; the loser gets ErrAcceptRace or ErrOfferNotPending.
	AcceptOfferTx(ctx context.Context, m *Match) error

	// AdvanceMatchTx flips the match from its expected current status
	// to target and cascades the order status change inside the same
	// transaction. Zero rows on the guarded update means a concurrent
	// writer got there first.
	AdvanceMatchTx(ctx context.Context, m *Match, target Status) error

	GetMatch(ctx context.Context, matchID string) (*Match, error)
	ListMatchesForOrder(ctx context.Context, orderID string, limit, offset int32) ([]*Match, error)
	ListMatchesForOffer(ctx context.Context, offerID string, limit, offset int32) ([]*Match, error)
	ListMatchesForUser(ctx context.Context, userID string, limit, offset int32) ([]*Match, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AcceptOfferTx(ctx context.Context, m *Match) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AcceptOfferTx"),
		zap.String("order_id", m.OrderID),
		zap.String("offer_id", m.OfferID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Serialize concurrent acceptances on the order row.
	var orderStatus string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`, m.OrderID).Scan(&orderStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return order.ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if orderStatus != "OPEN" {
		// Lost the race after the pre-check: the order flipped while
		// we were waiting on the lock.
		return ErrAcceptRace
	}

	// 1. Accepted offer → ACCEPTED.
	res, err := tx.ExecContext(ctx, `
		UPDATE offers SET status = 'ACCEPTED', updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`, m.OfferID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrOfferNotPending
	}

	// 2. Every other pending offer on the order → REJECTED.
	_, err = tx.ExecContext(ctx, `
		UPDATE offers SET status = 'REJECTED', updated_at = NOW()
		WHERE order_id = $1 AND id <> $2 AND status = 'PENDING'
	`, m.OrderID, m.OfferID)
	if err != nil {
		return err
	}

	// 3. Order → MATCHED.
	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = 'MATCHED', updated_at = NOW()
		WHERE id = $1
	`, m.OrderID)
	if err != nil {
		return err
	}

	// 4. The match itself.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (
			id, order_id, offer_id, requester_id, courier_id,
			status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
	`,
		m.ID,
		m.OrderID,
		m.OfferID,
		m.RequesterID,
		m.CourierID,
		m.Status,
		m.CreatedAt,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit accept transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("offer accepted", zap.String("match_id", m.ID))
	return nil
}

func (r *repository) AdvanceMatchTx(ctx context.Context, m *Match, target Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AdvanceMatchTx"),
		zap.String("match_id", m.ID),
		zap.String("from", string(m.Status)),
		zap.String("to", string(target)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE matches SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`, m.ID, target, m.Status)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTransitionRace
	}

	switch target {
	case StatusCompleted:
		_, err = tx.ExecContext(ctx, `
			UPDATE orders SET status = 'COMPLETED', updated_at = NOW()
			WHERE id = $1 AND status = 'MATCHED'
		`, m.OrderID)
	case StatusCancelled:
		// Re-open the order for new offers. The guard keeps an
		// independently cancelled order cancelled.
		_, err = tx.ExecContext(ctx, `
			UPDATE orders SET status = 'OPEN', updated_at = NOW()
			WHERE id = $1 AND status = 'MATCHED'
		`, m.OrderID)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit advance transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("match advanced")
	return nil
}

func (r *repository) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	var m Match
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, offer_id, requester_id, courier_id,
		       status, created_at, updated_at
		FROM matches
		WHERE id = $1
	`, matchID).Scan(
		&m.ID, &m.OrderID, &m.OfferID, &m.RequesterID, &m.CourierID,
		&m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListMatchesForOrder(ctx context.Context, orderID string, limit, offset int32) ([]*Match, error) {
	return r.listMatches(ctx, `
		SELECT id, order_id, offer_id, requester_id, courier_id,
		       status, created_at, updated_at
		FROM matches
		WHERE order_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, orderID, limit, offset)
}

func (r *repository) ListMatchesForOffer(ctx context.Context, offerID string, limit, offset int32) ([]*Match, error) {
	return r.listMatches(ctx, `
		SELECT id, order_id, offer_id, requester_id, courier_id,
		       status, created_at, updated_at
		FROM matches
		WHERE offer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, offerID, limit, offset)
}

func (r *repository) ListMatchesForUser(ctx context.Context, userID string, limit, offset int32) ([]*Match, error) {
	return r.listMatches(ctx, `
		SELECT id, order_id, offer_id, requester_id, courier_id,
		       status, created_at, updated_at
		FROM matches
		WHERE requester_id = $1 OR courier_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
}

func (r *repository) listMatches(ctx context.Context, query string, args ...any) ([]*Match, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query matches", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(
			&m.ID, &m.OrderID, &m.OfferID, &m.RequesterID, &m.CourierID,
			&m.Status, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			log.Error("failed to scan match row", zap.Error(err))
			return nil, err
		}
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}
	return matches, nil
}
