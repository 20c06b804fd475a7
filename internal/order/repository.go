package order

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"yaarfetch-be/internal/logger"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListOpenOrders(ctx context.Context, limit, offset int32) ([]*Order, error)
	ListOrdersByRequester(ctx context.Context, requesterID string, limit, offset int32) ([]*Order, error)

	// CancelOrderTx cancels the order and any active match on it in a
	// single transaction. The status check is repeated under the row
	// lock so a concurrent accept or completion cannot slip through.
	CancelOrderTx(ctx context.Context, orderID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (
			id, requester_id, description, pickup, dropoff,
			price, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
	`,
		o.ID,
		o.RequesterID,
		o.Description,
		o.Pickup,
		o.Dropoff,
		o.Price,
		o.Status,
		o.CreatedAt,
	)
	return err
}

func (r *repository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, requester_id, description, pickup, dropoff,
		       price, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.RequesterID, &o.Description, &o.Pickup, &o.Dropoff,
		&o.Price, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) ListOpenOrders(ctx context.Context, limit, offset int32) ([]*Order, error) {
	// Newest first; id breaks ties on identical timestamps so the
	// sequence is restartable from any offset.
	return r.listOrders(ctx, `
		SELECT id, requester_id, description, pickup, dropoff,
		       price, status, created_at, updated_at
		FROM orders
		WHERE status = 'OPEN'
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
}

func (r *repository) ListOrdersByRequester(ctx context.Context, requesterID string, limit, offset int32) ([]*Order, error) {
	return r.listOrders(ctx, `
		SELECT id, requester_id, description, pickup, dropoff,
		       price, status, created_at, updated_at
		FROM orders
		WHERE requester_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, requesterID, limit, offset)
}

func (r *repository) listOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.RequesterID, &o.Description, &o.Pickup, &o.Dropoff,
			&o.Price, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (r *repository) CancelOrderTx(ctx context.Context, orderID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelOrderTx"),
		zap.String("order_id", orderID),
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

	var status Status
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM orders WHERE id = $1 FOR UPDATE
	`, orderID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if !status.Cancellable() {
		return ErrNotCancellable
	}

	if status == StatusMatched {
		// A delivered match can no longer be cancelled; the requester
		// has to confirm completion instead.
		var delivered bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM matches
				WHERE order_id = $1 AND status = 'DELIVERED'
			)
		`, orderID).Scan(&delivered)
		if err != nil {
			return err
		}
		if delivered {
			return ErrNotCancellable
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = 'CANCELLED', updated_at = NOW()
		WHERE id = $1
	`, orderID)
	if err != nil {
		return err
	}

	// Cascade: an active match on this order dies with it.
	_, err = tx.ExecContext(ctx, `
		UPDATE matches SET status = 'CANCELLED', updated_at = NOW()
		WHERE order_id = $1 AND status IN ('PENDING', 'IN_PROGRESS')
	`, orderID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cancel transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order cancelled")
	return nil
}
