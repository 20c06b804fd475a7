package offer

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"yaarfetch-be/internal/logger"
)

type Repository interface {
	CreateOffer(ctx context.Context, o *Offer) error
	GetOffer(ctx context.Context, offerID string) (*Offer, error)
	ListOffersForOrder(ctx context.Context, orderID string, limit, offset int32) ([]*Offer, error)
	ListOffersByCourier(ctx context.Context, courierID string, limit, offset int32) ([]*Offer, error)

	// UpdatePendingOffer applies the change only while the offer is
	// still PENDING; zero rows affected means the status flipped
	// concurrently.
	WithdrawOffer(ctx context.Context, offerID string) error
	UpdateOfferPrice(ctx context.Context, offerID string, price float64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOffer(ctx context.Context, o *Offer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO offers (
			id, order_id, courier_id, price, note,
			status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
	`,
		o.ID,
		o.OrderID,
		o.CourierID,
		o.Price,
		o.Note,
		o.Status,
		o.CreatedAt,
	)
	return err
}

func (r *repository) GetOffer(ctx context.Context, offerID string) (*Offer, error) {
	var o Offer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, courier_id, price, note,
		       status, created_at, updated_at
		FROM offers
		WHERE id = $1
	`, offerID).Scan(
		&o.ID, &o.OrderID, &o.CourierID, &o.Price, &o.Note,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) ListOffersForOrder(ctx context.Context, orderID string, limit, offset int32) ([]*Offer, error) {
	// First-come visibility: submission order, oldest first.
	return r.listOffers(ctx, `
		SELECT id, order_id, courier_id, price, note,
		       status, created_at, updated_at
		FROM offers
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, orderID, limit, offset)
}

func (r *repository) ListOffersByCourier(ctx context.Context, courierID string, limit, offset int32) ([]*Offer, error) {
	return r.listOffers(ctx, `
		SELECT id, order_id, courier_id, price, note,
		       status, created_at, updated_at
		FROM offers
		WHERE courier_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, courierID, limit, offset)
}

func (r *repository) listOffers(ctx context.Context, query string, args ...any) ([]*Offer, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query offers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var offers []*Offer
	for rows.Next() {
		var o Offer
		if err := rows.Scan(
			&o.ID, &o.OrderID, &o.CourierID, &o.Price, &o.Note,
			&o.Status, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan offer row", zap.Error(err))
			return nil, err
		}
		offers = append(offers, &o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}
	return offers, nil
}

func (r *repository) WithdrawOffer(ctx context.Context, offerID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offers SET status = 'WITHDRAWN', updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`, offerID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOfferChanged
	}
	return nil
}

func (r *repository) UpdateOfferPrice(ctx context.Context, offerID string, price float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offers SET price = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`, offerID, price)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOfferChanged
	}
	return nil
}
