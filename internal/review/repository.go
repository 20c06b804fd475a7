package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"yaarfetch-be/internal/logger"
)

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type Repository interface {
	// CreateReview inserts the review; the (match_id, author_id)
	// unique constraint turns a double submission into
	// ErrDuplicateReview.
	CreateReview(ctx context.Context, rv *Review) error
	GetReview(ctx context.Context, reviewID string) (*Review, error)
	ListReviewsForSubject(ctx context.Context, subjectID string, limit, offset int32) ([]*Review, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReview(ctx context.Context, rv *Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (
			id, match_id, author_id, subject_id, rating, comment, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		rv.ID,
		rv.MatchID,
		rv.AuthorID,
		rv.SubjectID,
		rv.Rating,
		rv.Comment,
		rv.CreatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateReview
	}
	return err
}

func (r *repository) GetReview(ctx context.Context, reviewID string) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		SELECT id, match_id, author_id, subject_id, rating, comment, created_at
		FROM reviews
		WHERE id = $1
	`, reviewID).Scan(
		&rv.ID, &rv.MatchID, &rv.AuthorID, &rv.SubjectID,
		&rv.Rating, &rv.Comment, &rv.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) ListReviewsForSubject(ctx context.Context, subjectID string, limit, offset int32) ([]*Review, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, match_id, author_id, subject_id, rating, comment, created_at
		FROM reviews
		WHERE subject_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, subjectID, limit, offset)
	if err != nil {
		log.Error("failed to query reviews", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.MatchID, &rv.AuthorID, &rv.SubjectID,
			&rv.Rating, &rv.Comment, &rv.CreatedAt,
		); err != nil {
			log.Error("failed to scan review row", zap.Error(err))
			return nil, err
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}
	return reviews, nil
}
