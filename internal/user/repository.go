package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository interface {
	GetUser(ctx context.Context, userID string) (*User, error)

	// EnsureUser creates the row backing an externally issued identity
	// the first time it is seen. Idempotent.
	EnsureUser(ctx context.Context, userID string) error

	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUser(ctx context.Context, userID string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, display_name, phone, campus, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID).Scan(
		&u.ID, &u.DisplayName, &u.Phone, &u.Campus, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) EnsureUser(ctx context.Context, userID string) error {
	// Profile columns all carry defaults; the id is the only thing the
	// identity provider gives us.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, userID)
	return err
}

func (r *repository) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) error {
	query := `UPDATE users SET updated_at = NOW()`
	args := []any{userID}
	argIndex := 2

	if input.DisplayName != nil {
		query += fmt.Sprintf(", display_name = $%d", argIndex)
		args = append(args, *input.DisplayName)
		argIndex++
	}
	if input.Phone != nil {
		query += fmt.Sprintf(", phone = $%d", argIndex)
		args = append(args, *input.Phone)
		argIndex++
	}
	if input.Campus != nil {
		query += fmt.Sprintf(", campus = $%d", argIndex)
		args = append(args, *input.Campus)
		argIndex++
	}

	query += ` WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
