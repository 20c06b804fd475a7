package message

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"yaarfetch-be/internal/logger"
)

type Repository interface {
	CreateMessage(ctx context.Context, m *Message) error
	ListMessagesForMatch(ctx context.Context, matchID string, limit, offset int32) ([]*Message, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateMessage(ctx context.Context, m *Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, match_id, sender_id, body, sent_at)
		VALUES ($1,$2,$3,$4,$5)
	`, m.ID, m.MatchID, m.SenderID, m.Body, m.SentAt)
	return err
}

func (r *repository) ListMessagesForMatch(ctx context.Context, matchID string, limit, offset int32) ([]*Message, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, match_id, sender_id, body, sent_at
		FROM messages
		WHERE match_id = $1
		ORDER BY sent_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, matchID, limit, offset)
	if err != nil {
		log.Error("failed to query messages", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.Body, &m.SentAt); err != nil {
			log.Error("failed to scan message row", zap.Error(err))
			return nil, err
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}
	return messages, nil
}
