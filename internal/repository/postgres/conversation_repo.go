package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olaitanade/Rust-React-Chat/internal/domain"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, user_id, room_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, conv.ID, conv.UserID, conv.RoomID, conv.Content, conv.CreatedAt)
	return err
}

// ListByRoom returns the room's messages in chronological order. An
// empty result is not an error.
func (r *ConversationRepo) ListByRoom(ctx context.Context, roomID string) ([]domain.Conversation, error) {
	query := `
		SELECT id, user_id, room_id, content, created_at
		FROM conversations
		WHERE room_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.RoomID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}
