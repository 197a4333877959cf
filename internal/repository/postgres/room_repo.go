package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olaitanade/Rust-React-Chat/internal/domain"
	"github.com/olaitanade/Rust-React-Chat/internal/repository"
)

type RoomRepo struct {
	pool *pgxpool.Pool
}

func NewRoomRepo(pool *pgxpool.Pool) *RoomRepo {
	return &RoomRepo{pool: pool}
}

func (r *RoomRepo) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, participant_ids, last_message FROM rooms`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.ParticipantIDs, &room.LastMessage); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, participant_ids, last_message FROM rooms WHERE id = $1`, id,
	).Scan(&room.ID, &room.Name, &room.ParticipantIDs, &room.LastMessage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// AddParticipant runs the read-modify-write as one transaction with the
// room row locked, so concurrent posts to the same room cannot drop
// each other's participant additions.
func (r *RoomRepo) AddParticipant(ctx context.Context, conv *domain.NewConversation) (*domain.Room, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var room domain.Room
	err = tx.QueryRow(ctx,
		`SELECT id, name, participant_ids, last_message FROM rooms WHERE id = $1 FOR UPDATE`,
		conv.RoomID,
	).Scan(&room.ID, &room.Name, &room.ParticipantIDs, &room.LastMessage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	var username string
	err = tx.QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, conv.UserID).Scan(&username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	participants := domain.AddParticipant(room.ParticipantIDs, conv.UserID)

	// The room is renamed to the sender's username on every post.
	_, err = tx.Exec(ctx,
		`UPDATE rooms SET participant_ids = $1, last_message = $2, name = $3 WHERE id = $4`,
		participants, conv.Message, username, conv.RoomID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	// Pre-update snapshot.
	return &room, nil
}
