package repository

import (
	"context"

	"github.com/olaitanade/Rust-React-Chat/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByID and GetByPhone return (nil, nil) when no row matches.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.User, error)
}

type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	// AddParticipant adds conv.UserID to the room's participant set and
	// overwrites last_message and name (the room is renamed to the
	// sender's username). It returns the pre-update room snapshot, or
	// ErrRoomNotFound/ErrUserNotFound when a referenced row is absent.
	AddParticipant(ctx context.Context, conv *domain.NewConversation) (*domain.Room, error)
}

type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	ListByRoom(ctx context.Context, roomID string) ([]domain.Conversation, error)
}
