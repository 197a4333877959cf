package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/olaitanade/Rust-React-Chat/internal/domain"
	"github.com/olaitanade/Rust-React-Chat/internal/repository"
)

// Notifier broadcasts real-time events to connected clients.
type Notifier interface {
	NotifyNewMessage(conv *domain.Conversation)
}

type ChatService struct {
	userRepo repository.UserRepository
	roomRepo repository.RoomRepository
	convRepo repository.ConversationRepository
	notifier Notifier
}

func NewChatService(
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	convRepo repository.ConversationRepository,
) *ChatService {
	return &ChatService{
		userRepo: userRepo,
		roomRepo: roomRepo,
		convRepo: convRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *ChatService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *ChatService) CreateUser(ctx context.Context, username, phone string) (*domain.User, error) {
	user := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Phone:     phone,
		CreatedAt: isoNow(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *ChatService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *ChatService) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *ChatService) RoomHistory(ctx context.Context, roomID string) ([]domain.Conversation, error) {
	conversations, err := s.convRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if conversations == nil {
		conversations = []domain.Conversation{}
	}
	return conversations, nil
}

// SendMessage adds the sender to the room's participant set, updates the
// room's denormalized fields, and persists the conversation. The two
// writes are separate statements, not one transaction.
func (s *ChatService) SendMessage(ctx context.Context, input domain.NewConversation) (*domain.Conversation, error) {
	if _, err := s.roomRepo.AddParticipant(ctx, &input); err != nil {
		return nil, err
	}

	conv := &domain.Conversation{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		RoomID:    input.RoomID,
		Content:   input.Message,
		CreatedAt: isoNow(),
	}

	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(conv)
	}

	return conv, nil
}

// ListRooms loads all rooms and resolves their participant ids to full
// user records with a single users query, regardless of room count. A
// participant id without a matching user row is reported on the
// response instead of aborting the call.
func (s *ChatService) ListRooms(ctx context.Context) ([]domain.RoomResponse, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	idSet := make(map[string]struct{})
	for _, room := range rooms {
		for _, id := range room.Participants() {
			idSet[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var users []domain.User
	if len(ids) > 0 {
		users, err = s.userRepo.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	usersByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	responses := make([]domain.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp := domain.RoomResponse{Room: room, Users: []domain.User{}}
		for _, id := range room.Participants() {
			u, ok := usersByID[id]
			if !ok {
				log.Printf("WARN room %s references missing user %s", room.ID, id)
				resp.MissingParticipants = append(resp.MissingParticipants, id)
				continue
			}
			resp.Users = append(resp.Users, u)
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}
