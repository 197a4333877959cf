package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olaitanade/Rust-React-Chat/internal/domain"
	"github.com/olaitanade/Rust-React-Chat/internal/repository"
)

// In-memory repositories mirroring the postgres implementations'
// contracts: lookups return (nil, nil) for missing rows, AddParticipant
// returns the pre-update room snapshot or a not-found error.

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	var users []domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

type fakeRoomRepo struct {
	rooms    map[string]domain.Room
	userRepo *fakeUserRepo
}

func newFakeRoomRepo(userRepo *fakeUserRepo) *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[string]domain.Room), userRepo: userRepo}
}

func (r *fakeRoomRepo) List(_ context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id string) (*domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

func (r *fakeRoomRepo) AddParticipant(_ context.Context, conv *domain.NewConversation) (*domain.Room, error) {
	room, ok := r.rooms[conv.RoomID]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	user, ok := r.userRepo.users[conv.UserID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	snapshot := room
	room.ParticipantIDs = domain.AddParticipant(room.ParticipantIDs, conv.UserID)
	room.LastMessage = conv.Message
	room.Name = user.Username
	r.rooms[conv.RoomID] = room
	return &snapshot, nil
}

type fakeConvRepo struct {
	conversations []domain.Conversation
}

func (r *fakeConvRepo) Create(_ context.Context, conv *domain.Conversation) error {
	r.conversations = append(r.conversations, *conv)
	return nil
}

func (r *fakeConvRepo) ListByRoom(_ context.Context, roomID string) ([]domain.Conversation, error) {
	var out []domain.Conversation
	for _, c := range r.conversations {
		if c.RoomID == roomID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	notified []domain.Conversation
}

func (n *fakeNotifier) NotifyNewMessage(conv *domain.Conversation) {
	n.notified = append(n.notified, *conv)
}

func newTestService() (*ChatService, *fakeUserRepo, *fakeRoomRepo, *fakeConvRepo) {
	userRepo := newFakeUserRepo()
	roomRepo := newFakeRoomRepo(userRepo)
	convRepo := &fakeConvRepo{}
	return NewChatService(userRepo, roomRepo, convRepo), userRepo, roomRepo, convRepo
}

func TestCreateUser_ThenGetByID(t *testing.T) {
	req := require.New(t)
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice", "+15551234")
	req.NoError(err)
	req.NotEmpty(created.ID)
	req.NotEmpty(created.CreatedAt)

	got, err := svc.GetUser(ctx, created.ID)
	req.NoError(err)
	req.Equal(created, got)
}

func TestGetUser_Missing(t *testing.T) {
	req := require.New(t)
	svc, _, _, _ := newTestService()

	_, err := svc.GetUser(context.Background(), "no-such-id")
	req.ErrorIs(err, repository.ErrUserNotFound)
}

func TestGetUserByPhone(t *testing.T) {
	req := require.New(t)
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "+15551234")
	req.NoError(err)

	got, err := svc.GetUserByPhone(ctx, "+15551234")
	req.NoError(err)
	req.Equal("alice", got.Username)

	_, err = svc.GetUserByPhone(ctx, "+10000000")
	req.ErrorIs(err, repository.ErrUserNotFound)
}

func TestSendMessage_UpdatesRoomAndPersists(t *testing.T) {
	req := require.New(t)
	svc, userRepo, roomRepo, convRepo := newTestService()
	ctx := context.Background()

	userRepo.users["u1"] = domain.User{ID: "u1", Username: "alice"}
	userRepo.users["u2"] = domain.User{ID: "u2", Username: "bob"}
	userRepo.users["u3"] = domain.User{ID: "u3", Username: "carol"}
	roomRepo.rooms["r1"] = domain.Room{ID: "r1", Name: "general", ParticipantIDs: "u1,u2"}

	notifier := &fakeNotifier{}
	svc.SetNotifier(notifier)

	conv, err := svc.SendMessage(ctx, domain.NewConversation{UserID: "u3", RoomID: "r1", Message: "hi"})
	req.NoError(err)
	req.Equal("hi", conv.Content)
	req.Equal("u3", conv.UserID)
	req.Equal("r1", conv.RoomID)
	req.NotEmpty(conv.ID)

	room := roomRepo.rooms["r1"]
	req.ElementsMatch([]string{"u1", "u2", "u3"}, room.Participants())
	req.Equal("hi", room.LastMessage)
	req.Equal("carol", room.Name)

	req.Len(convRepo.conversations, 1)
	req.Len(notifier.notified, 1)
	req.Equal(*conv, notifier.notified[0])
}

func TestSendMessage_RepeatedSenderIsIdempotentForMembership(t *testing.T) {
	req := require.New(t)
	svc, userRepo, roomRepo, _ := newTestService()
	ctx := context.Background()

	userRepo.users["u1"] = domain.User{ID: "u1", Username: "alice"}
	roomRepo.rooms["r1"] = domain.Room{ID: "r1", Name: "general", ParticipantIDs: "u1"}

	_, err := svc.SendMessage(ctx, domain.NewConversation{UserID: "u1", RoomID: "r1", Message: "one"})
	req.NoError(err)
	_, err = svc.SendMessage(ctx, domain.NewConversation{UserID: "u1", RoomID: "r1", Message: "two"})
	req.NoError(err)

	room := roomRepo.rooms["r1"]
	req.Equal([]string{"u1"}, room.Participants())
	req.Equal("two", room.LastMessage)
}

func TestSendMessage_MissingRoom(t *testing.T) {
	req := require.New(t)
	svc, userRepo, _, convRepo := newTestService()

	userRepo.users["u1"] = domain.User{ID: "u1", Username: "alice"}

	_, err := svc.SendMessage(context.Background(), domain.NewConversation{UserID: "u1", RoomID: "ghost", Message: "hi"})
	req.ErrorIs(err, repository.ErrRoomNotFound)
	req.Empty(convRepo.conversations)
}

func TestSendMessage_MissingSender(t *testing.T) {
	req := require.New(t)
	svc, _, roomRepo, convRepo := newTestService()

	roomRepo.rooms["r1"] = domain.Room{ID: "r1"}

	_, err := svc.SendMessage(context.Background(), domain.NewConversation{UserID: "ghost", RoomID: "r1", Message: "hi"})
	req.ErrorIs(err, repository.ErrUserNotFound)
	req.Empty(convRepo.conversations)
}

func TestRoomHistory(t *testing.T) {
	req := require.New(t)
	svc, userRepo, roomRepo, _ := newTestService()
	ctx := context.Background()

	userRepo.users["u1"] = domain.User{ID: "u1", Username: "alice"}
	roomRepo.rooms["r1"] = domain.Room{ID: "r1"}

	history, err := svc.RoomHistory(ctx, "r1")
	req.NoError(err)
	req.Empty(history)
	req.NotNil(history)

	_, err = svc.SendMessage(ctx, domain.NewConversation{UserID: "u1", RoomID: "r1", Message: "hello"})
	req.NoError(err)

	history, err = svc.RoomHistory(ctx, "r1")
	req.NoError(err)
	req.Len(history, 1)
	req.Equal("hello", history[0].Content)
}

func TestListRooms_ResolvesParticipants(t *testing.T) {
	req := require.New(t)
	svc, userRepo, roomRepo, _ := newTestService()

	userRepo.users["u1"] = domain.User{ID: "u1", Username: "alice"}
	userRepo.users["u2"] = domain.User{ID: "u2", Username: "bob"}
	roomRepo.rooms["r1"] = domain.Room{ID: "r1", ParticipantIDs: "u1,u2"}
	roomRepo.rooms["r2"] = domain.Room{ID: "r2", ParticipantIDs: "u2"}
	roomRepo.rooms["r3"] = domain.Room{ID: "r3"}

	responses, err := svc.ListRooms(context.Background())
	req.NoError(err)
	req.Len(responses, 3)

	byID := make(map[string]domain.RoomResponse)
	for _, resp := range responses {
		byID[resp.Room.ID] = resp
	}

	req.Len(byID["r1"].Users, 2)
	req.Len(byID["r2"].Users, 1)
	req.Equal("bob", byID["r2"].Users[0].Username)
	req.Empty(byID["r3"].Users)
}

func TestListRooms_ReportsDanglingParticipant(t *testing.T) {
	req := require.New(t)
	svc, userRepo, roomRepo, _ := newTestService()

	userRepo.users["u1"] = domain.User{ID: "u1", Username: "alice"}
	roomRepo.rooms["r1"] = domain.Room{ID: "r1", ParticipantIDs: "u1,gone"}

	responses, err := svc.ListRooms(context.Background())
	req.NoError(err)
	req.Len(responses, 1)

	resp := responses[0]
	req.Len(resp.Users, 1)
	req.Equal("u1", resp.Users[0].ID)
	req.Equal([]string{"gone"}, resp.MissingParticipants)
}

func TestListRooms_Empty(t *testing.T) {
	req := require.New(t)
	svc, _, _, _ := newTestService()

	responses, err := svc.ListRooms(context.Background())
	req.NoError(err)
	req.Empty(responses)
}
