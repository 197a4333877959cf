package domain

// Conversation is a single persisted chat message within a room.
type Conversation struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	RoomID    string `json:"room_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// NewConversation carries the intent to post a message. It is expanded
// into a Conversation with a generated id and timestamp on insert, and
// separately drives the room's participant/last-message update.
type NewConversation struct {
	UserID  string `json:"user_id"`
	RoomID  string `json:"room_id"`
	Message string `json:"message"`
}
