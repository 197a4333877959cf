package ws

import (
	"log"

	"github.com/olaitanade/Rust-React-Chat/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(conv *domain.Conversation) {
	evt, err := NewEvent(EventTypeMessageNew, conv.RoomID, MessagePayload{Conversation: *conv})
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.BroadcastToRoom(conv.RoomID, evt, "")
}
