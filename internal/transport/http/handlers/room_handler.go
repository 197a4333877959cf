package handlers

import (
	"log"
	"net/http"

	"github.com/olaitanade/Rust-React-Chat/internal/service"
)

type RoomHandler struct {
	chatService *service.ChatService
}

func NewRoomHandler(chatService *service.ChatService) *RoomHandler {
	return &RoomHandler{chatService: chatService}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.chatService.ListRooms(r.Context())
	if err != nil {
		log.Printf("ERROR list rooms: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, rooms)
}
