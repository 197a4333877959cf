package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/olaitanade/Rust-React-Chat/internal/domain"
	"github.com/olaitanade/Rust-React-Chat/internal/repository"
	"github.com/olaitanade/Rust-React-Chat/internal/service"
	"github.com/olaitanade/Rust-React-Chat/internal/transport/http/middleware"
	"github.com/olaitanade/Rust-React-Chat/pkg/validator"
)

type ConversationHandler struct {
	chatService *service.ChatService
}

func NewConversationHandler(chatService *service.ChatService) *ConversationHandler {
	return &ConversationHandler{chatService: chatService}
}

func (h *ConversationHandler) ListByRoom(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.chatService.RoomHistory(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Printf("ERROR list conversations: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, conversations)
}

type sendMessageInput struct {
	Message string `json:"message"`
}

func (h *ConversationHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input sendMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateMessage(input.Message); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	conv, err := h.chatService.SendMessage(r.Context(), domain.NewConversation{
		UserID:  userID,
		RoomID:  r.PathValue("id"),
		Message: input.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, repository.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Sender not found")
		default:
			log.Printf("ERROR send message: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, conv)
}
