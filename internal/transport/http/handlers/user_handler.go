package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/olaitanade/Rust-React-Chat/internal/repository"
	"github.com/olaitanade/Rust-React-Chat/internal/service"
	"github.com/olaitanade/Rust-React-Chat/pkg/validator"
)

type UserHandler struct {
	chatService *service.ChatService
}

func NewUserHandler(chatService *service.ChatService) *UserHandler {
	return &UserHandler{chatService: chatService}
}

type createUserInput struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateNewUser(input.Username, input.Phone); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.chatService.CreateUser(r.Context(), input.Username, input.Phone)
	if err != nil {
		log.Printf("ERROR create user: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.chatService.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR get user: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetByPhone(w http.ResponseWriter, r *http.Request) {
	user, err := h.chatService.GetUserByPhone(r.Context(), r.PathValue("phone"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR get user by phone: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}
