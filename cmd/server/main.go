package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/olaitanade/Rust-React-Chat/internal/config"
	"github.com/olaitanade/Rust-React-Chat/internal/database"
	postgresrepo "github.com/olaitanade/Rust-React-Chat/internal/repository/postgres"
	"github.com/olaitanade/Rust-React-Chat/internal/service"
	"github.com/olaitanade/Rust-React-Chat/internal/transport/http/handlers"
	"github.com/olaitanade/Rust-React-Chat/internal/transport/http/middleware"
	"github.com/olaitanade/Rust-React-Chat/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	roomRepo := postgresrepo.NewRoomRepo(pool)
	convRepo := postgresrepo.NewConversationRepo(pool)

	// Services
	chatService := service.NewChatService(userRepo, roomRepo, convRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()
	chatService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(chatService)
	roomHandler := handlers.NewRoomHandler(chatService)
	convHandler := handlers.NewConversationHandler(chatService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/users", userHandler.Create)
	mux.HandleFunc("GET /api/v1/users/{id}", userHandler.GetByID)
	mux.HandleFunc("GET /api/v1/users/phone/{phone}", userHandler.GetByPhone)

	// Protected - Rooms & Conversations
	mux.Handle("GET /api/v1/rooms", auth(http.HandlerFunc(roomHandler.List)))
	mux.Handle("GET /api/v1/rooms/{id}/conversations", auth(http.HandlerFunc(convHandler.ListByRoom)))
	mux.Handle("POST /api/v1/rooms/{id}/conversations", auth(http.HandlerFunc(convHandler.Send)))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
