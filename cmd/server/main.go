// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/skynavi/travel-assistant/internal/config"
	"github.com/skynavi/travel-assistant/internal/domain"
	"github.com/skynavi/travel-assistant/internal/handlers"
	"github.com/skynavi/travel-assistant/internal/middleware"
	"github.com/skynavi/travel-assistant/internal/repository/conversation"
	"github.com/skynavi/travel-assistant/internal/repository/message"
	"github.com/skynavi/travel-assistant/internal/services"
	"github.com/skynavi/travel-assistant/internal/services/anthropic"
	"github.com/skynavi/travel-assistant/internal/services/chat"
	"github.com/skynavi/travel-assistant/internal/services/suggestion"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("travel-assistant")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.Conversation{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	conversationRepo := conversation.NewConversationRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	anthropicConfig := anthropic.DefaultConfig()
	anthropicConfig.APIKey = cfg.AnthropicAPIKey
	client, err := anthropic.NewClient(anthropicConfig, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Anthropic client: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	chatService, err := chat.NewService(conversationRepo, messageRepo, client, chat.DefaultConfig(), rng, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize chat service: %v", err)
	}

	suggestionEngine := suggestion.NewEngine(client, logger)

	// --- Handlers ---
	chatHandler := handlers.NewChatHandler(chatService, suggestionEngine, domain.SampleSnapshot())

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.HandleFunc("/", chatHandler.Home).Methods("GET")
	r.HandleFunc("/conversation/{id}", chatHandler.LoadConversation).Methods("GET")
	r.HandleFunc("/conversation/{id}", chatHandler.DeleteConversation).Methods("DELETE")
	r.HandleFunc("/new_chat", chatHandler.NewChat).Methods("POST")
	r.HandleFunc("/send_message", chatHandler.SendMessage).Methods("POST")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("SkyNavi travel assistant starting on port %s", cfg.ServerPort)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
