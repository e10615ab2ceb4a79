// File: cmd/diagnostic/llm_diagnostic.go
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/skynavi/travel-assistant/internal/domain"
	"github.com/skynavi/travel-assistant/internal/services"
	"github.com/skynavi/travel-assistant/internal/services/anthropic"
)

func main() {
	log.Println("--- Running Anthropic Connectivity Test ---")

	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; continuing with environment variables")
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		log.Fatalf("FATAL: ANTHROPIC_API_KEY is not set")
	}

	cfg := anthropic.DefaultConfig()
	cfg.APIKey = apiKey
	client, err := anthropic.NewClient(cfg, services.NewLogger("diagnostic"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Anthropic client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	reply, err := client.Complete(ctx, anthropic.CompletionRequest{
		Messages:    []domain.ChatMessage{{Role: domain.RoleUser, Content: "Merhaba"}},
		MaxTokens:   256,
		Temperature: 0.7,
	})
	if err != nil {
		log.Fatalf("FATAL: Completion failed: %v", err)
	}

	log.Printf("[TIMING] Completion took: %s", time.Since(start))
	log.Printf("Reply: %s", reply)
	log.Println("--- Connectivity Test PASSED ---")
}
