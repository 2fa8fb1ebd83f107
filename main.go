package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pulseai/server/api"
	"github.com/pulseai/server/chat"
	"github.com/pulseai/server/config"
	"github.com/pulseai/server/llm"
	"github.com/pulseai/server/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.GroqAPIKey == "" {
		log.Fatal("GROQ_API_KEY environment variable is required")
	}

	log.Printf("Starting Pulse AI backend...")
	log.Printf("HTTP Port: %d", cfg.Port)
	log.Printf("Database: %s (%s)", cfg.MongoURI, cfg.DatabaseName)
	log.Printf("Model: %s", cfg.GroqModel)

	// Initialize store
	ctx := context.Background()
	db, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.DatabaseName, cfg.ConnectTimeout)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	// Initialize completion gateway
	llmClient := llm.NewClient(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.RequestTimeout)
	generator := llm.NewGenerator(llmClient, cfg)

	// Initialize chat service
	chatSvc := chat.New(db, generator, cfg)

	// Initialize handler
	h := api.NewHandler(chatSvc, db, cfg)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))

	// Register routes
	h.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	// Graceful shutdown: drain the server first, then close the store
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Printf("Failed to close store: %v", err)
	}

	log.Println("Pulse AI backend stopped")
}
