package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cardapio-inteligente/backend/config"
	"github.com/cardapio-inteligente/backend/internal/api"
	"github.com/cardapio-inteligente/backend/internal/database"
	"github.com/cardapio-inteligente/backend/internal/middleware"
	"github.com/cardapio-inteligente/backend/internal/router"
	"github.com/cardapio-inteligente/backend/internal/server"
	"github.com/cardapio-inteligente/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Rate limiting is optional; the service runs without Redis
	var limiter *middleware.RateLimiter
	if cfg.RedisConfigured() {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		} else {
			limiter = middleware.NewGenerationRateLimiter(redisClient)
		}
	}

	groq := service.NewGroqService(cfg, nil)
	if !groq.Configured() {
		log.Printf("GROQ_API_KEY not configured; menu generation will fail until it is set")
	}

	menuService := service.NewMenuService(db, groq)
	menuHandler := api.NewMenuHandler(menuService)
	healthHandler := api.NewHealthHandler(db)

	engine := router.SetupRouter(cfg, menuHandler, healthHandler, limiter)
	srv := server.New(engine)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		errChan <- srv.Start(cfg.ServerPort)
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
