package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/codyseavey/padguide/internal/api"
	"github.com/codyseavey/padguide/internal/config"
	"github.com/codyseavey/padguide/internal/database"
	"github.com/codyseavey/padguide/internal/services"
)

func main() {
	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./padguide.db"
	}

	// Initialize database
	if err := database.Initialize(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Override tables and matching settings, loaded once
	settings, err := config.LoadSettings(os.Getenv("OVERRIDES_PATH"))
	if err != nil {
		log.Fatalf("Failed to load overrides: %v", err)
	}
	log.Printf("Loaded overrides: %d nicknames, %d basenames, %d pantheons",
		len(settings.Overrides.Nicknames), len(settings.Overrides.Basenames), len(settings.Overrides.Pantheons))

	refreshInterval := time.Hour
	if intervalStr := os.Getenv("INDEX_REFRESH_INTERVAL"); intervalStr != "" {
		if interval, err := time.ParseDuration(intervalStr); err == nil {
			refreshInterval = interval
		} else {
			log.Printf("Invalid INDEX_REFRESH_INTERVAL %q, using %v", intervalStr, refreshInterval)
		}
	}

	cacheSize := envInt("QUERY_CACHE_SIZE", 1024)

	routerConfig := api.RouterConfig{
		QueryRateLimit: float64(envInt("QUERY_RATE_LIMIT", 20)),
		QueryRateBurst: envInt("QUERY_RATE_BURST", 40),
	}

	indexService := services.NewIndexService(services.DatabaseSourceLoader(database.GetDB()), settings, refreshInterval, cacheSize)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start index rebuild loop in background with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in index service: %v - restarting in 30 seconds", r)
					}
				}()
				indexService.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return // Graceful shutdown
			case <-time.After(30 * time.Second):
				log.Println("Index service restarting after panic recovery...")
			}
		}
	}()

	// Setup router
	router := api.SetupRouter(indexService, routerConfig)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop the index service
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid %s %q, using %d", key, value, fallback)
	}
	return fallback
}
