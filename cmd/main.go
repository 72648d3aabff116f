package main

import (
	"VitaClinic/cache"
	"VitaClinic/config"
	"VitaClinic/database"
	"VitaClinic/routes"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"
)

func main() {
	// Load configuration from config package
	config, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize the database
	db, err := database.InitDB(context.Background(), config.DBURL)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Initialize Redis
	if err := database.InitializeRedis(); err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	// Initialize the cache utility
	cache, err := cache.NewCache()
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	// Pass the config to SetupRoutes
	handler := routes.SetupRoutes(cache, config, db)

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":8930",
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Println("Starting server on :8930")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	// Create a context with a timeout for shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait() // Wait for all goroutines to finish before exiting
	log.Println("Server exited gracefully")
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*config.AppConfig, error) {
	// Get the database URL
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, errors.New("missing DB_URL environment variable")
	}

	// Get the Redis URL
	redisAddress := os.Getenv("REDIS_URL")
	if redisAddress == "" {
		return nil, errors.New("missing REDIS_URL environment variable")
	}

	// Get the Bearer Token
	bearerToken := os.Getenv("BEARER_TOKEN")
	if bearerToken == "" {
		return nil, errors.New("missing BEARER_TOKEN environment variable")
	}

	// Engine tunables with sensible defaults
	windowDays, err := intEnv("DEFAULT_BOOKING_WINDOW_DAYS", 30)
	if err != nil {
		return nil, err
	}
	lookaheadDays, err := intEnv("SCARCITY_LOOKAHEAD_DAYS", 30)
	if err != nil {
		return nil, err
	}
	emergencyShare, err := intEnv("EMERGENCY_SHARE_PERCENT", 10)
	if err != nil {
		return nil, err
	}

	return &config.AppConfig{
		DBURL:                    dbURL,
		RedisAddress:             redisAddress,
		BearerToken:              bearerToken,
		DefaultBookingWindowDays: windowDays,
		ScarcityLookaheadDays:    lookaheadDays,
		EmergencySharePercent:    emergencyShare,
	}, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + key + " environment variable")
	}
	return value, nil
}
