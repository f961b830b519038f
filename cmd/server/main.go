package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"hopeplates/internal/app"
	"hopeplates/internal/config"
	"hopeplates/internal/handler"
	"hopeplates/internal/realtime"
	internalRedis "hopeplates/internal/redis"
	"hopeplates/internal/service"
	"hopeplates/internal/store"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before the store so we can instrument DB).
	nrApp := newRelicApp(cfg.NewRelic)

	st, closeStore, err := app.NewStore(ctx, cfg, nrApp)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer closeStore()

	// Redis is optional: without it requests are not serialized and
	// analytics are not cached.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis")
	}

	// Wire dependencies.
	server := wireServer(st, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Println("Server exited")
}

func newRelicApp(cfg config.NewRelicConfig) *newrelic.Application {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		log.Printf("failed to initialize New Relic: %v", err)
		return nil
	}
	log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.AppName)
	return nrApp
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(st store.Store, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Interface-typed so a disabled Redis stays a true nil.
	var (
		lockStore  internalRedis.LockStoreInterface
		cacheStore internalRedis.CacheStoreInterface
	)
	if redisClient != nil {
		lockStore = internalRedis.NewLockStore(redisClient)
		cacheStore = internalRedis.NewCacheStore(redisClient)
	}

	stateManager := service.NewStateManager(st, lockStore, cacheStore)
	hub := realtime.NewHub()

	// Initialize services.
	notificationService := service.NewNotificationService(hub)
	matchingService := service.NewMatchingService()
	donationService := service.NewDonationService(stateManager, matchingService, notificationService)
	matchService := service.NewMatchService(stateManager, notificationService)
	ngoService := service.NewNGOService(stateManager)
	analyticsService := service.NewAnalyticsService(stateManager, cacheStore)
	authService := service.NewAuthService(stateManager, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:      handler.NewAuthHandler(authService),
		DonorHandler:     handler.NewDonorHandler(donationService),
		NGOHandler:       handler.NewNGOHandler(ngoService),
		MatchHandler:     handler.NewMatchHandler(matchService),
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsService),
		RealtimeHandler:  handler.NewRealtimeHandler(hub, authService),
		RedisClient:      redisClient,
		NewRelicApp:      nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.WithCORS(router, cfg.CORS),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
