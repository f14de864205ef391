// README: Entry point; loads config, wires infra and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wayfarer/internal/ai"
	"wayfarer/internal/config"
	wayhttp "wayfarer/internal/http"
	"wayfarer/internal/infra"
	"wayfarer/internal/logger"
	"wayfarer/internal/maps"
	"wayfarer/internal/modules/planner"
	"wayfarer/internal/modules/plans"
	"wayfarer/internal/modules/quota"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatalf("postgres init: %v", err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Fatalf("firebase init: %v", err)
		}
	} else {
		logger.Warnf("FIREBASE_PROJECT_ID not set, API runs unauthenticated")
	}

	provider, err := ai.New(ctx, cfg.AI.Provider, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		logger.Fatalf("ai provider init: %v", err)
	}
	defer provider.Close()

	quotaSvc := quota.NewService(quota.NewStore(dbPool))
	plansSvc := plans.NewService(plans.NewStore(dbPool))

	opts := planner.Options{
		Quota: quotaSvc,
		Plans: plansSvc,
		Cache: redisClient,
	}
	if cfg.Maps.APIKey != "" {
		resolver, err := maps.NewResolver(cfg.Maps.APIKey, redisClient)
		if err != nil {
			logger.Warnf("maps init failed, destination lookup disabled: %v", err)
		} else {
			opts.Resolver = resolver
		}
	}
	plannerSvc := planner.NewService(provider, cfg.AI, cfg.Planner, opts)

	gin.SetMode(gin.ReleaseMode)
	router := wayhttp.NewRouter(wayhttp.RouterDeps{
		Planner:        plannerSvc,
		Plans:          plansSvc,
		Quota:          quotaSvc,
		Verifier:       verifier,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Timeout:        time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		Provider:       provider.Name(),
	})
	server := wayhttp.NewServer(cfg.HTTP.Addr, router, cfg.HTTP.TimeoutSeconds)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
