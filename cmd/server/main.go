package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinscore/config"
	"clinscore/internal/cache"
	"clinscore/internal/repository"
	"clinscore/internal/scoring"
	"clinscore/internal/service"
	"clinscore/internal/transport/rest"
	"clinscore/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	configRepo := repository.NewScoringConfigRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	// Initialize caches
	catalogCache := cache.NewCatalogCache(rdb)
	statsCache := cache.NewStatsCache(rdb)

	// Scoring engine with the built-in custom aggregators
	orchestrator := scoring.NewOrchestrator()
	orchestrator.RegisterCustomFunc("max_answer", scoring.MaxAnswer)

	// Initialize services
	authSvc := service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret)
	catalogSvc := service.NewCatalogService(questionnaireRepo, configRepo, catalogCache)
	responseSvc := service.NewResponseService(responseRepo, catalogSvc, orchestrator, statsCache)
	statsSvc := service.NewStatsService(responseRepo, statsCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	responseSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		CatalogService:  catalogSvc,
		ResponseService: responseSvc,
		StatsService:    statsSvc,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/questionnaires")
		log.Println("  PUT  /v1/questionnaires/{id}/scoring-config")
		log.Println("  POST /v1/questionnaires/{id}/responses")
		log.Println("  POST /v1/questionnaires/{id}/recalculate")
		log.Println("  GET  /v1/questionnaires/{id}/stats")
		log.Println("  WS   /v1/ws/questionnaires/{id}/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
