package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hirelens/internal/cache"
	"hirelens/internal/config"
	"hirelens/internal/repository"
	"hirelens/internal/service"
	"hirelens/internal/transport/rest"
	"hirelens/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}
	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Analysis: %s", aiConfig.Models.Analysis)
	log.Printf("  Question: %s", aiConfig.Models.Question)
	log.Printf("  Summary:  %s", aiConfig.Models.Summary)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured")
	} else {
		log.Println("  API Key:  NOT SET (using local evaluation)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)
	if err := repository.EnsureReportIndexes(ctx, db); err != nil {
		log.Fatal("Failed to ensure indexes:", err)
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	subscriptionRepo := repository.NewSubscriptionRepo(db)
	interviewRepo := repository.NewInterviewRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	reportRepo := repository.NewReportRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.OwnerUser, cfg.OwnerPass, cfg.JWTSecret)
	evaluator := service.NewEvaluatorService(aiConfig)
	ledger := service.NewLedgerService(subscriptionRepo)
	sessions := service.NewSessionService(sessionCache, cfg.SessionTTL)
	sequencer := service.NewSequencerService(evaluator)
	subscriptionSvc := service.NewSubscriptionService(subscriptionRepo)
	reportSvc := service.NewReportService(reportRepo, evaluator)
	interviewSvc := service.NewInterviewService(
		interviewRepo, messageRepo, subscriptionRepo,
		ledger, sessions, sequencer, evaluator, reportSvc,
		cfg.MaxQuestions,
	)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	interviewSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:         authSvc,
		SubscriptionService: subscriptionSvc,
		InterviewService:    interviewSvc,
		ReportService:       reportSvc,
		WSHub:               wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/subscriptions")
		log.Println("  POST/GET /v1/interviews")
		log.Println("  POST /v1/session/answers")
		log.Println("  POST /v1/session/cancel")
		log.Println("  GET  /v1/reports/{interviewId}")
		log.Println("  WS   /v1/ws/interviews/{id}/watch")

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
