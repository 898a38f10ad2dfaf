package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chat-relay/internal/config"
	"chat-relay/internal/db"
	apihttp "chat-relay/internal/http"
	"chat-relay/internal/llm"
	"chat-relay/internal/repository"
	"chat-relay/internal/service"
	"chat-relay/internal/stream"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	streamClient, err := stream.NewClient(cfg.StreamAPIKey, cfg.StreamAPISecret)
	if err != nil {
		logger.Fatal("stream connect", zap.Error(err))
	}
	if err := streamClient.EnsureBot(ctx); err != nil {
		logger.Warn("bot user upsert failed", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	turnRepo := repository.NewPgTurnRepository(pool)
	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)

	registerSvc := service.NewRegisterService(logger, userRepo, streamClient)
	contextSvc := service.NewContextService(turnRepo)
	turnSvc := service.NewTurnService(logger, turnRepo, streamClient)
	relaySvc := service.NewRelayService(logger, userRepo, streamClient, llmClient, contextSvc, turnSvc)

	userHandler := apihttp.NewUserHandler(logger, registerSvc)
	chatHandler := apihttp.NewChatHandler(logger, relaySvc, turnSvc)
	router := apihttp.NewRouter(logger, userHandler, chatHandler, func(ctx context.Context) error {
		return db.Ping(ctx, pool)
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
