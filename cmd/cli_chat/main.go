package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chat-relay/internal/config"
	"chat-relay/internal/db"
	"chat-relay/internal/llm"
	"chat-relay/internal/repository"
	"chat-relay/internal/service"
	"chat-relay/internal/stream"
)

// Cliente de terminal contra el mismo pipeline que expone la API.
// Útil para probar el relay sin levantar el servidor HTTP.
func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	streamClient, err := stream.NewClient(cfg.StreamAPIKey, cfg.StreamAPISecret)
	if err != nil {
		log.Fatal(err)
	}
	if err := streamClient.EnsureBot(ctx); err != nil {
		log.Printf("warning: bot user upsert failed: %v", err)
	}

	userRepo := repository.NewPgUserRepository(pool)
	turnRepo := repository.NewPgTurnRepository(pool)
	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)

	registerSvc := service.NewRegisterService(logger, userRepo, streamClient)
	contextSvc := service.NewContextService(turnRepo)
	turnSvc := service.NewTurnService(logger, turnRepo, streamClient)
	relaySvc := service.NewRelayService(logger, userRepo, streamClient, llmClient, contextSvc, turnSvc)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Nombre: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	user, err := registerSvc.Register(ctx, name, email)
	if err != nil {
		log.Fatalf("registro: %v", err)
	}
	fmt.Printf("Conectado como %s (%s). Escribe 'exit' para salir.\n", user.Name, user.UserID)

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			return
		}

		reply, err := relaySvc.HandleTurn(ctx, user.UserID, line)
		if err != nil {
			log.Printf("turno fallido: %v", err)
			continue
		}
		fmt.Println(reply)
	}
}
