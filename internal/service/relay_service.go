package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"chat-relay/internal/llm"
	"chat-relay/internal/repository"
	"chat-relay/internal/stream"
)

var (
	ErrUserNotRegistered  = errors.New("user not registered")
	ErrCompletionUpstream = errors.New("completion upstream failed")
)

// completionTimeout acota la llamada al LLM para que un upstream lento no
// retenga el request indefinidamente.
const completionTimeout = 60 * time.Second

// RelayService orquesta un turno de conversación: verificación del
// usuario, armado de contexto, completion y commit dual.
type RelayService struct {
	logger     *zap.Logger
	users      repository.UserRepository
	platform   stream.Platform
	llmClient  llm.Client
	contextSvc *ContextService
	turnSvc    *TurnService
}

func NewRelayService(
	logger *zap.Logger,
	users repository.UserRepository,
	platform stream.Platform,
	llmClient llm.Client,
	contextSvc *ContextService,
	turnSvc *TurnService,
) *RelayService {
	return &RelayService{
		logger:     logger,
		users:      users,
		platform:   platform,
		llmClient:  llmClient,
		contextSvc: contextSvc,
		turnSvc:    turnSvc,
	}
}

// HandleTurn procesa un mensaje entrante y devuelve la respuesta generada.
// El turno es todo-o-nada hasta la persistencia: cualquier fallo antes del
// commit deja los stores intactos.
func (s *RelayService) HandleTurn(ctx context.Context, userID, message string) (string, error) {
	userID = strings.TrimSpace(userID)
	message = strings.TrimSpace(message)
	if userID == "" || message == "" {
		return "", ErrInvalidInput
	}

	exists, err := s.platform.UserExists(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: query platform user: %v", ErrRegistrationUpstream, err)
	}
	if !exists {
		return "", ErrUserNotRegistered
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotRegistered
		}
		return "", fmt.Errorf("%w: get user: %v", ErrPersistence, err)
	}

	messages, err := s.contextSvc.BuildContext(ctx, userID, message)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	llmCtx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	reply, err := s.llmClient.Complete(llmCtx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletionUpstream, err)
	}

	turn, err := s.turnSvc.Commit(ctx, userID, message, reply)
	if err != nil {
		return "", err
	}

	s.logger.Info("turn completed",
		zap.String("user_id", userID),
		zap.Int64("turn_id", turn.ID),
		zap.Int("context_len", len(messages)),
	)

	return reply, nil
}
