package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"chat-relay/internal/domain"
	"chat-relay/internal/repository"
	"chat-relay/internal/stream"
)

var ErrEmptyReply = errors.New("empty reply")

// TurnService persiste turnos completos y republica la respuesta en el
// canal del usuario. El historial durable manda: un fallo al publicar no
// revierte ni bloquea lo ya persistido.
type TurnService struct {
	logger   *zap.Logger
	turns    repository.TurnRepository
	platform stream.Platform
}

func NewTurnService(logger *zap.Logger, turns repository.TurnRepository, platform stream.Platform) *TurnService {
	return &TurnService{
		logger:   logger,
		turns:    turns,
		platform: platform,
	}
}

// Commit guarda el turno y después publica la respuesta. El orden importa:
// si la persistencia falla no se publica nada.
func (s *TurnService) Commit(ctx context.Context, userID, message, reply string) (domain.Turn, error) {
	if strings.TrimSpace(reply) == "" {
		// Nunca se persiste un turno sin respuesta.
		return domain.Turn{}, ErrEmptyReply
	}

	turn, err := s.turns.Create(ctx, domain.Turn{
		UserID:  userID,
		Message: message,
		Reply:   reply,
	})
	if err != nil {
		return domain.Turn{}, fmt.Errorf("%w: create turn: %v", ErrPersistence, err)
	}

	if err := s.platform.SendReply(ctx, userID, reply); err != nil {
		s.logger.Warn("reply publish failed",
			zap.String("user_id", userID),
			zap.Int64("turn_id", turn.ID),
			zap.Error(err),
		)
	}

	return turn, nil
}

// History devuelve todos los turnos persistidos del usuario.
func (s *TurnService) History(ctx context.Context, userID string) ([]domain.Turn, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	turns, err := s.turns.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list turns: %v", ErrPersistence, err)
	}
	if turns == nil {
		turns = []domain.Turn{}
	}
	return turns, nil
}
