package service

import (
	"context"
	"fmt"

	"chat-relay/internal/llm"
	"chat-relay/internal/repository"
)

// contextWindow acota cuántos turnos recientes entran en el contexto.
const contextWindow = 10

// ContextService reconstruye el contexto conversacional desde el historial
// persistido. Se arma en cada turno, nunca se cachea.
type ContextService struct {
	turns repository.TurnRepository
}

func NewContextService(turns repository.TurnRepository) *ContextService {
	return &ContextService{turns: turns}
}

// BuildContext devuelve los últimos turnos linealizados como mensajes
// user/assistant en orden cronológico, con el mensaje nuevo al final.
func (s *ContextService) BuildContext(ctx context.Context, userID, newMessage string) ([]llm.ChatMessage, error) {
	turns, err := s.turns.ListRecentByUserID(ctx, userID, contextWindow)
	if err != nil {
		return nil, fmt.Errorf("list recent turns: %w", err)
	}

	messages := make([]llm.ChatMessage, 0, len(turns)*2+1)
	for _, t := range turns {
		messages = append(messages, llm.ChatMessage{Role: llm.RoleUser, Content: t.Message})
		if t.Reply != "" {
			messages = append(messages, llm.ChatMessage{Role: llm.RoleAssistant, Content: t.Reply})
		}
	}
	messages = append(messages, llm.ChatMessage{Role: llm.RoleUser, Content: newMessage})

	return messages, nil
}
