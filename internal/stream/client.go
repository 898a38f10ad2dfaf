package stream

import (
	"context"
	"fmt"

	stream "github.com/GetStream/stream-chat-go/v6"
)

// Identidades y nombres fijos en Stream Chat.
const (
	channelType   = "messaging"
	channelPrefix = "chat-"
	defaultRole   = "user"

	// BotUserID es la identidad del sistema: dueña de los canales y
	// autora de todas las respuestas publicadas.
	BotUserID = "ai_bot"
	botName   = "AI Assistant"
)

// Platform define las operaciones de chat en tiempo real que consume el relay.
type Platform interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	UpsertUser(ctx context.Context, userID, name, email string) error
	SendReply(ctx context.Context, userID, reply string) error
}

// Client implementa Platform contra la API de Stream Chat.
type Client struct {
	api *stream.Client
}

func NewClient(apiKey, apiSecret string) (*Client, error) {
	api, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("stream client: %w", err)
	}
	return &Client{api: api}, nil
}

// EnsureBot registra la identidad del sistema. Se invoca una vez al arrancar.
func (c *Client) EnsureBot(ctx context.Context) error {
	_, err := c.api.UpsertUser(ctx, &stream.User{
		ID:   BotUserID,
		Name: botName,
	})
	if err != nil {
		return fmt.Errorf("upsert bot user: %w", err)
	}
	return nil
}

func (c *Client) UserExists(ctx context.Context, userID string) (bool, error) {
	resp, err := c.api.QueryUsers(ctx, &stream.QueryOption{
		Filter: map[string]interface{}{"id": userID},
	})
	if err != nil {
		return false, fmt.Errorf("query users: %w", err)
	}
	return len(resp.Users) > 0, nil
}

func (c *Client) UpsertUser(ctx context.Context, userID, name, email string) error {
	_, err := c.api.UpsertUser(ctx, &stream.User{
		ID:   userID,
		Name: name,
		Role: defaultRole,
		ExtraData: map[string]interface{}{
			"email": email,
		},
	})
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// SendReply resuelve (o crea en el primer uso) el canal del usuario y
// publica la respuesta como mensaje del bot.
func (c *Client) SendReply(ctx context.Context, userID, reply string) error {
	resp, err := c.api.CreateChannel(ctx, channelType, channelPrefix+userID, BotUserID, nil)
	if err != nil {
		return fmt.Errorf("create channel: %w", err)
	}

	_, err = resp.Channel.SendMessage(ctx, &stream.Message{Text: reply}, BotUserID)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

var _ Platform = (*Client)(nil)
