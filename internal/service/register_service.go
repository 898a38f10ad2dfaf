package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"chat-relay/internal/domain"
	"chat-relay/internal/repository"
	"chat-relay/internal/stream"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrRegistrationUpstream = errors.New("chat platform registration failed")
	ErrPersistence          = errors.New("persistence failed")
)

// RegisterService reconcilia la identidad del usuario entre Stream Chat y Postgres.
type RegisterService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	platform stream.Platform
}

func NewRegisterService(logger *zap.Logger, users repository.UserRepository, platform stream.Platform) *RegisterService {
	return &RegisterService{
		logger:   logger,
		users:    users,
		platform: platform,
	}
}

// DeriveUserID convierte un email en un identificador estable: cada
// carácter fuera de [a-zA-Z0-9] se reemplaza por '_'. La derivación es
// idempotente, el mismo email siempre produce el mismo id.
func DeriveUserID(email string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, email)
}

// Register asegura que exista un usuario equivalente en ambos stores.
// Registrar dos veces el mismo email es un no-op seguro. Si la escritura
// en Stream falla, Postgres no se toca.
func (s *RegisterService) Register(ctx context.Context, name, email string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return domain.User{}, ErrInvalidInput
	}

	userID := DeriveUserID(email)

	exists, err := s.platform.UserExists(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrRegistrationUpstream, err)
	}
	if !exists {
		if err := s.platform.UpsertUser(ctx, userID, name, email); err != nil {
			return domain.User{}, fmt.Errorf("%w: %v", ErrRegistrationUpstream, err)
		}
		s.logger.Info("platform user created", zap.String("user_id", userID))
	}

	stored, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("%w: get user: %v", ErrPersistence, err)
	}

	user := domain.User{
		UserID:    userID,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("%w: create user: %v", ErrPersistence, err)
	}
	s.logger.Info("user registered", zap.String("user_id", userID))

	return user, nil
}
