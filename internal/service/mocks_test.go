package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"chat-relay/internal/domain"
	"chat-relay/internal/repository"
	"chat-relay/internal/stream"
)

type mockUserRepo struct {
	users     map[string]domain.User
	creates   int
	createErr error
	getErr    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	// Mismo contrato que la tabla real: duplicados son no-op.
	if _, ok := m.users[user.UserID]; !ok {
		m.users[user.UserID] = user
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, userID string) (domain.User, error) {
	if m.getErr != nil {
		return domain.User{}, m.getErr
	}
	user, ok := m.users[userID]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

type mockTurnRepo struct {
	turns     []domain.Turn
	nextID    int64
	createErr error
	listErr   error
}

func (m *mockTurnRepo) Create(_ context.Context, turn domain.Turn) (domain.Turn, error) {
	if m.createErr != nil {
		return domain.Turn{}, m.createErr
	}
	m.nextID++
	turn.ID = m.nextID
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	m.turns = append(m.turns, turn)
	return turn, nil
}

func (m *mockTurnRepo) ListRecentByUserID(_ context.Context, userID string, limit int) ([]domain.Turn, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var turns []domain.Turn
	for _, t := range m.turns {
		if t.UserID == userID {
			turns = append(turns, t)
		}
	}
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns, nil
}

func (m *mockTurnRepo) ListByUserID(_ context.Context, userID string) ([]domain.Turn, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var turns []domain.Turn
	for _, t := range m.turns {
		if t.UserID == userID {
			turns = append(turns, t)
		}
	}
	return turns, nil
}

type mockPlatform struct {
	users     map[string]bool
	upserts   int
	replies   []string
	existsErr error
	upsertErr error
	sendErr   error
}

func newMockPlatform() *mockPlatform {
	return &mockPlatform{users: make(map[string]bool)}
}

func (m *mockPlatform) UserExists(_ context.Context, userID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.users[userID], nil
}

func (m *mockPlatform) UpsertUser(_ context.Context, userID, name, email string) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	m.users[userID] = true
	return nil
}

func (m *mockPlatform) SendReply(_ context.Context, userID, reply string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.replies = append(m.replies, reply)
	return nil
}

var (
	_ repository.UserRepository = (*mockUserRepo)(nil)
	_ repository.TurnRepository = (*mockTurnRepo)(nil)
	_ stream.Platform           = (*mockPlatform)(nil)
)
