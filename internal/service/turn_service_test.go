package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestTurnService_Commit(t *testing.T) {
	t.Run("persiste y publica", func(t *testing.T) {
		repo := &mockTurnRepo{}
		platform := newMockPlatform()
		svc := NewTurnService(zap.NewNop(), repo, platform)

		turn, err := svc.Commit(context.Background(), "u1", "hi", "hello!")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if turn.ID == 0 {
			t.Fatal("expected assigned turn id")
		}
		if len(repo.turns) != 1 {
			t.Fatalf("expected 1 persisted turn, got %d", len(repo.turns))
		}
		if len(platform.replies) != 1 || platform.replies[0] != "hello!" {
			t.Fatalf("expected published reply, got %v", platform.replies)
		}
	})

	t.Run("fallo de persistencia no publica", func(t *testing.T) {
		repo := &mockTurnRepo{createErr: errors.New("db down")}
		platform := newMockPlatform()
		svc := NewTurnService(zap.NewNop(), repo, platform)

		_, err := svc.Commit(context.Background(), "u1", "hi", "hello!")
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
		if len(platform.replies) != 0 {
			t.Fatal("expected no publish after failed persist")
		}
	})

	t.Run("fallo de publicación no revierte el turno", func(t *testing.T) {
		repo := &mockTurnRepo{}
		platform := newMockPlatform()
		platform.sendErr = errors.New("stream down")
		svc := NewTurnService(zap.NewNop(), repo, platform)

		turn, err := svc.Commit(context.Background(), "u1", "hi", "hello!")
		if err != nil {
			t.Fatalf("expected success despite publish failure, got %v", err)
		}
		if turn.ID == 0 || len(repo.turns) != 1 {
			t.Fatal("expected turn to remain persisted")
		}
	})

	t.Run("nunca persiste reply vacío", func(t *testing.T) {
		repo := &mockTurnRepo{}
		svc := NewTurnService(zap.NewNop(), repo, newMockPlatform())

		if _, err := svc.Commit(context.Background(), "u1", "hi", "  "); !errors.Is(err, ErrEmptyReply) {
			t.Fatalf("expected ErrEmptyReply, got %v", err)
		}
		if len(repo.turns) != 0 {
			t.Fatal("expected nothing persisted")
		}
	})
}

func TestTurnService_History(t *testing.T) {
	t.Run("devuelve historial del usuario", func(t *testing.T) {
		repo := &mockTurnRepo{}
		svc := NewTurnService(zap.NewNop(), repo, newMockPlatform())

		if _, err := svc.Commit(context.Background(), "u1", "hi", "hello!"); err != nil {
			t.Fatalf("commit: %v", err)
		}
		if _, err := svc.Commit(context.Background(), "u2", "hola", "buenas"); err != nil {
			t.Fatalf("commit: %v", err)
		}

		turns, err := svc.History(context.Background(), "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(turns) != 1 || turns[0].Message != "hi" {
			t.Fatalf("expected only u1 turns, got %+v", turns)
		}
	})

	t.Run("historial vacío no es nil", func(t *testing.T) {
		svc := NewTurnService(zap.NewNop(), &mockTurnRepo{}, newMockPlatform())

		turns, err := svc.History(context.Background(), "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if turns == nil || len(turns) != 0 {
			t.Fatalf("expected empty slice, got %#v", turns)
		}
	})

	t.Run("userId vacío", func(t *testing.T) {
		svc := NewTurnService(zap.NewNop(), &mockTurnRepo{}, newMockPlatform())

		if _, err := svc.History(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
