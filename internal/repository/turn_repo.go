package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"chat-relay/internal/domain"
)

// TurnRepository define el contrato de persistencia para turnos de conversación.
type TurnRepository interface {
	Create(ctx context.Context, turn domain.Turn) (domain.Turn, error)
	ListRecentByUserID(ctx context.Context, userID string, limit int) ([]domain.Turn, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Turn, error)
}

// PgTurnRepository implementa TurnRepository usando pgxpool.
type PgTurnRepository struct {
	pool *pgxpool.Pool
}

func NewPgTurnRepository(pool *pgxpool.Pool) *PgTurnRepository {
	return &PgTurnRepository{pool: pool}
}

// Create inserta el turno y devuelve la fila con id y created_at
// asignados por la base de datos.
func (r *PgTurnRepository) Create(ctx context.Context, turn domain.Turn) (domain.Turn, error) {
	const query = `
		INSERT INTO chats (user_id, message, reply)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		turn.UserID,
		turn.Message,
		turn.Reply,
	).Scan(&turn.ID, &turn.CreatedAt)
	if err != nil {
		return domain.Turn{}, err
	}
	return turn, nil
}

// ListRecentByUserID devuelve los últimos `limit` turnos del usuario en
// orden cronológico ascendente (el más antiguo primero).
func (r *PgTurnRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]domain.Turn, error) {
	const query = `
		SELECT id, user_id, message, reply, created_at
		FROM chats
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns, err := scanTurns(rows)
	if err != nil {
		return nil, err
	}

	// La query trae los más nuevos primero; invertimos para entregar
	// historial cronológico.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// ListByUserID devuelve el historial completo del usuario, el más antiguo primero.
func (r *PgTurnRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Turn, error) {
	const query = `
		SELECT id, user_id, message, reply, created_at
		FROM chats
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTurns(rows)
}

type turnRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTurns(rows turnRows) ([]domain.Turn, error) {
	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Message,
			&t.Reply,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}
