// Package quiz — repository.go выполняет операции с таблицами quiz_rounds и quiz_answers.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"streak-bot/internal/common"
	"streak-bot/internal/features/streak"
)

// Repository предоставляет методы для работы с раундами и ответами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий квиза.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateRound сохраняет новый раунд.
func (r *Repository) CreateRound(ctx context.Context, round *Round) error {
	query := `
		INSERT INTO quiz_rounds (id, user_id, country, correct, options)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		round.ID, round.UserID, round.Country, round.Correct, round.Options,
	).Scan(&round.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания раунда: %w", err)
	}
	return nil
}

// GetRound возвращает common.ErrRoundNotFound, если раунда нет.
func (r *Repository) GetRound(ctx context.Context, id uuid.UUID) (*Round, error) {
	query := `
		SELECT id, user_id, country, correct, options, created_at, answered_at
		FROM quiz_rounds
		WHERE id = $1
	`
	var round Round
	err := r.db.QueryRow(ctx, query, id).Scan(
		&round.ID, &round.UserID, &round.Country, &round.Correct,
		&round.Options, &round.CreatedAt, &round.AnsweredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("round=%s: %w", id, common.ErrRoundNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения раунда: %w", err)
	}
	return &round, nil
}

// SaveAnswer закрывает раунд и записывает ответ в одной транзакции.
// Если раунд уже закрыт — common.ErrRoundAnswered.
func (r *Repository) SaveAnswer(ctx context.Context, round *Round, selected, correct string, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE quiz_rounds SET answered_at = $2 WHERE id = $1 AND answered_at IS NULL`,
		round.ID, at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("ошибка закрытия раунда: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("round=%s: %w", round.ID, common.ErrRoundAnswered)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO quiz_answers (user_id, round_id, selected, correct, answered_at)
		VALUES ($1, $2, $3, $4, $5)
	`, round.UserID, round.ID, selected, correct, at.UTC())
	if err != nil {
		return fmt.Errorf("ошибка записи ответа: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации ответа: %w", err)
	}
	return nil
}

// ListOutcomes возвращает ответы пользователя в порядке ответа.
func (r *Repository) ListOutcomes(ctx context.Context, userID int64) ([]streak.Outcome, error) {
	query := `
		SELECT selected, correct
		FROM quiz_answers
		WHERE user_id = $1
		ORDER BY answered_at, id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответов: %w", err)
	}
	defer rows.Close()

	var out []streak.Outcome
	for rows.Next() {
		var o streak.Outcome
		if err := rows.Scan(&o.Selected, &o.Correct); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// ListStale — раунды без ответа, созданные раньше before.
func (r *Repository) ListStale(ctx context.Context, before time.Time) ([]*Round, error) {
	query := `
		SELECT id, user_id, country, correct, options, created_at, answered_at
		FROM quiz_rounds
		WHERE answered_at IS NULL AND created_at < $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, before.UTC())
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса раундов: %w", err)
	}
	defer rows.Close()

	var out []*Round
	for rows.Next() {
		var round Round
		if err := rows.Scan(
			&round.ID, &round.UserID, &round.Country, &round.Correct,
			&round.Options, &round.CreatedAt, &round.AnsweredAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, &round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// CountAnswers — всего ответов (для /stats).
func (r *Repository) CountAnswers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quiz_answers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта ответов: %w", err)
	}
	return n, nil
}
