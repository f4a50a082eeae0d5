// Package streak — repository.go выполняет операции с таблицей activities.
package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с таблицей activities.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий активностей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Add сохраняет отметку активности.
func (r *Repository) Add(ctx context.Context, a *Activity) error {
	query := `
		INSERT INTO activities (user_id, occurred_at, note)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, a.UserID, a.OccurredAt.UTC(), a.Note).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения активности: %w", err)
	}
	return nil
}

// ListAll возвращает все моменты активностей пользователя.
// Серия может тянуться сколько угодно долго, поэтому история не обрезается.
// Порядок не гарантируется: калькулятор сортирует сам.
func (r *Repository) ListAll(ctx context.Context, userID int64) ([]time.Time, error) {
	query := `
		SELECT occurred_at
		FROM activities
		WHERE user_id = $1
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения активностей: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// ListUsersWithActivitySince — пользователи, у которых была активность после since.
// Кандидаты на напоминание.
func (r *Repository) ListUsersWithActivitySince(ctx context.Context, since time.Time) ([]int64, error) {
	query := `SELECT DISTINCT user_id FROM activities WHERE occurred_at >= $1`
	rows, err := r.db.Query(ctx, query, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса пользователей: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// Count — всего отметок (для /stats).
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта активностей: %w", err)
	}
	return n, nil
}
