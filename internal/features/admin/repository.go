// Package admin — repository.go работает с таблицами admin_sessions и admin_login_attempts.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"streak-bot/internal/common"
)

// Repository работает с админ-таблицами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateSession закрывает прежние сессии админа и открывает новую.
// У одного админа одновременно живёт не больше одной сессии.
func (r *Repository) CreateSession(ctx context.Context, session *AdminSession) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE admin_sessions SET is_active = FALSE WHERE user_id = $1 AND is_active`,
		session.UserID,
	); err != nil {
		return fmt.Errorf("ошибка закрытия старых сессий: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO admin_sessions (user_id, session_token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, authenticated_at, last_activity, is_active`,
		session.UserID, session.SessionToken, session.ExpiresAt,
	).Scan(&session.ID, &session.AuthenticatedAt, &session.LastActivity, &session.IsActive)
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}

	return tx.Commit(ctx)
}

// GetActiveSession возвращает живую сессию пользователя или common.ErrSessionExpired.
func (r *Repository) GetActiveSession(ctx context.Context, userID int64) (*AdminSession, error) {
	rows, _ := r.db.Query(ctx, `
		SELECT id, user_id, session_token, authenticated_at, expires_at, last_activity, is_active
		FROM admin_sessions
		WHERE user_id = $1 AND is_active AND expires_at > NOW()
		ORDER BY authenticated_at DESC
		LIMIT 1`, userID)

	s, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[AdminSession])
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, common.ErrSessionExpired
	case err != nil:
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	return s, nil
}

// DeactivateSession закрывает все сессии пользователя.
func (r *Repository) DeactivateSession(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE admin_sessions SET is_active = FALSE WHERE user_id = $1 AND is_active`, userID)
	if err != nil {
		return fmt.Errorf("ошибка деактивации сессии: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrSessionExpired
	}
	return nil
}

// UpdateActivity отмечает, что сессией только что пользовались.
func (r *Repository) UpdateActivity(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx,
		`UPDATE admin_sessions SET last_activity = NOW() WHERE user_id = $1 AND is_active`, userID,
	); err != nil {
		return fmt.Errorf("ошибка обновления активности: %w", err)
	}
	return nil
}

// LogAttempt пишет попытку входа в журнал.
func (r *Repository) LogAttempt(ctx context.Context, userID int64, success bool) error {
	if _, err := r.db.Exec(ctx,
		`INSERT INTO admin_login_attempts (user_id, success) VALUES ($1, $2)`, userID, success,
	); err != nil {
		return fmt.Errorf("ошибка записи попытки входа: %w", err)
	}
	return nil
}

// CountFailedSince считает неудачные попытки входа начиная с since.
func (r *Repository) CountFailedSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM admin_login_attempts
		WHERE user_id = $1 AND NOT success AND attempt_time >= $2`,
		userID, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта попыток: %w", err)
	}
	return n, nil
}
