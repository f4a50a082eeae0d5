// Package admin реализует админ-команды с парольной аутентификацией.
// models.go описывает структуры сессий и попыток входа.
package admin

import "time"

// AdminSession — активная сессия администратора.
type AdminSession struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// Totals — сводка для /stats.
type Totals struct {
	Members     int64
	Activities  int64
	QuizAnswers int64
}

const (
	// MaxFailedAttempts неудачных входов за AttemptWindow блокируют вход
	MaxFailedAttempts = 3
	AttemptWindow     = time.Hour
	// SessionTTL — сколько живёт сессия после /login
	SessionTTL = 24 * time.Hour
)
