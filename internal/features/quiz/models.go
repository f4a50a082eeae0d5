// Package quiz — географический квиз "столица страны X".
// models.go описывает раунды и результаты ответов.
package quiz

import (
	"time"

	"github.com/google/uuid"

	"streak-bot/internal/features/streak"
)

// Round — один заданный вопрос. Живёт в таблице quiz_rounds.
type Round struct {
	ID         uuid.UUID  `db:"id"`
	UserID     int64      `db:"user_id"`
	Country    string     `db:"country"`
	Correct    string     `db:"correct"`
	Options    []string   `db:"options"`
	CreatedAt  time.Time  `db:"created_at"`
	AnsweredAt *time.Time `db:"answered_at"` // nil, пока нет ответа
}

// Question — текст вопроса для пользователя.
func (r *Round) Question() string {
	return "🌍 What is the capital of " + r.Country + "?"
}

// AnswerResult — итог ответа на раунд.
type AnswerResult struct {
	Correct  bool
	Selected string
	Answer   string // правильный вариант
	Streak   streak.Result
}

// Stats — статистика по /quizstats.
type Stats struct {
	streak.Result
	Answered int
	Right    int
}
