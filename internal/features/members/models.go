// Package members хранит пользователей бота и их часовые зоны.
// models.go описывает структуры данных для таблицы members.
package members

import "time"

// Member — пользователь, хоть раз написавший боту.
type Member struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`  // Telegram user ID (уникальный)
	Username  string    `db:"username"` // @username (может быть пустым)
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Timezone  string    `db:"timezone"` // IANA-зона, в которой считаются дни серии
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DisplayName возвращает отображаемое имя пользователя.
// Если есть @username — возвращает его, иначе — имя + фамилию.
func (m *Member) DisplayName() string {
	if m.Username != "" {
		return "@" + m.Username
	}
	name := m.FirstName
	if m.LastName != "" {
		name += " " + m.LastName
	}
	return name
}
