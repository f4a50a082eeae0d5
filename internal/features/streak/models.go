// Package streak — models.go описывает записи активности и вехи серий.
package streak

import "time"

// Activity — одна отметка "позанимался" в таблице activities.
type Activity struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	OccurredAt time.Time `db:"occurred_at"` // момент в UTC
	Note       string    `db:"note"`
	CreatedAt  time.Time `db:"created_at"`
}

// Milestones — длины серий, которые отмечаются отдельным сообщением.
var Milestones = []int{7, 30, 100, 365}

// Milestone возвращает веху, если текущая серия ровно её достигла.
//
//	Milestone(7)  → 7, true
//	Milestone(8)  → 0, false
func Milestone(current int) (int, bool) {
	for _, m := range Milestones {
		if current == m {
			return m, true
		}
	}
	return 0, false
}

// Summary — то, что показывается пользователю по /streak.
type Summary struct {
	Result
	ActiveToday bool
	Zone        string
	Total       int    // всего отметок
	LastDay     string // дата последней отметки в зоне пользователя
}

// Logged — результат /done.
type Logged struct {
	At      time.Time
	Loc     *time.Location
	Summary Summary
}
