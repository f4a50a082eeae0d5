// Package common содержит общие утилиты, используемые во всём проекте:
// склонение, форматирование дат, разбор местного времени, ошибки.
package common

import (
	"fmt"
	"time"
)

// FormatDate форматирует момент как дату в зоне loc: "15.01.2025".
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006")
}

// FormatDateTime форматирует время как "15.01.2025 14:30" в зоне loc.
// Используется в ответах /done.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006 15:04")
}

// DayKey возвращает ключ календарного дня "2006-01-02" в зоне loc.
// Используется в ключах дедупликации напоминаний.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// FormatNumber форматирует число с разделителями тысяч (пробелами).
// Пример: FormatNumber(2350) → "2 350"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s %03d", FormatNumber(n/1000), n%1000)
}
