// Package common — pluralize.go содержит склонение существительных
// для текстов бота (английские формы: 1 day / 2 days).
package common

import "fmt"

// Pluralize возвращает one для |n| == 1 и many для остальных чисел.
//
// Примеры:
//
//	Pluralize(1, "day", "days")  → "day"
//	Pluralize(0, "day", "days")  → "days"
//	Pluralize(-1, "day", "days") → "day"
func Pluralize(n int, one, many string) string {
	if n == 1 || n == -1 {
		return one
	}
	return many
}

// PluralizeDays возвращает "day" или "days".
func PluralizeDays(n int) string {
	return Pluralize(n, "day", "days")
}

// FormatDays создаёт строку вида "5 days".
func FormatDays(n int) string {
	return fmt.Sprintf("%d %s", n, PluralizeDays(n))
}

// FormatAnswers создаёт строку вида "3 answers in a row".
func FormatAnswers(n int) string {
	return fmt.Sprintf("%d %s", n, Pluralize(n, "answer", "answers"))
}
