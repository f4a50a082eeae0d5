// Package streak — calculator.go считает серии по календарным дням.
//
// На вход — моменты событий ("пользователь позанимался"), на выходе —
// текущая серия (дни подряд, заканчивающиеся сегодня или вчера) и
// лучшая серия за всю историю. Несколько событий в один день считаются
// за один день. Календарный день определяется в зоне калькулятора,
// а не в зоне процесса.
package streak

import (
	"sort"
	"time"

	"streak-bot/internal/common"
)

// Result — текущая и лучшая серия.
type Result struct {
	Current int
	Longest int
}

// Calculator считает дневные серии в заданной часовой зоне.
// Безопасен для одновременного использования: состояния не хранит.
type Calculator struct {
	loc   *time.Location
	clock func() time.Time
}

// NewCalculator создаёт калькулятор. clock == nil означает time.Now.
func NewCalculator(loc *time.Location, clock func() time.Time) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	return &Calculator{loc: loc, clock: clock}
}

// Calculate возвращает текущую и лучшую серию.
//
// Алгоритм:
//  1. Пустой вход → {0, 0}
//  2. Сортируем КОПИЮ по возрастанию (срез вызывающего не трогаем)
//  3. Идём по дням: разница 0 — тот же день, 1 — серия продолжается,
//     больше 1 — серия оборвалась, запоминаем максимум
//  4. Последняя серия тоже кандидат в лучшие
//  5. Текущая серия жива, только если последний день — сегодня или вчера
//
// Нулевые time.Time считаются невалидными и пропускаются.
func (c *Calculator) Calculate(timestamps []time.Time) Result {
	sorted := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		if ts.IsZero() {
			continue
		}
		sorted = append(sorted, ts)
	}
	if len(sorted) == 0 {
		return Result{}
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	previousDay := sorted[0]
	run := 1
	longest := 0

	for _, ts := range sorted[1:] {
		switch diff := c.daysBetween(previousDay, ts); {
		case diff == 0:
			// тот же день — серия не меняется
		case diff == 1:
			run++
		default:
			if run > longest {
				longest = run
			}
			run = 1
		}
		previousDay = ts
	}
	if run > longest {
		longest = run
	}

	current := 0
	if c.daysBetween(sorted[len(sorted)-1], c.clock()) <= 1 {
		current = run
	}

	return Result{Current: current, Longest: longest}
}

// Current возвращает только текущую серию.
func (c *Calculator) Current(timestamps []time.Time) int {
	return c.Calculate(timestamps).Current
}

// Longest возвращает только лучшую серию.
func (c *Calculator) Longest(timestamps []time.Time) int {
	return c.Calculate(timestamps).Longest
}

// ActiveToday сообщает, есть ли среди событий хотя бы одно за сегодня.
func (c *Calculator) ActiveToday(timestamps []time.Time) bool {
	now := c.clock()
	for _, ts := range timestamps {
		if !ts.IsZero() && c.daysBetween(ts, now) == 0 {
			return true
		}
	}
	return false
}

// daysBetween — число календарных дней от a до b в зоне калькулятора.
// Считаем по датам, а не по часам: сутки перехода на летнее время
// длятся 23 или 25 часов, но это всё равно один день.
func (c *Calculator) daysBetween(a, b time.Time) int {
	da := common.StartOfDay(a, c.loc)
	db := common.StartOfDay(b, c.loc)
	ua := time.Date(da.Year(), da.Month(), da.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(db.Year(), db.Month(), db.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
