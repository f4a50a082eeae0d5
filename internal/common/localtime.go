// Package common — localtime.go переводит "настенное" время в заданной
// часовой зоне в абсолютный момент UTC.
//
// Пользователи присылают даты без надёжного смещения ("2025-01-15T14:30",
// иногда с лишним "Z"). Цифры всегда трактуются как местное время зоны,
// а смещение берётся на ТУ дату, а не на сегодня, поэтому переходы
// на летнее время учитываются корректно.
//
// Часы внутри перехода:
//   - пропущенный час (весна): смещение до перехода, т.е. 02:30 → 03:30 летнего;
//   - повторённый час (осень): второе, зимнее прочтение.
package common

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
	_ "time/tzdata" // зоны не должны зависеть от zoneinfo хоста

	log "github.com/sirupsen/logrus"
)

// FallbackOffset — смещение, если зону не удалось загрузить (UTC+2).
const FallbackOffset = 2 * 60 * 60

var (
	// Хвост смещения: Z, +03:00, -0500, +02
	offsetSuffix = regexp.MustCompile(`(?i)(z|[+-]\d{2}(:?\d{2})?)$`)
	// YYYY-MM-DD, затем необязательно [T или пробел]HH:MM[:SS[.fff]]
	localLayout = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[T ](\d{2}):(\d{2})(?::(\d{2})(?:\.\d+)?)?)?$`)
)

// LoadLocation загружает IANA-зону. Если не получилось — возвращает
// фиксированную зону UTC+2 и ok=false. "Local" тоже отклоняется:
// результат не должен зависеть от зоны хоста.
func LoadLocation(zone string) (loc *time.Location, ok bool) {
	if zone == "" || zone == "Local" {
		return time.FixedZone("UTC+2", FallbackOffset), false
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.FixedZone("UTC+2", FallbackOffset), false
	}
	return loc, true
}

// ParseLocalTime разбирает value как местное время в зоне zone и
// возвращает соответствующий момент в UTC.
//
// Примеры (Asia/Jerusalem):
//
//	ParseLocalTime("2025-01-15T14:30:00", z)  → 2025-01-15T12:30:00Z (зима, UTC+2)
//	ParseLocalTime("2025-07-15T14:30:00", z)  → 2025-07-15T11:30:00Z (лето, UTC+3)
//	ParseLocalTime("2025-01-15T14:30:00Z", z) → то же, что без Z
//	ParseLocalTime("2025-01-15", z)           → 2025-01-14T22:00:00Z
func ParseLocalTime(value, zone string) (time.Time, error) {
	raw := value
	// Отрезаем смещение только у значений со временем, иначе "-15" в дате
	// приняли бы за смещение.
	if len(value) > len("2006-01-02") {
		value = offsetSuffix.ReplaceAllString(value, "")
	}

	m := localLayout.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	fields := make([]int, 6)
	for i := range fields {
		if m[i+1] == "" {
			continue // пропущенные поля времени = 0
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
		fields[i] = n
	}

	year, month, day := fields[0], fields[1], fields[2]
	hour, minute, second := fields[3], fields[4], fields[5]
	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) ||
		hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	loc, ok := LoadLocation(zone)
	if !ok {
		log.WithField("zone", zone).Warn("Не удалось загрузить зону, используем UTC+2")
	}

	return resolveWallClock(year, time.Month(month), day, hour, minute, second, loc), nil
}

// resolveWallClock переводит настенное время в момент UTC. time.Date не
// гарантирует выбор для несуществующих и повторённых часов, поэтому
// кандидаты перебираются явно: смещение за 12 часов до и через 12 часов после.
func resolveWallClock(year int, month time.Month, day, hour, minute, second int, loc *time.Location) time.Time {
	naive := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	_, before := naive.Add(-12 * time.Hour).In(loc).Zone()
	_, after := naive.Add(12 * time.Hour).In(loc).Zone()

	matches := func(offset int) (time.Time, bool) {
		utc := naive.Add(-time.Duration(offset) * time.Second)
		l := utc.In(loc)
		return utc, l.Year() == year && l.Month() == month && l.Day() == day &&
			l.Hour() == hour && l.Minute() == minute && l.Second() == second
	}

	early, okBefore := matches(before)
	late, okAfter := matches(after)
	switch {
	case okBefore && okAfter:
		// повторённый час: берём более поздний момент
		if late.After(early) {
			return late
		}
		return early
	case okBefore:
		return early
	case okAfter:
		return late
	default:
		// пропущенный час: сдвигаем вперёд на длину пропуска
		return early
	}
}

// StartOfDay возвращает полночь календарного дня t в зоне loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
