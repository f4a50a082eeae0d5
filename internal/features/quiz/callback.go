// Package quiz — callback.go кодирует выбор варианта в callback data кнопки.
// Формат: quiz:<uuid раунда>:<индекс варианта>, укладывается в лимит Telegram 64 байта.
package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"streak-bot/internal/common"
)

// CallbackPrefix — префикс, по которому бот направляет callback в квиз.
const CallbackPrefix = "quiz:"

// FormatCallback собирает callback data для кнопки варианта.
func FormatCallback(roundID uuid.UUID, option int) string {
	return CallbackPrefix + roundID.String() + ":" + strconv.Itoa(option)
}

// ParseCallback разбирает callback data. Любое отклонение от формата —
// common.ErrBadCallback.
func ParseCallback(data string) (uuid.UUID, int, error) {
	rest, ok := strings.CutPrefix(data, CallbackPrefix)
	if !ok {
		return uuid.Nil, 0, fmt.Errorf("%w: %q", common.ErrBadCallback, data)
	}
	rawID, rawIdx, ok := strings.Cut(rest, ":")
	if !ok {
		return uuid.Nil, 0, fmt.Errorf("%w: %q", common.ErrBadCallback, data)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("%w: %q", common.ErrBadCallback, data)
	}
	idx, err := strconv.Atoi(rawIdx)
	if err != nil || idx < 0 {
		return uuid.Nil, 0, fmt.Errorf("%w: %q", common.ErrBadCallback, data)
	}
	return id, idx, nil
}
