// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Обработчики сравнивают их через errors.Is и отвечают пользователю
// понятным текстом вместо внутренней ошибки.
package common

import "errors"

// Ошибки разбора дат
var (
	// ErrInvalidDate — строка не похожа на YYYY-MM-DD[THH:MM[:SS]]
	ErrInvalidDate = errors.New("invalid date")
	// ErrFutureDate — активность нельзя записать в будущее
	ErrFutureDate = errors.New("date is in the future")
	// ErrInvalidTimezone — неизвестная IANA-зона
	ErrInvalidTimezone = errors.New("unknown timezone")
)

// Ошибки участников
var (
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("user not found")
)

// Ошибки квиза
var (
	// ErrRoundNotFound — раунд не существует или принадлежит другому пользователю
	ErrRoundNotFound = errors.New("quiz round not found")
	// ErrRoundAnswered — на раунд уже ответили
	ErrRoundAnswered = errors.New("quiz round already answered")
	// ErrBadOption — индекс варианта вне диапазона
	ErrBadOption = errors.New("quiz option out of range")
	// ErrBadCallback — callback data не в формате quiz:<id>:<n>
	ErrBadCallback = errors.New("malformed callback data")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("not an admin")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("wrong password")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("too many attempts, wait an hour")
	// ErrSessionExpired — сессии нет или она истекла
	ErrSessionExpired = errors.New("session expired, /login again")
)
