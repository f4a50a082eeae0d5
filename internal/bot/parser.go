package bot

import "strings"

// CommandParser разбирает команды с префиксами /, ! и .
// Суффикс @имя_бота (как Telegram шлёт в группах) отрезается.
type CommandParser struct {
	validPrefixes []string
	botUsername   string
}

// NewCommandParser создаёт парсер команд. botUsername — без @.
func NewCommandParser(botUsername string) *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"/", "!", "."},
		botUsername:   strings.ToLower(strings.TrimPrefix(botUsername, "@")),
	}
}

// ParseCommand разбирает текст на команду и аргументы.
//
//	"/done 2025-01-15 run" → "done", ["2025-01-15", "run"], true
//	"/Streak@MyBot"        → "streak", nil, true
//	"/streak@OtherBot"     → "", nil, false
//	"hello"                → "", nil, false
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}
	if !hasPrefix {
		return "", nil, false
	}

	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	if name, addressee, ok := strings.Cut(command, "@"); ok {
		// команда для другого бота в той же группе
		if addressee != p.botUsername {
			return "", nil, false
		}
		command = name
	}
	if command == "" {
		return "", nil, false
	}

	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}
	return command, args, true
}
