// Package streak — args.go разбирает аргументы команды /done.
package streak

import (
	"regexp"
	"strings"
)

var (
	dateArg = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	timeArg = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// ParseDoneArgs отделяет дату от заметки.
//
//	[]                          → "", ""
//	["2025-01-15", "run", "5k"] → "2025-01-15", "run 5k"
//	["2025-01-15", "07:30"]     → "2025-01-15T07:30", ""
//	["gym"]                     → "", "gym"
func ParseDoneArgs(args []string) (rawDate, note string) {
	if len(args) == 0 {
		return "", ""
	}
	if dateArg.MatchString(args[0]) {
		rawDate = args[0]
		args = args[1:]
		if len(args) > 0 && !strings.Contains(rawDate, "T") && timeArg.MatchString(args[0]) {
			rawDate += "T" + args[0]
			args = args[1:]
		}
	}
	return rawDate, strings.Join(args, " ")
}
