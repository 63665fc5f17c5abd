package domain

import (
	"fmt"
	"strings"
)

// Level is the severity of a log call. Levels are ordered; a config's
// MinLevel gates every level below it.
type Level int

const (
	LevelVerbose Level = iota + 2
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelAssert
)

var levelNames = map[Level]string{
	LevelVerbose: "VERBOSE",
	LevelDebug:   "DEBUG",
	LevelInfo:    "INFO",
	LevelWarn:    "WARN",
	LevelError:   "ERROR",
	LevelAssert:  "ASSERT",
}

// AllLevels lists the levels in ascending order.
func AllLevels() []Level {
	return []Level{LevelVerbose, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelAssert}
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Short returns the single letter used by the console printer.
func (l Level) Short() string {
	if name, ok := levelNames[l]; ok {
		return name[:1]
	}
	return "?"
}

func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// ParseLevel accepts full names and single letters, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "V", "VERBOSE":
		return LevelVerbose, nil
	case "D", "DEBUG":
		return LevelDebug, nil
	case "I", "INFO":
		return LevelInfo, nil
	case "W", "WARN", "WARNING":
		return LevelWarn, nil
	case "E", "ERROR":
		return LevelError, nil
	case "A", "ASSERT":
		return LevelAssert, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
