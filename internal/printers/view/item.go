package view

import (
	"fmt"
	"time"

	"github.com/olusolaa/hilog/internal/core/domain"
)

const itemTimeFormat = "2006-01-02 15:04:05"

// Item is one row of the overlay list.
type Item struct {
	Time  time.Time    `json:"time"`
	Level domain.Level `json:"level"`
	Tag   string       `json:"tag"`
	Log   string       `json:"log"`
}

// Header is the first line shown for an item: time, numeric level and tag.
func (i Item) Header() string {
	return fmt.Sprintf("%s|loglevel:%d|%s|", i.Time.Format(itemTimeFormat), int(i.Level), i.Tag)
}

// AssembleVisualLog is the header followed by the log text on a new line.
func (i Item) AssembleVisualLog() string {
	return i.Header() + "\n" + i.Log
}

// HighlightColor is the colour an item is drawn in.
func HighlightColor(level domain.Level) string {
	switch level {
	case domain.LevelVerbose:
		return "#bbbbbb"
	case domain.LevelDebug:
		return "#ffffff"
	case domain.LevelInfo:
		return "#6a8759"
	case domain.LevelWarn:
		return "#bbb529"
	case domain.LevelError:
		return "#ff6b68"
	default:
		return "#ffff00"
	}
}
