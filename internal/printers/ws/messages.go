package ws

import "github.com/olusolaa/hilog/internal/core/domain"

type MessageType string

const (
	TypeHello  MessageType = "hello"
	TypeRecord MessageType = "record"
)

type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

type HelloPayload struct {
	MinLevel string `json:"min_level"`
	Clients  int    `json:"clients"`
}

type RecordPayload struct {
	Time       int64    `json:"ts_unix_ms"`
	Level      string   `json:"level"`
	Priority   int      `json:"priority"`
	Tag        string   `json:"tag"`
	Message    string   `json:"message"`
	Thread     string   `json:"thread,omitempty"`
	StackTrace []string `json:"stack_trace,omitempty"`
}

func newRecordPayload(r domain.Record) RecordPayload {
	return RecordPayload{
		Time:       r.Time.UnixMilli(),
		Level:      r.Level.String(),
		Priority:   int(r.Level),
		Tag:        r.Tag,
		Message:    r.Message,
		Thread:     r.ThreadInfo,
		StackTrace: r.StackFrames,
	}
}
