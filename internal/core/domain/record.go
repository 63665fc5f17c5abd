package domain

import "time"

// Record is the resolved payload handed to every printer. It is built once
// per accepted log call and must be treated as read-only by printers.
type Record struct {
	Time        time.Time `json:"time"`
	Level       Level     `json:"level"`
	Tag         string    `json:"tag"`
	Message     string    `json:"message"`
	ThreadInfo  string    `json:"thread,omitempty"`
	StackFrames []string  `json:"stack,omitempty"`
}

// HasThread reports whether thread info was captured for the record.
func (r Record) HasThread() bool {
	return r.ThreadInfo != ""
}
