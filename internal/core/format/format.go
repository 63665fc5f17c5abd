// Package format renders records and their captured context as plain text.
// Printers that emit human-readable output share these helpers.
package format

import (
	"strings"
	"unicode/utf8"

	"github.com/olusolaa/hilog/internal/core/domain"
)

// StackTrace renders frames as a small tree:
//
//	stackTrace:
//		├ main.run(main.go:12)
//		└ main.main(main.go:4)
func StackTrace(frames []string) string {
	switch len(frames) {
	case 0:
		return ""
	case 1:
		return "\t─ " + frames[0]
	}

	var b strings.Builder
	b.Grow(128)
	b.WriteString("stackTrace:\n")
	last := len(frames) - 1
	for i, frame := range frames {
		if i == last {
			b.WriteString("\t└ ")
			b.WriteString(frame)
			break
		}
		b.WriteString("\t├ ")
		b.WriteString(frame)
		b.WriteByte('\n')
	}
	return b.String()
}

// Body joins the captured context and the message in the order the console
// shows them: thread line, stack trace, message.
func Body(r domain.Record) string {
	parts := make([]string, 0, 3)
	if r.ThreadInfo != "" {
		parts = append(parts, r.ThreadInfo)
	}
	if st := StackTrace(r.StackFrames); st != "" {
		parts = append(parts, st)
	}
	parts = append(parts, r.Message)
	return strings.Join(parts, "\n")
}

// Chunks splits s into pieces of at most maxLen characters. Cuts never fall
// inside a multi-byte rune. A non-positive maxLen returns s unsplit.
func Chunks(s string, maxLen int) []string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return []string{s}
	}
	out := make([]string, 0, len(s)/maxLen+1)
	for s != "" {
		cut, n := 0, 0
		for n < maxLen && cut < len(s) {
			_, size := utf8.DecodeRuneInString(s[cut:])
			cut += size
			n++
		}
		out = append(out, s[:cut])
		s = s[cut:]
	}
	return out
}
