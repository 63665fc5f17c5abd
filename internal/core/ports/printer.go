package ports

import (
	"context"

	"github.com/olusolaa/hilog/internal/core/domain"
)

// Printer delivers a record to a sink. Print must not panic on recoverable
// sink errors; those are reported to the printer's own diagnostics logger.
type Printer interface {
	Print(record domain.Record)
}

// Flusher is implemented by printers that buffer records.
type Flusher interface {
	Flush(ctx context.Context) error
}

// OverlayController is the extra capability of printers backed by an
// on-screen overlay.
type OverlayController interface {
	ShowFloatingButton()
	CloseFloatingButton()
	ShowLogView()
	CloseLogView()
	IsOpen() bool
}
