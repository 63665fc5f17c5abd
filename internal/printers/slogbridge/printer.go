package slogbridge

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/ports"
	apperrors "github.com/olusolaa/hilog/internal/errors"
	"github.com/olusolaa/hilog/internal/log"
)

const PrinterTypeSlog = "slog"

// LevelAssert sits above slog.LevelError so assert records stay
// distinguishable downstream.
const LevelAssert = slog.LevelError + 4

type Config struct {
	Backend log.Backend `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=std zap"`
	Format  log.Format  `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=text json"`
	Output  string      `yaml:"output" mapstructure:"output" validate:"omitempty,oneof=stdout stderr"`
}

// Printer forwards records into a *slog.Logger so they end up wherever the
// host application's structured logs go.
type Printer struct {
	logger *slog.Logger
	diag   ports.Logger
}

// NewPrinter builds the slog handler described by cfg. Handler failures are
// reported to diag.
func NewPrinter(cfg Config, diag ports.Logger) (*Printer, error) {
	var w io.Writer = os.Stderr
	if cfg.Output == "stdout" {
		w = os.Stdout
	}
	return NewPrinterTo(w, cfg, diag)
}

func NewPrinterTo(w io.Writer, cfg Config, diag ports.Logger) (*Printer, error) {
	if diag == nil {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "logger cannot be nil for slog printer")
	}
	handler, err := log.NewHandler(w, log.Config{
		Level:   log.LevelDebug,
		Format:  cfg.Format,
		Backend: cfg.Backend,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigValidation, "failed to build slog bridge handler")
	}
	return &Printer{logger: slog.New(handler), diag: diag}, nil
}

// FromLogger wraps an existing logger. A nil diag discards handler failures.
func FromLogger(l *slog.Logger, diag ports.Logger) *Printer {
	if l == nil {
		l = slog.Default()
	}
	if diag == nil {
		diag = log.Discard()
	}
	return &Printer{logger: l, diag: diag}
}

func (p *Printer) Print(record domain.Record) {
	attrs := make([]slog.Attr, 0, 4)
	attrs = append(attrs, slog.String("tag", record.Tag), slog.String("priority", record.Level.Short()))
	if record.HasThread() {
		attrs = append(attrs, slog.String("thread", record.ThreadInfo))
	}
	if len(record.StackFrames) > 0 {
		attrs = append(attrs, slog.Any("stack", record.StackFrames))
	}

	r := slog.NewRecord(record.Time, SlogLevel(record.Level), record.Message, 0)
	r.AddAttrs(attrs...)
	ctx := context.Background()
	if !p.logger.Enabled(ctx, r.Level) {
		return
	}
	if err := p.logger.Handler().Handle(ctx, r); err != nil {
		p.diag.Warnf(ctx, "%v",
			apperrors.Wrap(err, apperrors.CodeSinkWriteError, "slog printer failed to handle record"))
	}
}

func SlogLevel(l domain.Level) slog.Level {
	switch l {
	case domain.LevelVerbose, domain.LevelDebug:
		return slog.LevelDebug
	case domain.LevelInfo:
		return slog.LevelInfo
	case domain.LevelWarn:
		return slog.LevelWarn
	case domain.LevelError:
		return slog.LevelError
	default:
		return LevelAssert
	}
}
