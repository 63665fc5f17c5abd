package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/olusolaa/hilog/internal/core/ports"
	apperrors "github.com/olusolaa/hilog/internal/errors"
)

type slogAdapter struct {
	logger *slog.Logger
}

// NewLogger builds the diagnostics logger used by the library itself. It
// writes to stderr so it never mixes with console printer output.
func NewLogger(cfg Config) (ports.Logger, error) {
	return NewLoggerTo(os.Stderr, cfg)
}

func NewLoggerTo(w io.Writer, cfg Config) (ports.Logger, error) {
	handler, err := NewHandler(w, cfg)
	if err != nil {
		return nil, err
	}
	return &slogAdapter{logger: slog.New(handler)}, nil
}

// NewHandler builds the slog handler for cfg: a text or JSON handler for the
// std backend, or a zap core behind slog-zap.
func NewHandler(w io.Writer, cfg Config) (slog.Handler, error) {
	if w == nil {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "log output writer cannot be nil")
	}
	level := ToSlogLevel(cfg.Level)

	switch cfg.Backend {
	case BackendZap:
		return newZapHandler(w, level), nil
	case BackendStd, "":
		opts := &slog.HandlerOptions{Level: level}
		if cfg.Format == FormatJSON {
			return slog.NewJSONHandler(w, opts), nil
		}
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, apperrors.NewUserFacing(apperrors.CodeConfigValidation,
			fmt.Sprintf("unsupported log backend: %s", cfg.Backend), "Supported: std, zap")
	}
}

// Discard returns a logger that drops everything; used when no diagnostics
// logger is injected.
func Discard() ports.Logger {
	return &slogAdapter{logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 4}))}
}

func ToSlogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newZapHandler(w io.Writer, lvl slog.Level) slog.Handler {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), toZapLevel(lvl))
	return slogzap.Option{Level: lvl, Logger: zap.New(core)}.NewZapHandler()
}

func toZapLevel(lvl slog.Level) zapcore.Level {
	switch {
	case lvl <= slog.LevelDebug:
		return zapcore.DebugLevel
	case lvl == slog.LevelInfo:
		return zapcore.InfoLevel
	case lvl == slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func (s *slogAdapter) log(ctx context.Context, level slog.Level, err error, format string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !s.logger.Enabled(ctx, level) {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	attrs := []slog.Attr{}
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			attrs = append(attrs, slog.String("error_code", string(appErr.Code)))
			if appErr.Printer != "" {
				attrs = append(attrs, slog.String("error_printer", appErr.Printer))
			}
			if appErr.InternalDetails != "" {
				attrs = append(attrs, slog.String("error_details", appErr.InternalDetails))
			}
			if appErr.WrappedError != nil {
				attrs = append(attrs, slog.String("error_wrapped", appErr.WrappedError.Error()))
			}
		} else {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
	}

	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *slogAdapter) Debugf(ctx context.Context, format string, args ...any) {
	s.log(ctx, slog.LevelDebug, nil, format, args...)
}

func (s *slogAdapter) Infof(ctx context.Context, format string, args ...any) {
	s.log(ctx, slog.LevelInfo, nil, format, args...)
}

func (s *slogAdapter) Warnf(ctx context.Context, format string, args ...any) {
	s.log(ctx, slog.LevelWarn, nil, format, args...)
}

func (s *slogAdapter) Errorf(ctx context.Context, err error, format string, args ...any) {
	s.log(ctx, slog.LevelError, err, format, args...)
}

func (s *slogAdapter) WithFields(fields map[string]any) ports.Logger {
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &slogAdapter{logger: s.logger.With(args...)}
}
