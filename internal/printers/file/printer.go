package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/ports"
	apperrors "github.com/olusolaa/hilog/internal/errors"
)

const PrinterTypeFile = "file"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
	// SyncEvery forces a flush after this many records; 0 flushes only on
	// Flush and Close.
	SyncEvery int `yaml:"sync_every" mapstructure:"sync_every" validate:"gte=0"`
}

type Printer struct {
	config  Config
	mu      sync.Mutex
	closer  io.Closer
	buf     *bufio.Writer
	logger  ports.Logger
	pending int
	closed  bool
}

// jsonLine is the on-disk shape of one record.
type jsonLine struct {
	Time       string   `json:"time"`
	Level      string   `json:"level"`
	Priority   int      `json:"priority"`
	Tag        string   `json:"tag"`
	Message    string   `json:"message"`
	Thread     string   `json:"thread,omitempty"`
	StackTrace []string `json:"stack_trace,omitempty"`
}

// NewPrinter opens cfg.Path for appending, creating parent directories.
func NewPrinter(cfg Config, logger ports.Logger) (*Printer, error) {
	if logger == nil {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "logger cannot be nil for file printer")
	}
	if cfg.Path == "" {
		return nil, apperrors.NewUserFacing(apperrors.CodeConfigValidation,
			"file printer requires a path", "Set printers.file.path in the configuration")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSinkWriteError, fmt.Sprintf("failed to create directory for %s", cfg.Path))
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSinkWriteError, fmt.Sprintf("failed to open %s", cfg.Path))
	}
	return newPrinter(cfg, f, f, logger), nil
}

// NewPrinterTo writes to w instead of a file. Close closes w when it is an
// io.Closer.
func NewPrinterTo(cfg Config, w io.Writer, logger ports.Logger) *Printer {
	c, _ := w.(io.Closer)
	return newPrinter(cfg, w, c, logger)
}

func newPrinter(cfg Config, w io.Writer, c io.Closer, logger ports.Logger) *Printer {
	return &Printer{
		config: cfg,
		closer: c,
		buf:    bufio.NewWriter(w),
		logger: logger,
	}
}

func (p *Printer) Print(record domain.Record) {
	line := jsonLine{
		Time:       record.Time.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Level:      record.Level.String(),
		Priority:   int(record.Level),
		Tag:        record.Tag,
		Message:    record.Message,
		Thread:     record.ThreadInfo,
		StackTrace: record.StackFrames,
	}
	data, err := json.Marshal(line)
	if err != nil {
		p.logger.Warnf(context.Background(), "%v",
			apperrors.Wrap(err, apperrors.CodeSerialization, "failed to encode record"))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if _, err := p.buf.Write(append(data, '\n')); err != nil {
		p.reportWrite(err)
		return
	}
	p.pending++
	if p.config.SyncEvery > 0 && p.pending >= p.config.SyncEvery {
		if err := p.flushLocked(); err != nil {
			p.reportWrite(err)
		}
	}
}

func (p *Printer) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	return p.flushLocked()
}

// Close flushes buffered lines and closes the underlying file. Records
// printed after Close are dropped.
func (p *Printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	err := p.flushLocked()
	if p.closer != nil {
		if cerr := p.closer.Close(); cerr != nil && err == nil {
			err = apperrors.Wrap(cerr, apperrors.CodeSinkWriteError, "failed to close log file")
		}
	}
	return err
}

func (p *Printer) flushLocked() error {
	p.pending = 0
	if err := p.buf.Flush(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeSinkWriteError, "failed to flush log file")
	}
	return nil
}

func (p *Printer) reportWrite(err error) {
	p.logger.Warnf(context.Background(), "%v",
		apperrors.Wrap(err, apperrors.CodeSinkWriteError, "failed to write record to log file"))
}
