package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/format"
	"github.com/olusolaa/hilog/internal/core/ports"
	apperrors "github.com/olusolaa/hilog/internal/errors"
)

const PrinterTypeConsole = "console"

// DefaultMaxLen is the longest line written in one piece; longer bodies are
// split over several lines carrying the same prefix.
const DefaultMaxLen = 512

const defaultTimeFormat = "15:04:05.000"

type Config struct {
	NoColor    bool   `yaml:"no_color" mapstructure:"no_color"`
	MaxLen     int    `yaml:"max_len" mapstructure:"max_len" validate:"gte=0"`
	TimeFormat string `yaml:"time_format" mapstructure:"time_format"`
}

type Printer struct {
	config Config
	mu     sync.Mutex
	writer io.Writer
	logger ports.Logger
	colors map[domain.Level]*color.Color
}

type Option func(*Printer)

func WithWriter(w io.Writer) Option {
	return func(p *Printer) {
		if w != nil {
			p.writer = w
		}
	}
}

func NewPrinter(cfg Config, logger ports.Logger, opts ...Option) (*Printer, error) {
	if logger == nil {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "logger cannot be nil for console printer")
	}
	if cfg.MaxLen == 0 {
		cfg.MaxLen = DefaultMaxLen
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaultTimeFormat
	}

	p := &Printer{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
		colors: map[domain.Level]*color.Color{
			domain.LevelVerbose: color.New(color.FgHiBlack),
			domain.LevelDebug:   color.New(color.FgWhite),
			domain.LevelInfo:    color.New(color.FgGreen),
			domain.LevelWarn:    color.New(color.FgYellow),
			domain.LevelError:   color.New(color.FgRed),
			domain.LevelAssert:  color.New(color.FgHiYellow, color.Bold),
		},
	}
	for _, opt := range opts {
		opt(p)
	}

	if cfg.NoColor || !isTerminal(p.writer) {
		for _, c := range p.colors {
			c.DisableColor()
		}
	}
	return p, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// Print writes one line per chunk of the record body, e.g.
//
//	12:00:00.000 E/tag: message
func (p *Printer) Print(record domain.Record) {
	prefix := fmt.Sprintf("%s %s/%s: ", record.Time.Format(p.config.TimeFormat), record.Level.Short(), record.Tag)
	c, ok := p.colors[record.Level]
	if !ok {
		c = p.colors[domain.LevelDebug]
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, chunk := range format.Chunks(format.Body(record), p.config.MaxLen) {
		if _, err := c.Fprintln(p.writer, prefix+chunk); err != nil {
			p.logger.Warnf(context.Background(), "%v",
				apperrors.Wrap(err, apperrors.CodeSinkWriteError, "console printer failed to write record"))
			return
		}
	}
}
