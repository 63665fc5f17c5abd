package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/ports"
	"github.com/olusolaa/hilog/internal/errors"
	"github.com/olusolaa/hilog/internal/log"
)

// Manager owns the global LogConfig and the printer registry and fans every
// accepted log call out to the registered printers.
type Manager struct {
	config   domain.LogConfig
	registry *PrinterRegistry
	logger   ports.Logger
	now      func() time.Time
}

type Option func(*Manager)

// WithPrinters registers printers in the given order.
func WithPrinters(printers ...ports.Printer) Option {
	return func(m *Manager) {
		for _, p := range printers {
			_ = m.registry.Add(p)
		}
	}
}

// WithLogger sets the diagnostics logger that receives printer failures.
func WithLogger(logger ports.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(cfg domain.LogConfig, opts ...Option) *Manager {
	cfg.StackTraceDepth = domain.ClampStackDepth(cfg.StackTraceDepth)
	m := &Manager{
		config:   cfg,
		registry: NewPrinterRegistry(),
		logger:   log.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the global config. It never changes for a given Manager.
func (m *Manager) Config() domain.LogConfig {
	return m.config
}

func (m *Manager) AddPrinter(p ports.Printer) error {
	return m.registry.Add(p)
}

func (m *Manager) RemovePrinter(p ports.Printer) bool {
	return m.registry.Remove(p)
}

// Printers returns a copy of the registered printers in delivery order.
func (m *Manager) Printers() []ports.Printer {
	snapshot := m.registry.Snapshot()
	out := make([]ports.Printer, len(snapshot))
	copy(out, snapshot)
	return out
}

// Log is the dispatch entry point. override may be nil; an empty tag falls
// back to the effective config's tag.
func (m *Manager) Log(override *domain.Override, level domain.Level, tag string, contents ...any) {
	m.log(override, level, tag, contents)
}

// LogTo dispatches like Log but delivers to printers instead of the registry.
// A nil slice falls back to the registry; an empty one delivers nowhere.
// Nil entries are skipped.
func (m *Manager) LogTo(printers []ports.Printer, override *domain.Override, level domain.Level, tag string, contents ...any) {
	if printers == nil {
		m.log(override, level, tag, contents)
		return
	}
	m.dispatch(printers, override, level, tag, contents)
}

func (m *Manager) log(override *domain.Override, level domain.Level, tag string, contents []any) {
	m.dispatch(nil, override, level, tag, contents)
}

func (m *Manager) dispatch(printers []ports.Printer, override *domain.Override, level domain.Level, tag string, contents []any) {
	if !m.config.IsEnabled() {
		return
	}
	cfg := m.config
	if override != nil {
		cfg = domain.Merge(m.config, override)
	}
	if !cfg.ShouldLog(level) {
		return
	}

	if printers == nil {
		printers = m.registry.Snapshot()
	}
	if len(printers) == 0 {
		return
	}

	if tag == "" {
		tag = cfg.Tag()
	}
	record := domain.Record{
		Time:        m.now(),
		Level:       level,
		Tag:         tag,
		Message:     m.renderBody(cfg, contents),
		StackFrames: captureStack(cfg.Depth()),
	}
	if cfg.IncludesThread() {
		record.ThreadInfo = goroutineInfo()
	}

	for i, p := range printers {
		if p == nil {
			continue
		}
		m.deliver(i, p, record)
	}
}

func (m *Manager) deliver(index int, p ports.Printer, record domain.Record) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		err := errors.NewPrinterError(errors.CodePrinterDelivery, fmt.Sprintf("#%d %T", index, p), "printer panicked", cause)
		m.logger.Errorf(context.Background(), err, "Printer delivery failed, continuing with remaining printers")
	}()
	p.Print(record)
}

func (m *Manager) Verbose(contents ...any) { m.log(nil, domain.LevelVerbose, "", contents) }
func (m *Manager) Debug(contents ...any)   { m.log(nil, domain.LevelDebug, "", contents) }
func (m *Manager) Info(contents ...any)    { m.log(nil, domain.LevelInfo, "", contents) }
func (m *Manager) Warn(contents ...any)    { m.log(nil, domain.LevelWarn, "", contents) }
func (m *Manager) Error(contents ...any)   { m.log(nil, domain.LevelError, "", contents) }
func (m *Manager) Assert(contents ...any)  { m.log(nil, domain.LevelAssert, "", contents) }

func (m *Manager) VerboseT(tag string, contents ...any) {
	m.log(nil, domain.LevelVerbose, tag, contents)
}
func (m *Manager) DebugT(tag string, contents ...any) { m.log(nil, domain.LevelDebug, tag, contents) }
func (m *Manager) InfoT(tag string, contents ...any)  { m.log(nil, domain.LevelInfo, tag, contents) }
func (m *Manager) WarnT(tag string, contents ...any)  { m.log(nil, domain.LevelWarn, tag, contents) }
func (m *Manager) ErrorT(tag string, contents ...any) { m.log(nil, domain.LevelError, tag, contents) }
func (m *Manager) AssertT(tag string, contents ...any) {
	m.log(nil, domain.LevelAssert, tag, contents)
}

// Flush flushes every buffering printer concurrently.
func (m *Manager) Flush(ctx context.Context) error {
	return m.eachUnique(ctx, func(ctx context.Context, p ports.Printer) error {
		if f, ok := p.(ports.Flusher); ok {
			return f.Flush(ctx)
		}
		return nil
	})
}

// Close releases every printer that holds resources. Closers are expected
// to flush before closing; printers that only buffer are flushed.
func (m *Manager) Close(ctx context.Context) error {
	return m.eachUnique(ctx, func(ctx context.Context, p ports.Printer) error {
		switch v := p.(type) {
		case io.Closer:
			return v.Close()
		case ports.Flusher:
			return v.Flush(ctx)
		}
		return nil
	})
}

func (m *Manager) eachUnique(ctx context.Context, fn func(context.Context, ports.Printer) error) error {
	g, gctx := errgroup.WithContext(ctx)
	var seen []ports.Printer
	for _, p := range m.registry.Snapshot() {
		dup := false
		for _, s := range seen {
			if samePrinter(s, p) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, p)

		p := p
		g.Go(func() error {
			if err := fn(gctx, p); err != nil {
				return errors.Wrap(err, errors.CodeSinkWriteError, fmt.Sprintf("printer %T failed to flush", p))
			}
			return nil
		})
	}
	return g.Wait()
}
