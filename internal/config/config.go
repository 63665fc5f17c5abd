package config

import (
	"time"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/log"
	"github.com/olusolaa/hilog/internal/printers/console"
	"github.com/olusolaa/hilog/internal/printers/file"
	"github.com/olusolaa/hilog/internal/printers/s3archive"
	"github.com/olusolaa/hilog/internal/printers/slogbridge"
	"github.com/olusolaa/hilog/internal/printers/view"
	"github.com/olusolaa/hilog/internal/printers/ws"
)

type Config struct {
	Settings SettingsConfig `yaml:"settings" mapstructure:"settings"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Printers PrintersConfig `yaml:"printers" mapstructure:"printers"`
	Serve    ServeConfig    `yaml:"serve" mapstructure:"serve"`
}

// SettingsConfig configures the diagnostics logger, not the log manager.
type SettingsConfig struct {
	LogLevel   log.Level   `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat  log.Format  `yaml:"log_format" mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	LogBackend log.Backend `yaml:"log_backend" mapstructure:"log_backend" validate:"omitempty,oneof=std zap"`
}

// LogConfig is the file form of the manager's global config. The JSON parser
// is injected by the application and has no file representation.
type LogConfig struct {
	Enabled         bool         `yaml:"enabled" mapstructure:"enabled"`
	GlobalTag       string       `yaml:"global_tag" mapstructure:"global_tag"`
	MinLevel        domain.Level `yaml:"min_level" mapstructure:"min_level" validate:"min=2,max=7"`
	IncludeThread   bool         `yaml:"include_thread" mapstructure:"include_thread"`
	StackTraceDepth int          `yaml:"stack_trace_depth" mapstructure:"stack_trace_depth"`
}

func (c LogConfig) ToDomain(parser domain.JSONParser) domain.LogConfig {
	return domain.LogConfig{
		Enabled:         c.Enabled,
		GlobalTag:       c.GlobalTag,
		MinLevel:        c.MinLevel,
		IncludeThread:   c.IncludeThread,
		StackTraceDepth: domain.ClampStackDepth(c.StackTraceDepth),
		JSONParser:      parser,
	}
}

type PrintersConfig struct {
	// Enabled lists the printers registered at startup, in delivery order.
	Enabled []string           `yaml:"enabled" mapstructure:"enabled" validate:"dive,oneof=console view file slog ws s3"`
	Console *console.Config    `yaml:"console,omitempty" mapstructure:"console"`
	View    *view.Config       `yaml:"view,omitempty" mapstructure:"view"`
	File    *file.Config       `yaml:"file,omitempty" mapstructure:"file"`
	Slog    *slogbridge.Config `yaml:"slog,omitempty" mapstructure:"slog"`
	S3      *s3archive.Config  `yaml:"s3,omitempty" mapstructure:"s3"`
}

func (p PrintersConfig) IsEnabled(name string) bool {
	for _, n := range p.Enabled {
		if n == name {
			return true
		}
	}
	return false
}

type ServeConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr" validate:"required"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gt=0"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:   log.LevelInfo,
			LogFormat:  log.FormatText,
			LogBackend: log.BackendStd,
		},
		Log: LogConfig{
			Enabled:  true,
			MinLevel: domain.LevelVerbose,
		},
		Printers: PrintersConfig{
			Enabled: []string{console.PrinterTypeConsole},
			Console: &console.Config{MaxLen: console.DefaultMaxLen},
			View:    &view.Config{Capacity: view.DefaultCapacity},
			Slog:    &slogbridge.Config{Backend: log.BackendStd, Format: log.FormatText},
		},
		Serve: ServeConfig{
			Addr:     ":8088",
			Interval: 2 * time.Second,
		},
	}
}

// PrinterTypes lists every printer name accepted in printers.enabled.
func PrinterTypes() []string {
	return []string{
		console.PrinterTypeConsole,
		view.PrinterTypeView,
		file.PrinterTypeFile,
		slogbridge.PrinterTypeSlog,
		ws.PrinterTypeWS,
		s3archive.PrinterTypeS3,
	}
}
