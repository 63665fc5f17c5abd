package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/olusolaa/hilog/internal/config"
	"github.com/olusolaa/hilog/internal/core/ports"
	"github.com/olusolaa/hilog/internal/core/service"
	"github.com/olusolaa/hilog/internal/errors"
	"github.com/olusolaa/hilog/internal/log"
	"github.com/olusolaa/hilog/internal/printers/console"
	"github.com/olusolaa/hilog/internal/printers/file"
	"github.com/olusolaa/hilog/internal/printers/s3archive"
	"github.com/olusolaa/hilog/internal/printers/slogbridge"
	"github.com/olusolaa/hilog/internal/printers/view"
	"github.com/olusolaa/hilog/internal/printers/ws"
)

// BuildApplicationFromViper decodes and validates the configuration, builds
// the configured printers and installs the global log manager.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg, err := config.Decode(v)
	if err != nil {
		return nil, err
	}

	logger, err := log.NewLogger(log.Config{
		Level:   cfg.Settings.LogLevel,
		Format:  cfg.Settings.LogFormat,
		Backend: cfg.Settings.LogBackend,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s, Backend: %s)",
		cfg.Settings.LogLevel, cfg.Settings.LogFormat, cfg.Settings.LogBackend)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	if err := config.Validate(ctx, cfg); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	return NewApplication(ctx, cfg, logger)
}

// NewApplication builds the printers named in cfg.Printers.Enabled and
// installs a manager on them as the global instance.
func NewApplication(ctx context.Context, cfg *config.Config, logger ports.Logger) (*Application, error) {
	a := &Application{Logger: logger, Config: cfg}

	printers := make([]ports.Printer, 0, len(cfg.Printers.Enabled))
	for _, name := range cfg.Printers.Enabled {
		p, err := a.buildPrinter(ctx, name)
		if err != nil {
			closePrinters(ctx, logger, printers)
			return nil, err
		}
		printers = append(printers, p)
		logger.Debugf(ctx, "Registered printer: %s", name)
	}

	a.Manager = service.NewManager(cfg.Log.ToDomain(JSONParser),
		service.WithPrinters(printers...),
		service.WithLogger(logger.WithFields(map[string]any{"component": "manager"})),
	)
	if err := service.Install(a.Manager); err != nil {
		closePrinters(ctx, logger, printers)
		return nil, err
	}

	logger.Infof(ctx, "Log manager initialized with %d printer(s)", len(printers))
	return a, nil
}

// closePrinters releases printers built before a failed bootstrap. Each
// distinct printer is closed once.
func closePrinters(ctx context.Context, logger ports.Logger, printers []ports.Printer) {
	closed := make(map[io.Closer]bool, len(printers))
	for _, p := range printers {
		c, ok := p.(io.Closer)
		if !ok || closed[c] {
			continue
		}
		closed[c] = true
		if err := c.Close(); err != nil {
			logger.Warnf(ctx, "%v", errors.Wrap(err, errors.CodeSinkWriteError, fmt.Sprintf("failed to close printer %T after bootstrap error", p)))
		}
	}
}

func (a *Application) buildPrinter(ctx context.Context, name string) (ports.Printer, error) {
	cfg := a.Config.Printers
	printerLog := a.Logger.WithFields(map[string]any{"printer": name})

	switch name {
	case console.PrinterTypeConsole:
		if cfg.Console == nil {
			cfg.Console = config.DefaultConfig().Printers.Console
		}
		p, err := console.NewPrinter(*cfg.Console, printerLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize console printer")
		}
		return p, nil
	case view.PrinterTypeView:
		return a.viewPrinter(), nil
	case file.PrinterTypeFile:
		if cfg.File == nil {
			return nil, errors.NewUserFacing(errors.CodeConfigValidation,
				"file printer enabled without configuration", "Configure the printers.file section.")
		}
		return file.NewPrinter(*cfg.File, printerLog)
	case slogbridge.PrinterTypeSlog:
		if cfg.Slog == nil {
			cfg.Slog = config.DefaultConfig().Printers.Slog
		}
		return slogbridge.NewPrinter(*cfg.Slog, printerLog)
	case ws.PrinterTypeWS:
		return a.wsPrinter(), nil
	case s3archive.PrinterTypeS3:
		if cfg.S3 == nil {
			return nil, errors.NewUserFacing(errors.CodeConfigValidation,
				"s3 printer enabled without configuration", "Configure the printers.s3 section.")
		}
		p, err := s3archive.NewPrinterFromEnvironment(ctx, *cfg.S3, printerLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize S3 archive printer")
		}
		return p, nil
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported printer type: %s", name), fmt.Sprintf("Supported: %v", config.PrinterTypes()))
	}
}

// viewPrinter returns the application's single overlay printer, creating it
// on first use.
func (a *Application) viewPrinter() *view.Printer {
	if a.View == nil {
		vc := config.DefaultConfig().Printers.View
		if a.Config.Printers.View != nil {
			vc = a.Config.Printers.View
		}
		a.View = view.NewPrinter(*vc)
	}
	return a.View
}

func (a *Application) wsPrinter() *ws.Printer {
	if a.WS == nil {
		a.WS = ws.NewPrinter(ws.NewHub())
	}
	return a.WS
}
