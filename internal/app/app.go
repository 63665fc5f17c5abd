package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/hilog/internal/config"
	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/ports"
	"github.com/olusolaa/hilog/internal/core/service"
	apperrors "github.com/olusolaa/hilog/internal/errors"
	"github.com/olusolaa/hilog/internal/printers/view"
	"github.com/olusolaa/hilog/internal/printers/ws"
)

const (
	DefaultDemoOverride = "thread=true;depth=0"
	DefaultDemoTag      = "----"
	DefaultDemoMessage  = "5566"
	demoAssertMessage   = "9900"
	heartbeatTag        = "heartbeat"
	shutdownTimeout     = 5 * time.Second
)

type Application struct {
	Manager *service.Manager
	Logger  ports.Logger
	Config  *config.Config
	// View and WS are set when the corresponding printer is in use.
	View *view.Printer
	WS   *ws.Printer
}

type DemoOptions struct {
	Override string
	Tag      string
	Messages []string
}

// RunDemo opens the overlay, logs one record at ERROR through a per-call
// override and one at ASSERT, then renders the overlay panel to w.
func (a *Application) RunDemo(ctx context.Context, w io.Writer, opts DemoOptions) error {
	override, err := parseOverride(opts.Override)
	if err != nil {
		return err
	}
	if enabled, set := override.Enabled(); set && !enabled {
		a.Logger.Warnf(ctx, "Override enabled=false is ignored: only the global log.enabled switch can disable logging")
	}
	if opts.Tag == "" {
		opts.Tag = DefaultDemoTag
	}
	if len(opts.Messages) == 0 {
		opts.Messages = []string{DefaultDemoMessage}
	}

	overlay := a.ensureView(ctx)
	overlay.ShowFloatingButton()
	a.Logger.Debugf(ctx, "Floating button shown")

	contents := make([]any, len(opts.Messages))
	for i, m := range opts.Messages {
		contents[i] = m
	}
	a.Manager.Log(override, domain.LevelError, opts.Tag, contents...)
	a.Manager.Assert(demoAssertMessage)

	overlay.ShowLogView()
	if err := overlay.Render(w); err != nil {
		return apperrors.Wrap(err, apperrors.CodeSinkWriteError, "failed to render log view")
	}
	overlay.CloseLogView()
	overlay.CloseFloatingButton()

	return a.Manager.Flush(ctx)
}

// Serve exposes the websocket stream and overlay snapshot on addr and logs a
// heartbeat record every interval until ctx is cancelled. Heartbeats go to the
// overlay and the stream only, never to archiving printers.
func (a *Application) Serve(ctx context.Context, addr string, interval time.Duration) error {
	wsPrinter := a.ensureWS(ctx)
	overlay := a.ensureView(ctx)
	overlay.ShowFloatingButton()
	live := []ports.Printer{overlay, wsPrinter}

	router := ws.NewRouter(ws.NewServer(wsPrinter.Hub(), a.Logger.WithFields(map[string]any{"component": "ws"})), overlay)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Logger.Infof(gctx, "Serving log stream on %s (/ws, /logs, /healthz)", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.Wrap(err, apperrors.CodeInternal, "http server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var n int
		for {
			select {
			case <-gctx.Done():
				return nil
			case t := <-ticker.C:
				n++
				a.Manager.LogTo(live, nil, domain.LevelInfo, heartbeatTag, map[string]any{"beat": n, "at": t.UTC().Format(time.RFC3339)})
			}
		}
	})

	return g.Wait()
}

// Close flushes and releases every printer and uninstalls the global
// manager.
func (a *Application) Close(ctx context.Context) error {
	if a.Manager == nil {
		return nil
	}
	defer service.Uninstall(a.Manager)
	return a.Manager.Close(ctx)
}

// ensureView registers the overlay printer when printers.enabled left it out.
func (a *Application) ensureView(ctx context.Context) *view.Printer {
	if a.View == nil && !a.Config.Printers.IsEnabled(view.PrinterTypeView) {
		a.Logger.Debugf(ctx, "Attaching %s printer on demand", view.PrinterTypeView)
		_ = a.Manager.AddPrinter(a.viewPrinter())
	}
	return a.viewPrinter()
}

func (a *Application) ensureWS(ctx context.Context) *ws.Printer {
	if a.WS == nil && !a.Config.Printers.IsEnabled(ws.PrinterTypeWS) {
		a.Logger.Debugf(ctx, "Attaching %s printer on demand", ws.PrinterTypeWS)
		_ = a.Manager.AddPrinter(a.wsPrinter())
	}
	return a.wsPrinter()
}
