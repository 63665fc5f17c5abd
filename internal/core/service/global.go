package service

import (
	"sync"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/ports"
	"github.com/olusolaa/hilog/internal/errors"
)

// The process-wide accessor exists for call sites that cannot be handed a
// *Manager. Applications should prefer passing the Manager explicitly.
var (
	globalMu sync.RWMutex
	global   *Manager
)

// Init creates the process-wide Manager. A second call is rejected with
// ErrAlreadyInitialized and leaves the existing Manager untouched.
func Init(cfg domain.LogConfig, printers ...ports.Printer) (*Manager, error) {
	m := NewManager(cfg, WithPrinters(printers...))
	if err := Install(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Install publishes an already-built Manager as the process-wide instance,
// with the same init-once rule as Init.
func Install(m *Manager) error {
	if m == nil {
		return errors.New(errors.CodeInternal, "cannot install nil log manager")
	}
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return errors.ErrAlreadyInitialized
	}
	global = m
	return nil
}

// Reinit explicitly replaces the process-wide Manager.
func Reinit(cfg domain.LogConfig, printers ...ports.Printer) *Manager {
	m := NewManager(cfg, WithPrinters(printers...))
	globalMu.Lock()
	global = m
	globalMu.Unlock()
	return m
}

func Instance() (*Manager, error) {
	globalMu.RLock()
	defer globalMu.RUnlock()

	if global == nil {
		return nil, errors.ErrNotInitialized
	}
	return global, nil
}

// MustInstance panics with ErrNotInitialized when Init was never called.
func MustInstance() *Manager {
	m, err := Instance()
	if err != nil {
		panic(err)
	}
	return m
}

// Uninstall clears the process-wide Manager if it is m. It reports whether m
// was installed.
func Uninstall(m *Manager) bool {
	globalMu.Lock()
	defer globalMu.Unlock()

	if m == nil || global != m {
		return false
	}
	global = nil
	return true
}
