package service

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/olusolaa/hilog/internal/core/ports"
	"github.com/olusolaa/hilog/internal/errors"
)

// PrinterRegistry is an ordered, copy-on-write list of printers. Writers
// serialize on mu and publish a fresh slice; readers load the published
// slice without locking, so a dispatch in progress keeps iterating the
// snapshot it started with.
type PrinterRegistry struct {
	mu       sync.Mutex
	printers atomic.Pointer[[]ports.Printer]
}

func NewPrinterRegistry(printers ...ports.Printer) *PrinterRegistry {
	r := &PrinterRegistry{}
	initial := make([]ports.Printer, 0, len(printers))
	for _, p := range printers {
		if p != nil {
			initial = append(initial, p)
		}
	}
	r.printers.Store(&initial)
	return r
}

// Add appends p. Duplicates are kept; each occurrence receives the record.
func (r *PrinterRegistry) Add(p ports.Printer) error {
	if p == nil {
		return errors.New(errors.CodeInvalidPrinter, "attempted to register nil printer")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.load()
	next := make([]ports.Printer, len(current), len(current)+1)
	copy(next, current)
	next = append(next, p)
	r.printers.Store(&next)
	return nil
}

// Remove deletes the first occurrence of p and reports whether one was found.
func (r *PrinterRegistry) Remove(p ports.Printer) bool {
	if p == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.load()
	for i, existing := range current {
		if !samePrinter(existing, p) {
			continue
		}
		next := make([]ports.Printer, 0, len(current)-1)
		next = append(next, current[:i]...)
		next = append(next, current[i+1:]...)
		r.printers.Store(&next)
		return true
	}
	return false
}

// Snapshot returns the currently published slice. Callers must not modify it.
func (r *PrinterRegistry) Snapshot() []ports.Printer {
	return r.load()
}

func (r *PrinterRegistry) Len() int {
	return len(r.load())
}

func (r *PrinterRegistry) load() []ports.Printer {
	if p := r.printers.Load(); p != nil {
		return *p
	}
	return nil
}

// samePrinter compares by identity. Printers of uncomparable dynamic types
// (func or slice backed values) never match, instead of panicking.
func samePrinter(a, b ports.Printer) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
