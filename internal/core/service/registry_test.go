package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/ports"
)

type namedPrinter struct{ name string }

func (namedPrinter) Print(domain.Record) {}

// funcPrinter has an uncomparable dynamic type.
type funcPrinter func(domain.Record)

func (f funcPrinter) Print(r domain.Record) { f(r) }

func TestPrinterRegistry_SnapshotIsolation(t *testing.T) {
	a := &namedPrinter{name: "a"}
	b := &namedPrinter{name: "b"}
	r := NewPrinterRegistry(a, nil)

	before := r.Snapshot()
	require.NoError(t, r.Add(b))
	after := r.Snapshot()

	assert.Equal(t, []ports.Printer{a}, before)
	assert.Equal(t, []ports.Printer{a, b}, after)
	assert.Equal(t, 2, r.Len())
}

func TestPrinterRegistry_RemoveFirstOccurrence(t *testing.T) {
	a := &namedPrinter{name: "a"}
	b := &namedPrinter{name: "b"}
	r := NewPrinterRegistry(a, b, a)

	assert.True(t, r.Remove(a))
	assert.Equal(t, []ports.Printer{b, a}, r.Snapshot())
	assert.False(t, r.Remove(nil))
}

func TestPrinterRegistry_ValueTypesCompareByValue(t *testing.T) {
	r := NewPrinterRegistry(namedPrinter{name: "x"})

	assert.False(t, r.Remove(namedPrinter{name: "y"}))
	assert.True(t, r.Remove(namedPrinter{name: "x"}))
	assert.Zero(t, r.Len())
}

func TestPrinterRegistry_UncomparablePrinterDoesNotPanic(t *testing.T) {
	f := funcPrinter(func(domain.Record) {})
	r := NewPrinterRegistry(f)

	assert.NotPanics(t, func() {
		assert.False(t, r.Remove(f))
	})
	assert.Equal(t, 1, r.Len())
}

func TestGoroutineInfo(t *testing.T) {
	info := goroutineInfo()
	assert.Regexp(t, `^Thread: goroutine \d+$`, info)
}
