package service_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/ports"
	"github.com/olusolaa/hilog/internal/core/service"
	"github.com/olusolaa/hilog/internal/errors"
	"github.com/olusolaa/hilog/mocks"
)

// spyPrinter records every delivery, optionally appending its name to a
// shared journal so tests can check ordering across printers.
type spyPrinter struct {
	name    string
	journal *[]string
	mu      sync.Mutex
	records []domain.Record
}

func (s *spyPrinter) Print(r domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	if s.journal != nil {
		*s.journal = append(*s.journal, s.name)
	}
}

func (s *spyPrinter) Records() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Record(nil), s.records...)
}

type panickingPrinter struct {
	journal *[]string
	value   any
}

func (p *panickingPrinter) Print(domain.Record) {
	*p.journal = append(*p.journal, "panic")
	panic(p.value)
}

type flushingPrinter struct {
	spyPrinter
	flushes int
	err     error
}

func (f *flushingPrinter) Flush(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return f.err
}

type closingPrinter struct {
	spyPrinter
	closed int
}

func (c *closingPrinter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func baseConfig() domain.LogConfig {
	return domain.LogConfig{
		Enabled:   true,
		GlobalTag: "global",
		MinLevel:  domain.LevelVerbose,
	}
}

func toJSON(v any) (string, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(v)
}

func TestLog_DisabledGlobalConfigInvokesNoPrinter(t *testing.T) {
	cfg := baseConfig()
	cfg.Enabled = false
	spy := &spyPrinter{}
	m := service.NewManager(cfg, service.WithPrinters(spy))

	m.Log(nil, domain.LevelAssert, "T", "msg")
	m.Log(domain.NewOverride(domain.WithEnabled(true)), domain.LevelAssert, "T", "msg")
	m.Error("msg")

	assert.Empty(t, spy.Records())
}

func TestLog_OverrideCannotDisableGlobalEnabled(t *testing.T) {
	spy := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(spy))

	m.Log(domain.NewOverride(domain.WithEnabled(false)), domain.LevelInfo, "T", "still delivered")

	require.Len(t, spy.Records(), 1)
	assert.Equal(t, "still delivered", spy.Records()[0].Message)
}

func TestLog_LevelGate(t *testing.T) {
	cfg := baseConfig()
	cfg.MinLevel = domain.LevelError
	spy := &spyPrinter{}
	m := service.NewManager(cfg, service.WithPrinters(spy), service.WithClock(fixedClock))

	m.Log(nil, domain.LevelWarn, "T", "msg")
	assert.Empty(t, spy.Records())

	m.Log(nil, domain.LevelError, "T", "msg")
	want := []domain.Record{{
		Time:        fixedClock(),
		Level:       domain.LevelError,
		Tag:         "T",
		Message:     "msg",
		StackFrames: []string{},
	}}
	if diff := cmp.Diff(want, spy.Records()); diff != "" {
		t.Errorf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestLog_OverrideMinLevelApplies(t *testing.T) {
	spy := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(spy))

	m.Log(domain.NewOverride(domain.WithMinLevel(domain.LevelAssert)), domain.LevelError, "T", "dropped")
	m.Log(domain.NewOverride(domain.WithMinLevel(domain.LevelAssert)), domain.LevelAssert, "T", "kept")

	require.Len(t, spy.Records(), 1)
	assert.Equal(t, "kept", spy.Records()[0].Message)
}

func TestLog_EmptyTagFallsBackToEffectiveTag(t *testing.T) {
	spy := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(spy))

	m.Log(nil, domain.LevelInfo, "", "a")
	m.Log(domain.NewOverride(domain.WithTag("override")), domain.LevelInfo, "", "b")
	m.Info("c")
	m.InfoT("explicit", "d")

	records := spy.Records()
	require.Len(t, records, 4)
	assert.Equal(t, "global", records[0].Tag)
	assert.Equal(t, "override", records[1].Tag)
	assert.Equal(t, "global", records[2].Tag)
	assert.Equal(t, "explicit", records[3].Tag)
}

func TestLog_DeliveryOrder(t *testing.T) {
	var journal []string
	p1 := &spyPrinter{name: "p1", journal: &journal}
	p2 := &spyPrinter{name: "p2", journal: &journal}
	p3 := &spyPrinter{name: "p3", journal: &journal}
	m := service.NewManager(baseConfig(), service.WithPrinters(p1, p2, p3))

	m.Info("hello")

	assert.Equal(t, []string{"p1", "p2", "p3"}, journal)
}

func TestLog_DuplicatePrinterReceivesTwice(t *testing.T) {
	spy := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(spy, spy))

	m.Info("x")

	assert.Len(t, spy.Records(), 2)
}

func TestLog_FaultIsolation(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "panic with error", value: stderrors.New("sink exploded")},
		{name: "panic with string", value: "sink exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var journal []string
			p1 := &spyPrinter{name: "p1", journal: &journal}
			p2 := &panickingPrinter{journal: &journal, value: tt.value}
			p3 := &spyPrinter{name: "p3", journal: &journal}

			logger := new(mocks.MockLogger)
			logger.On("Errorf", mock.Anything, mock.MatchedBy(func(err error) bool {
				return errors.Is(err, errors.CodePrinterDelivery)
			}), mock.Anything, mock.Anything).Return().Once()

			m := service.NewManager(baseConfig(), service.WithPrinters(p1, p2, p3), service.WithLogger(logger))

			assert.NotPanics(t, func() { m.Error("boom") })
			assert.Equal(t, []string{"p1", "panic", "p3"}, journal)
			assert.Len(t, p1.Records(), 1)
			assert.Len(t, p3.Records(), 1)
			logger.AssertExpectations(t)
		})
	}
}

func TestLog_StackTraceDepth(t *testing.T) {
	spy := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(spy))

	m.Log(domain.NewOverride(domain.WithStackTraceDepth(2)), domain.LevelInfo, "T", "two")
	m.Log(domain.NewOverride(domain.WithStackTraceDepth(0)), domain.LevelInfo, "T", "zero")
	m.Log(domain.NewOverride(domain.WithStackTraceDepth(domain.StackTraceUnbounded)), domain.LevelInfo, "T", "all")
	m.Log(domain.NewOverride(domain.WithStackTraceDepth(-7)), domain.LevelInfo, "T", "clamped")

	records := spy.Records()
	require.Len(t, records, 4)

	require.Len(t, records[0].StackFrames, 2)
	assert.Contains(t, records[0].StackFrames[0], "TestLog_StackTraceDepth")
	assert.NotContains(t, records[0].StackFrames[0], "(*Manager)")

	assert.NotNil(t, records[1].StackFrames)
	assert.Empty(t, records[1].StackFrames)

	assert.GreaterOrEqual(t, len(records[2].StackFrames), 2)
	assert.Contains(t, records[2].StackFrames[0], "TestLog_StackTraceDepth")

	assert.Empty(t, records[3].StackFrames)
}

func TestLog_StackTraceThroughShorthand(t *testing.T) {
	cfg := baseConfig()
	cfg.StackTraceDepth = 1
	spy := &spyPrinter{}
	m := service.NewManager(cfg, service.WithPrinters(spy))

	m.AssertT("tag", "x")

	require.Len(t, spy.Records(), 1)
	frames := spy.Records()[0].StackFrames
	require.Len(t, frames, 1)
	assert.Contains(t, frames[0], "TestLog_StackTraceThroughShorthand")
}

func TestCaptureStack_InnermostFirst(t *testing.T) {
	frames := service.CaptureStack(1)
	require.Len(t, frames, 1)
	assert.Contains(t, frames[0], "TestCaptureStack_InnermostFirst")
	assert.Contains(t, frames[0], "manager_test.go:")
}

func TestLog_IncludeThread(t *testing.T) {
	spy := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(spy))

	m.Log(domain.NewOverride(domain.WithIncludeThread(true)), domain.LevelInfo, "T", "with thread")
	m.Log(nil, domain.LevelInfo, "T", "without thread")

	records := spy.Records()
	require.Len(t, records, 2)
	assert.True(t, strings.HasPrefix(records[0].ThreadInfo, "Thread: goroutine "), records[0].ThreadInfo)
	assert.False(t, records[1].HasThread())
}

func TestLog_StructuredMessageUsesJSONParser(t *testing.T) {
	cfg := baseConfig()
	cfg.JSONParser = toJSON
	spy := &spyPrinter{}
	m := service.NewManager(cfg, service.WithPrinters(spy))

	m.Info(map[string]int{"a": 1})

	require.Len(t, spy.Records(), 1)
	assert.Equal(t, `{"a":1}`, spy.Records()[0].Message)
}

type namedPoint struct{ X, Y int }

func (p namedPoint) String() string { return fmt.Sprintf("P(%d,%d)", p.X, p.Y) }

type celsius float64

func (c celsius) String() string { return fmt.Sprintf("%.1f°C", float64(c)) }

func TestLog_StructuredStringerPrefersJSONParser(t *testing.T) {
	cfg := baseConfig()
	cfg.JSONParser = toJSON
	spy := &spyPrinter{}
	m := service.NewManager(cfg, service.WithPrinters(spy))

	m.Info(namedPoint{X: 1, Y: 2}, celsius(21.5))
	require.Len(t, spy.Records(), 1)
	assert.Equal(t, `{"X":1,"Y":2};21.5°C`, spy.Records()[0].Message)

	plain := &spyPrinter{}
	service.NewManager(baseConfig(), service.WithPrinters(plain)).Info(namedPoint{X: 1, Y: 2})
	require.Len(t, plain.Records(), 1)
	assert.Equal(t, "P(1,2)", plain.Records()[0].Message, "without a parser the String method is used")
}

func TestLog_BodyRendering(t *testing.T) {
	type point struct{ X, Y int }
	failing := func(any) (string, error) { return "", stderrors.New("cannot encode") }

	tests := []struct {
		name     string
		parser   domain.JSONParser
		contents []any
		want     string
	}{
		{name: "no contents", contents: nil, want: ""},
		{name: "single string", contents: []any{"5566"}, want: "5566"},
		{name: "scalars joined", contents: []any{"a", 1, true}, want: "a;1;true"},
		{name: "error value", contents: []any{stderrors.New("bad")}, want: "bad"},
		{name: "nil value", contents: []any{nil}, want: "<nil>"},
		{name: "struct without parser", contents: []any{point{1, 2}}, want: "{X:1 Y:2}"},
		{name: "struct with parser", parser: toJSON, contents: []any{point{1, 2}}, want: `{"X":1,"Y":2}`},
		{name: "mixed with parser", parser: toJSON, contents: []any{"p", []int{1, 2}}, want: `p;[1,2]`},
		{name: "failing parser falls back", parser: failing, contents: []any{point{3, 4}}, want: "{X:3 Y:4}"},
		{name: "stringer", contents: []any{domain.LevelWarn}, want: "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.JSONParser = tt.parser
			spy := &spyPrinter{}
			m := service.NewManager(cfg, service.WithPrinters(spy))

			m.Log(nil, domain.LevelInfo, "T", tt.contents...)

			require.Len(t, spy.Records(), 1)
			assert.Equal(t, tt.want, spy.Records()[0].Message)
		})
	}
}

func TestLog_OverrideJSONParser(t *testing.T) {
	spy := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(spy))
	upper := func(v any) (string, error) { return strings.ToUpper(fmt.Sprint(v)), nil }

	m.Log(domain.NewOverride(domain.WithJSONParser(upper)), domain.LevelInfo, "T", []string{"a"})

	require.Len(t, spy.Records(), 1)
	assert.Equal(t, "[A]", spy.Records()[0].Message)
}

func TestShorthandLevels(t *testing.T) {
	spy := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(spy))

	m.Verbose("v")
	m.Debug("d")
	m.Info("i")
	m.Warn("w")
	m.Error("e")
	m.Assert("a")
	m.VerboseT("t", "v")
	m.DebugT("t", "d")
	m.InfoT("t", "i")
	m.WarnT("t", "w")
	m.ErrorT("t", "e")
	m.AssertT("t", "a")

	var got []domain.Level
	for _, r := range spy.Records() {
		got = append(got, r.Level)
	}
	levels := domain.AllLevels()
	assert.Equal(t, append(append([]domain.Level{}, levels...), levels...), got)
}

func TestAddRemovePrinter(t *testing.T) {
	p1 := &spyPrinter{}
	p2 := &spyPrinter{}
	m := service.NewManager(baseConfig())

	require.NoError(t, m.AddPrinter(p1))
	require.NoError(t, m.AddPrinter(p2))
	require.NoError(t, m.AddPrinter(p1))
	assert.Len(t, m.Printers(), 3)

	assert.True(t, m.RemovePrinter(p1))
	assert.Equal(t, []ports.Printer{p2, p1}, m.Printers())

	assert.False(t, m.RemovePrinter(&spyPrinter{}))

	err := m.AddPrinter(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInvalidPrinter))

	m.Info("x")
	assert.Len(t, p1.Records(), 1)
	assert.Len(t, p2.Records(), 1)
}

func TestLogTo_PerCallPrinterSet(t *testing.T) {
	registered := &spyPrinter{}
	direct := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(registered))

	m.LogTo([]ports.Printer{direct, nil}, nil, domain.LevelInfo, "T", "only direct")
	require.Len(t, direct.Records(), 1)
	assert.Equal(t, "only direct", direct.Records()[0].Message)
	assert.Empty(t, registered.Records(), "registry is bypassed when a set is given")

	m.LogTo(nil, nil, domain.LevelInfo, "T", "registry")
	require.Len(t, registered.Records(), 1)
	assert.Equal(t, "registry", registered.Records()[0].Message)
	assert.Len(t, direct.Records(), 1)

	m.LogTo([]ports.Printer{}, nil, domain.LevelAssert, "T", "nowhere")
	assert.Len(t, registered.Records(), 1)
	assert.Len(t, direct.Records(), 1)
}

func TestLogTo_StillAppliesLevelGate(t *testing.T) {
	direct := &spyPrinter{}
	m := service.NewManager(baseConfig())

	m.LogTo([]ports.Printer{direct}, domain.NewOverride(domain.WithMinLevel(domain.LevelError)), domain.LevelWarn, "T", "dropped")
	assert.Empty(t, direct.Records())

	m.LogTo([]ports.Printer{direct}, domain.NewOverride(domain.WithMinLevel(domain.LevelError)), domain.LevelError, "", "kept")
	require.Len(t, direct.Records(), 1)
	assert.Equal(t, baseConfig().Tag(), direct.Records()[0].Tag)
}

func TestConcurrentLogAndRegistryMutation(t *testing.T) {
	m := service.NewManager(baseConfig())
	stable := &spyPrinter{}
	require.NoError(t, m.AddPrinter(stable))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Info("concurrent")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p := &spyPrinter{}
				_ = m.AddPrinter(p)
				m.RemovePrinter(p)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, stable.Records(), 800)
	assert.Equal(t, []ports.Printer{stable}, m.Printers())
}

func TestFlushAndClose(t *testing.T) {
	f := &flushingPrinter{}
	c := &closingPrinter{}
	plain := &spyPrinter{}
	m := service.NewManager(baseConfig(), service.WithPrinters(f, c, plain, f))

	require.NoError(t, m.Flush(context.Background()))
	assert.Equal(t, 1, f.flushes)
	assert.Equal(t, 0, c.closed)

	require.NoError(t, m.Close(context.Background()))
	assert.Equal(t, 2, f.flushes)
	assert.Equal(t, 1, c.closed)
}

func TestFlushReportsPrinterError(t *testing.T) {
	f := &flushingPrinter{err: stderrors.New("disk full")}
	m := service.NewManager(baseConfig(), service.WithPrinters(f))

	err := m.Flush(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeSinkWriteError))
	assert.ErrorContains(t, err, "disk full")
}

func TestNewManager_ClampsStackDepth(t *testing.T) {
	cfg := baseConfig()
	cfg.StackTraceDepth = -3
	m := service.NewManager(cfg)
	assert.Equal(t, 0, m.Config().StackTraceDepth)
}
