package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func globalConfig(enabled bool) LogConfig {
	return LogConfig{
		Enabled:         enabled,
		GlobalTag:       "G",
		MinLevel:        LevelInfo,
		IncludeThread:   false,
		StackTraceDepth: 3,
		JSONParser:      func(any) (string, error) { return "global", nil },
	}
}

func TestDefaultLogConfig(t *testing.T) {
	cfg := DefaultLogConfig()
	assert.True(t, cfg.IsEnabled())
	assert.Equal(t, DefaultTag(), cfg.Tag())
	assert.NotEmpty(t, cfg.Tag())
	assert.False(t, cfg.IncludesThread())
	assert.Equal(t, 0, cfg.Depth())
	assert.Nil(t, cfg.Parser())
	assert.True(t, cfg.ShouldLog(LevelVerbose))
}

func TestMerge_EnabledAlwaysFromGlobal(t *testing.T) {
	overrides := []*Override{
		nil,
		NewOverride(),
		NewOverride(WithEnabled(true)),
		NewOverride(WithEnabled(false)),
		NewOverride(WithEnabled(false), WithTag("x")),
	}
	for _, global := range []bool{true, false} {
		for _, o := range overrides {
			assert.Equal(t, global, Merge(globalConfig(global), o).IsEnabled())
		}
	}
}

func TestMerge_UnsetFieldsFallBackToGlobal(t *testing.T) {
	g := globalConfig(true)

	merged := Merge(g, NewOverride())
	assert.Equal(t, g.GlobalTag, merged.GlobalTag)
	assert.Equal(t, g.MinLevel, merged.MinLevel)
	assert.Equal(t, g.IncludeThread, merged.IncludeThread)
	assert.Equal(t, g.StackTraceDepth, merged.StackTraceDepth)
	s, _ := merged.Parser()(nil)
	assert.Equal(t, "global", s)

	onlyThread := Merge(g, NewOverride(WithIncludeThread(true)))
	assert.True(t, onlyThread.IncludeThread)
	assert.Equal(t, g.GlobalTag, onlyThread.GlobalTag)
	assert.Equal(t, g.MinLevel, onlyThread.MinLevel)
	assert.Equal(t, g.StackTraceDepth, onlyThread.StackTraceDepth)
}

func TestMerge_SetFieldsOverride(t *testing.T) {
	parser := func(any) (string, error) { return "override", nil }
	merged := Merge(globalConfig(true), NewOverride(
		WithTag("O"),
		WithMinLevel(LevelAssert),
		WithIncludeThread(true),
		WithStackTraceDepth(0),
		WithJSONParser(parser),
	))

	assert.Equal(t, "O", merged.Tag())
	assert.Equal(t, LevelAssert, merged.MinLevel)
	assert.True(t, merged.IncludesThread())
	assert.Equal(t, 0, merged.Depth())
	s, _ := merged.Parser()(nil)
	assert.Equal(t, "override", s)
}

func TestMerge_NilJSONParserKeepsGlobal(t *testing.T) {
	merged := Merge(globalConfig(true), NewOverride(WithJSONParser(nil)))
	s, _ := merged.Parser()(nil)
	assert.Equal(t, "global", s)
}

func TestStackDepthClamping(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{5, 5},
		{StackTraceUnbounded, StackTraceUnbounded},
		{-2, 0},
		{-100, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampStackDepth(tt.in))
		assert.Equal(t, tt.want, LogConfig{StackTraceDepth: tt.in}.Depth())
		assert.Equal(t, tt.want, Merge(LogConfig{}, NewOverride(WithStackTraceDepth(tt.in))).StackTraceDepth)
	}
}

func TestOverrideEnabledAccessor(t *testing.T) {
	var nilOverride *Override
	_, set := nilOverride.Enabled()
	assert.False(t, set)

	v, set := NewOverride(WithEnabled(false)).Enabled()
	assert.True(t, set)
	assert.False(t, v)
}

func TestTagFallsBackWhenEmpty(t *testing.T) {
	assert.Equal(t, DefaultTag(), LogConfig{}.Tag())
}
