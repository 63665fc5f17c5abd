package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldLog_AllLevelPairs(t *testing.T) {
	for _, minLevel := range AllLevels() {
		cfg := LogConfig{Enabled: true, MinLevel: minLevel}
		for _, level := range AllLevels() {
			assert.Equal(t, level >= minLevel, cfg.ShouldLog(level), "min=%s level=%s", minLevel, level)
		}
	}
}

func TestLevelOrdering(t *testing.T) {
	levels := AllLevels()
	for i := 1; i < len(levels); i++ {
		assert.Less(t, levels[i-1], levels[i])
	}
	assert.Equal(t, Level(2), LevelVerbose)
	assert.Equal(t, Level(7), LevelAssert)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: " WARN ", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "e", want: LevelError},
		{in: "Assert", want: LevelAssert},
		{in: "V", want: LevelVerbose},
		{in: "info", want: LevelInfo},
		{in: "trace", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelText(t *testing.T) {
	b, err := LevelError.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ERROR", string(b))

	var l Level
	require.NoError(t, l.UnmarshalText([]byte("info")))
	assert.Equal(t, LevelInfo, l)
	assert.Error(t, l.UnmarshalText([]byte("nope")))

	assert.Equal(t, "E", LevelError.Short())
	assert.Equal(t, "LEVEL(42)", Level(42).String())
	assert.False(t, Level(42).Valid())
	assert.True(t, LevelDebug.Valid())
}
