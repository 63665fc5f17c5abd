package domain

import (
	"os"
	"path/filepath"
)

// StackTraceUnbounded asks for every frame available above the log call.
const StackTraceUnbounded = -1

// JSONParser turns a structured payload into its string form. It is injected
// by the host application; the core never picks a JSON library.
type JSONParser func(v any) (string, error)

// LogConfig describes how records are filtered and what is captured for
// them. A LogConfig is a value; copies never share mutable state.
type LogConfig struct {
	Enabled         bool
	GlobalTag       string
	MinLevel        Level
	IncludeThread   bool
	StackTraceDepth int
	JSONParser      JSONParser
}

// DefaultTag is the base name of the running executable.
func DefaultTag() string {
	return filepath.Base(os.Args[0])
}

func DefaultLogConfig() LogConfig {
	return LogConfig{
		Enabled:         true,
		GlobalTag:       DefaultTag(),
		MinLevel:        LevelVerbose,
		IncludeThread:   false,
		StackTraceDepth: 0,
	}
}

func (c LogConfig) IsEnabled() bool { return c.Enabled }

func (c LogConfig) Tag() string {
	if c.GlobalTag == "" {
		return DefaultTag()
	}
	return c.GlobalTag
}

func (c LogConfig) ShouldLog(level Level) bool { return level >= c.MinLevel }

func (c LogConfig) IncludesThread() bool { return c.IncludeThread }

// Depth is the stack depth with unsupported negative values clamped to 0.
func (c LogConfig) Depth() int { return ClampStackDepth(c.StackTraceDepth) }

func (c LogConfig) Parser() JSONParser { return c.JSONParser }

func ClampStackDepth(depth int) int {
	if depth < 0 && depth != StackTraceUnbounded {
		return 0
	}
	return depth
}

// Override is a per-call partial config. Unset fields fall back to the
// global config during Merge.
type Override struct {
	enabled         *bool
	tag             *string
	minLevel        *Level
	includeThread   *bool
	stackTraceDepth *int
	jsonParser      JSONParser
}

type OverrideOption func(*Override)

func NewOverride(opts ...OverrideOption) *Override {
	o := &Override{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithEnabled is accepted for symmetry with LogConfig but never wins over the
// global switch.
func WithEnabled(enabled bool) OverrideOption {
	return func(o *Override) { o.enabled = &enabled }
}

func WithTag(tag string) OverrideOption {
	return func(o *Override) { o.tag = &tag }
}

func WithMinLevel(level Level) OverrideOption {
	return func(o *Override) { o.minLevel = &level }
}

func WithIncludeThread(include bool) OverrideOption {
	return func(o *Override) { o.includeThread = &include }
}

func WithStackTraceDepth(depth int) OverrideOption {
	return func(o *Override) { o.stackTraceDepth = &depth }
}

func WithJSONParser(parser JSONParser) OverrideOption {
	return func(o *Override) {
		if parser != nil {
			o.jsonParser = parser
		}
	}
}

// Enabled returns the requested switch and whether it was set.
func (o *Override) Enabled() (bool, bool) {
	if o == nil || o.enabled == nil {
		return false, false
	}
	return *o.enabled, true
}

// Merge resolves the effective config for one call. The global Enabled flag
// is an absolute gate and is never taken from the override.
func Merge(global LogConfig, o *Override) LogConfig {
	merged := global
	if o != nil {
		if o.tag != nil {
			merged.GlobalTag = *o.tag
		}
		if o.minLevel != nil {
			merged.MinLevel = *o.minLevel
		}
		if o.includeThread != nil {
			merged.IncludeThread = *o.includeThread
		}
		if o.stackTraceDepth != nil {
			merged.StackTraceDepth = *o.stackTraceDepth
		}
		if o.jsonParser != nil {
			merged.JSONParser = o.jsonParser
		}
	}
	merged.Enabled = global.Enabled
	merged.StackTraceDepth = ClampStackDepth(merged.StackTraceDepth)
	return merged
}
