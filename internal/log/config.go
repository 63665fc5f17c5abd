package log

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Backend selects the handler implementation behind the slog adapter.
type Backend string

const (
	BackendStd Backend = "std"
	BackendZap Backend = "zap"
)

type Config struct {
	Level   Level   `yaml:"level" mapstructure:"level"`
	Format  Format  `yaml:"format" mapstructure:"format"`
	Backend Backend `yaml:"backend" mapstructure:"backend"`
}

func DefaultConfig() Config {
	return Config{
		Level:   LevelInfo,
		Format:  FormatText,
		Backend: BackendStd,
	}
}
