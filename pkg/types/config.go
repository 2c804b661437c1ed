package types

// LogLevel names a zap logging level: debug, info, warn, or error.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// ReporterConfig holds settings for the data status report.
type ReporterConfig struct {
	// DataDir is the directory holding the actions JSON files. When empty the
	// reporter derives it from the executable location (<exe>/../../data).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// LogLevel controls structured logging on stderr (default warn).
	LogLevel LogLevel `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
