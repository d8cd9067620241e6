package types

import "errors"

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend  string `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir  string `json:"data_dir" yaml:"data_dir,omitempty" mapstructure:"data_dir"`
	LogLevel string `json:"log_level" yaml:"log_level,omitempty" mapstructure:"log_level"`

	// Seed fixes the random generator used by seeding. Zero means a fresh
	// seed on every run.
	Seed uint64 `json:"seed" yaml:"seed,omitempty" mapstructure:"seed"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Log levels accepted in Config.LogLevel. Empty means LogLevelInfo.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownLogLevels = map[string]bool{
	"":            true,
	LogLevelDebug: true,
	LogLevelInfo:  true,
	LogLevelWarn:  true,
	LogLevelError: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	return nil
}

// EffectiveLogLevel returns LogLevel, defaulting to LogLevelInfo.
func (c Config) EffectiveLogLevel() string {
	if c.LogLevel == "" {
		return LogLevelInfo
	}
	return c.LogLevel
}
