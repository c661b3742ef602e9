// Package configuration reads the application configuration from Unix-type
// KEY=VALUE files and maps it into a [Config].
package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	KeyTempDir    = "FSITEM_TEMP_DIR"
	KeyTempPrefix = "FSITEM_TEMP_PREFIX"
	KeyMaxMemory  = "FSITEM_MAX_MEMORY"
	KeyStatCache  = "FSITEM_STAT_CACHE"
	KeyLogLevel   = "FSITEM_LOG_LEVEL"
)

const (
	defaultTempPrefix = "temp_"
	defaultMaxMemory  = 2 << 20
)

// genericConfigProvider defines methods needed to read configuration files.
type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Config is the principal structure holding the application configuration.
type Config struct {
	TempDir    string     `yaml:"tempDir"`
	TempPrefix string     `yaml:"tempPrefix"`
	MaxMemory  int64      `yaml:"maxMemory"`
	StatCache  bool       `yaml:"statCache"`
	LogLevel   slog.Level `yaml:"logLevel"`
}

// DefaultConfig returns a pointer to a new [Config] holding the defaults.
// An empty TempDir means the temporary directory of the operating system.
func DefaultConfig() *Config {
	return &Config{
		TempPrefix: defaultTempPrefix,
		MaxMemory:  defaultMaxMemory,
		LogLevel:   slog.LevelInfo,
	}
}

// Handler is the principal implementation for the configuration services.
type Handler struct {
	genericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		genericHandler: genericHandler,
	}
}

// ReadGeneric reads configuration files into a map (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.genericHandler.Read(filenames...)
}

// Load reads the given configuration file into a [Config], starting out from
// [DefaultConfig]. An empty filename or a file that does not exist yields
// the defaults, keys missing from the file keep their default values.
func (c *Handler) Load(filename string) (*Config, error) {
	cfg := DefaultConfig()

	if filename == "" {
		return cfg, nil
	}

	envMap, err := c.ReadGeneric(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Configuration file not found, using defaults", "path", filename)

			return cfg, nil
		}

		return nil, fmt.Errorf("(config-load) failed to read %s: %w", filename, err)
	}

	if err := c.Apply(cfg, envMap); err != nil {
		return nil, fmt.Errorf("(config-load) %s: %w", filename, err)
	}

	return cfg, nil
}

// Apply maps the known keys of envMap onto cfg, leaving fields of absent keys
// untouched.
func (c *Handler) Apply(cfg *Config, envMap map[string]string) error {
	if v := c.MapKeyToString(envMap, KeyTempDir); v != "" {
		cfg.TempDir = v
	}

	if v := c.MapKeyToString(envMap, KeyTempPrefix); v != "" {
		cfg.TempPrefix = v
	}

	if v := c.MapKeyToString(envMap, KeyMaxMemory); v != "" {
		size, err := c.MapKeyToBytes(envMap, KeyMaxMemory)
		if err != nil {
			return err
		}
		cfg.MaxMemory = size
	}

	if v := c.MapKeyToString(envMap, KeyStatCache); v != "" {
		enabled, err := c.MapKeyToBool(envMap, KeyStatCache)
		if err != nil {
			return err
		}
		cfg.StatCache = enabled
	}

	if v := c.MapKeyToString(envMap, KeyLogLevel); v != "" {
		level, err := ParseLogLevel(v)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}

	return nil
}

// MapKeyToString returns the value of a key, or an empty string if it does
// not exist.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return strings.TrimSpace(value)
	}

	return ""
}

// MapKeyToBool returns the value of a key as bool, with false for a key that
// does not exist.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string) (bool, error) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("(config-bool) %w: %s=%q", ErrInvalidValue, key, value)
	}

	return b, nil
}

// MapKeyToBytes returns the value of a key as an amount of bytes, accepting
// human-readable sizes such as "4MiB" or "512 kB". A key that does not exist
// returns 0.
func (c *Handler) MapKeyToBytes(envMap map[string]string, key string) (int64, error) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("(config-bytes) %w: %s=%q: %w", ErrInvalidValue, key, value, err)
	}

	if size > uint64(1<<63-1) {
		return 0, fmt.Errorf("(config-bytes) %w: %s=%q is too large", ErrInvalidValue, key, value)
	}

	return int64(size), nil
}

// ParseLogLevel parses a level name (debug, info, warn, error) in any case.
func ParseLogLevel(value string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("(config-loglevel) %w: %q", ErrInvalidValue, value)
	}

	return level, nil
}
