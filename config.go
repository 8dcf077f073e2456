package textcore

import (
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/textcore/errors"
)

// EnvPrefix is the prefix of every environment variable read by LoadConfig.
const EnvPrefix = "textcore"

// Config holds process-wide defaults, read from TEXTCORE_* variables.
type Config struct {
	// Locale names the default locale. Empty means LC_ALL, LC_CTYPE
	// and LANG are consulted, in that order.
	Locale string `envconfig:"LOCALE"`

	// ForceUTF8 bypasses locale codecs and always encodes UTF-8, for
	// platforms whose native codecs are known to be broken.
	ForceUTF8 bool `envconfig:"FORCE_UTF8"`

	// ChunkCapacity is the number of characters per buffer chunk.
	ChunkCapacity int `envconfig:"CHUNK_CAPACITY" default:"128"`

	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		ChunkCapacity: DefaultChunkCapacity,
		LogLevel:      "info",
	}
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	conf := DefaultConfig()
	if err := envconfig.Process(EnvPrefix, &conf); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "process environment")
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Validate checks the configuration for values no component can use.
func (c Config) Validate() error {
	if c.ChunkCapacity <= 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("chunk_capacity").
			Value(c.ChunkCapacity).
			Detail("chunk capacity must be positive, got %d", c.ChunkCapacity).
			Build()
	}
	if _, err := c.ZapLevel(); err != nil {
		return err
	}
	return nil
}

// ZapLevel parses LogLevel.
func (c Config) ZapLevel() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse log level")
	}
	return lvl, nil
}
