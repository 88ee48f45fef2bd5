package server

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/barter/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ConfigFile is the name of the daemon configuration file in home.
const ConfigFile = "barterd.toml"

// Config holds the daemon settings read from the TOML config file.
// Command line flags take precedence.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Debug returns full error information to the clients.
	Debug bool `toml:"debug"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
	// Metrics is the address of the prometheus endpoint. Empty disables it.
	Metrics string `toml:"metrics"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://localhost:26658",
		LogLevel: "info",
	}
}

// LoadConfig reads the config file at path on top of the defaults. A
// missing file is not an error.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if err := conf.Validate(); err != nil {
		return conf, errors.Wrap(err, path)
	}
	return conf, nil
}

// Validate returns an error if the settings cannot be used.
func (c Config) Validate() error {
	if c.Bind == "" {
		return errors.Field("bind", errors.ErrEmpty, "required")
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		return errors.Field("log_level", errors.ErrInput, "%s", err.Error())
	}
	return nil
}

// Logger returns the logger filtered by the configured level.
func (c Config) Logger(logger log.Logger) (log.Logger, error) {
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}
