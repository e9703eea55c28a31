package common

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// DefaultConfigPath is where the module binaries look for their shared
// configuration.
const DefaultConfigPath = "/etc/osbuild-modules/osbuild-modules.toml"

type OSTreeConfig struct {
	Bin string `toml:"bin"`
}

type Config struct {
	OSTree *OSTreeConfig `toml:"ostree"`
	// default value: text
	LogFormat string `toml:"log_format"`
	// default value: info
	LogLevel string `toml:"log_level"`
}

// ParseConfig loads the configuration from file.
func ParseConfig(file string) (*Config, error) {
	// set defaults
	config := Config{
		LogFormat: LogFormatText,
		LogLevel:  "info",
	}

	_, err := toml.DecodeFile(file, &config)
	if err != nil {
		// Return error only when we failed to decode the file.
		// A non-existing config isn't an error, use defaults in this case.
		if !os.IsNotExist(err) {
			return nil, err
		}

		logrus.Info("Configuration file not found, using defaults")
	}

	return &config, nil
}

// OSTreeBin returns the configured path of the ostree binary, or "" when
// the default should be used.
func (c *Config) OSTreeBin() string {
	if c.OSTree == nil {
		return ""
	}
	return c.OSTree.Bin
}
