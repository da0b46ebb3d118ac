// Package config loads sysmod tool configuration with Viper: defaults,
// an optional TOML config file, and SYSMOD_-prefixed environment
// variables, in ascending precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mbsekit/sysmod/errors"
)

// Config is the tool configuration
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	// Format is the default report format: table or json
	Format string `mapstructure:"format"`
}

// LogConfig controls logging behavior
type LogConfig struct {
	// JSON switches log output from console to structured JSON
	JSON bool `mapstructure:"json"`
}

var globalConfig *Config

// Load reads the sysmod configuration. The result is cached; use Reset
// in tests.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	return &config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
}

// SetDefaults installs the default configuration values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.format", "table")
	v.SetDefault("log.json", false)
}

func initViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("SYSMOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Optional config file: ~/.config/sysmod/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Join(home, ".config", "sysmod"))
		// Missing file is fine; defaults and env carry the load.
		_ = v.ReadInConfig()
	}

	return v
}
