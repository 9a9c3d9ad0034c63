// Package config loads sympath settings from a YAML file, environment
// overrides, and built-in defaults, in that order of increasing
// precedence for the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"sympath/internal/model"
)

// Config is everything loadable, split into the immutable sync settings
// and the ambient knobs that never reach the core.
type Config struct {
	Settings model.Settings
	LogFile  string // daemon log destination for --watch mode
	WebAddr  string // listen address for --web mode
}

// DefaultSymbolServer points the debugger at the public Microsoft
// symbol server with a local download cache.
const DefaultSymbolServer = "srv*~/.cache/sympath/symbols*https://msdl.microsoft.com/download/symbols"

// Load reads configuration. An explicit path must exist; the default
// location (~/.config/sympath/config.yaml) is optional and silently
// skipped when absent.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("symbol_server", DefaultSymbolServer)
	v.SetDefault("variable", model.DefaultVariable)
	v.SetDefault("application", "")
	v.SetDefault("poll_interval", model.DefaultPollInterval)
	v.SetDefault("log_file", defaultLogFile())
	v.SetDefault("web_addr", "localhost:8080")

	v.SetEnvPrefix("SYMPATH")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigFile(defaultConfigFile())
		if err := v.ReadInConfig(); err != nil {
			// Missing default config is fine; anything else is not.
			if _, statErr := os.Stat(defaultConfigFile()); statErr == nil {
				return Config{}, fmt.Errorf("reading config %s: %w", defaultConfigFile(), err)
			}
		}
	}

	cfg := Config{
		Settings: model.Settings{
			SymbolServer: v.GetString("symbol_server"),
			Variable:     v.GetString("variable"),
			Application:  v.GetString("application"),
			PollInterval: v.GetDuration("poll_interval"),
		}.Normalized(),
		LogFile: v.GetString("log_file"),
		WebAddr: v.GetString("web_addr"),
	}

	if cfg.Settings.SymbolServer == "" {
		return Config{}, errors.New("symbol_server must not be empty")
	}
	if cfg.Settings.PollInterval < time.Second {
		return Config{}, fmt.Errorf("poll_interval %s is below the 1s floor", cfg.Settings.PollInterval)
	}
	return cfg, nil
}

func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "sympath", "config.yaml")
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "sympath.log"
	}
	return filepath.Join(dir, "sympath", "sympath.log")
}
