/*
config.go - Application configuration

PURPOSE:
  Loads server configuration from a YAML file with environment-variable
  overrides. Every field has a working default so the server boots with no
  config file at all (in-memory auth identity, local SQLite file, weekend-
  only holiday classification).

SOURCES (later wins):
  1. Built-in defaults
  2. config.yaml (working directory, or the path given on the command line)
  3. Environment variables, prefixed ATTEND_ (ATTEND_SERVER_LISTEN, ...)

SEE ALSO:
  - cmd/server/main.go: flag parsing and wiring
*/
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Listen string `mapstructure:"listen"` // host:port
}

// StoreConfig controls persistence. Path ":memory:" runs without a file.
type StoreConfig struct {
	SQLitePath string `mapstructure:"sqlite_path"`
}

// AuthConfig controls request authentication. An empty JWTSecret switches
// the API into single-user development mode.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// CalendarConfig controls the holiday source. With no API key the engine
// classifies weekends only.
type CalendarConfig struct {
	GoogleAPIKey string `mapstructure:"google_api_key"`
	CalendarID   string `mapstructure:"calendar_id"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// Load reads configuration from the given path, or from ./config.yaml when
// the path is empty. A missing file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.listen", ":8080")
	v.SetDefault("store.sqlite_path", "attendance.db")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("calendar.google_api_key", "")
	v.SetDefault("calendar.calendar_id", "ja.japanese#holiday@group.v.calendar.google.com")
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ATTEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only an explicitly named file is required to exist.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configPath != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.Store.SQLitePath == "" {
		return fmt.Errorf("store.sqlite_path is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Calendar.GoogleAPIKey != "" && c.Calendar.CalendarID == "" {
		return fmt.Errorf("calendar.calendar_id is required when an API key is set")
	}
	return nil
}
