package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Default values applied after environment and file resolution.
const (
	DefaultTimeZone = "Europe/Berlin"
	defaultLogLevel = "info"
)

// Settings holds everything the CLI needs to build a client. Values come from
// environment variables with the prefix "AMAZFIT_"; an optional YAML file
// fills in whatever the environment left blank.
type Settings struct {
	AppToken string `envconfig:"APP_TOKEN" yaml:"app_token"`
	UserID   string `envconfig:"USER_ID"   yaml:"user_id"`
	TimeZone string `envconfig:"TIME_ZONE" yaml:"time_zone"`
	LogLevel string `envconfig:"LOG_LEVEL" yaml:"log_level"`
}

// Load populates Settings from environment variables (prefix AMAZFIT_) and
// applies defaults. Call MergeFile before relying on defaults when a config
// file may also be present.
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process("AMAZFIT", &s); err != nil {
		return s, err
	}
	return s, nil
}

// MergeFile overlays values from a YAML config file onto s. The environment
// wins: only fields the environment left empty are taken from the file.
func (s *Settings) MergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var file Settings
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if s.AppToken == "" {
		s.AppToken = file.AppToken
	}
	if s.UserID == "" {
		s.UserID = file.UserID
	}
	if s.TimeZone == "" {
		s.TimeZone = file.TimeZone
	}
	if s.LogLevel == "" {
		s.LogLevel = file.LogLevel
	}
	return nil
}

// Finalize fills remaining blanks with defaults.
func (s *Settings) Finalize() {
	if s.TimeZone == "" {
		s.TimeZone = DefaultTimeZone
	}
	if s.LogLevel == "" {
		s.LogLevel = defaultLogLevel
	}
}
