package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/bft-labs/listmonk-mcp/pkg/listmonk"
)

// DefaultServerName is the MCP server name announced to clients.
const DefaultServerName = "Listmonk MCP Server"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "LISTMONK_MCP_"

// Config holds CLI configuration for listmonk-mcp.
type Config struct {
	URL        string
	Username   string
	Password   string
	Timeout    time.Duration
	MaxRetries int
	MaxElapsed time.Duration

	Debug      bool
	LogLevel   string
	ServerName string

	MetricsAddr string
	EnvFile     string
	WatchConfig bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	p := listmonk.DefaultParams()
	return Config{
		Timeout:    p.Timeout,
		MaxRetries: p.MaxRetries,
		LogLevel:   "INFO",
		ServerName: DefaultServerName,
		EnvFile:    ".env",
	}
}

var logLevels = []interface{}{"DEBUG", "INFO", "WARNING", "WARN", "ERROR", "CRITICAL"}

// Validate checks the configuration for errors and normalizes derived values.
// Missing connection settings are reported together, each naming the
// environment variable that sets it.
func (c *Config) Validate() error {
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Debug {
		c.LogLevel = "DEBUG"
	}
	if c.ServerName == "" {
		c.ServerName = DefaultServerName
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required.Error(requiredMsg("url", "URL"))),
		validation.Field(&c.Username, validation.Required.Error(requiredMsg("username", "USERNAME"))),
		validation.Field(&c.Password, validation.Required.Error(requiredMsg("password", "PASSWORD"))),
		validation.Field(&c.Timeout, validation.Min(time.Nanosecond).Error("must be positive")),
		validation.Field(&c.MaxRetries, validation.Min(0).Error("must be non-negative")),
		validation.Field(&c.MaxElapsed, validation.Min(time.Duration(0)).Error("must be non-negative")),
		validation.Field(&c.LogLevel, validation.In(logLevels...).Error("must be one of DEBUG, INFO, WARNING, ERROR, CRITICAL")),
	)
}

func requiredMsg(flag, env string) string {
	return fmt.Sprintf("is required (set %s%s or --%s)", EnvPrefix, env, flag)
}

// ListmonkParams returns the connection parameters for listmonk.NewConfig.
func (c Config) ListmonkParams() listmonk.Params {
	return listmonk.Params{
		URL:            c.URL,
		Username:       c.Username,
		Password:       c.Password,
		Timeout:        c.Timeout,
		MaxRetries:     c.MaxRetries,
		MaxElapsedTime: c.MaxElapsed,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setCount sets a non-negative int value from a pointer if not nil and flag not changed.
func (s *configSetter) setCount(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setSeconds accepts either a whole number of seconds or a Go duration.
func (s *configSetter) setSeconds(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		*dst = time.Duration(n) * time.Second
		return nil
	}
	return s.setDuration(flag, value, dst)
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setCountFromString parses a string to int and sets the destination.
// Zero is a valid count; validation rejects negatives later.
func (s *configSetter) setCountFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1", "yes" as true (any case), anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		*dst = true
	default:
		*dst = false
	}
}
