package cliconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads key/value pairs from an env file without touching the
// process environment. A missing file yields an empty map.
func LoadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

// ApplyEnvConfig applies configuration from environment variables
// (LISTMONK_MCP_*), falling back to dotenv for variables the process
// environment does not set. It respects flags that have been explicitly set
// (changed map). Returns error if any variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool, dotenv map[string]string) error {
	s := newConfigSetter(changed)
	get := func(name string) string {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			return v
		}
		return dotenv[EnvPrefix+name]
	}

	s.setString("url", get("URL"), &cfg.URL)
	s.setString("username", get("USERNAME"), &cfg.Username)
	s.setString("password", get("PASSWORD"), &cfg.Password)
	s.setString("log-level", get("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("server-name", get("SERVER_NAME"), &cfg.ServerName)
	s.setString("metrics-addr", get("METRICS_ADDR"), &cfg.MetricsAddr)

	if err := s.setSeconds("timeout", get("TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("max-elapsed", get("MAX_ELAPSED"), &cfg.MaxElapsed); err != nil {
		return err
	}
	if err := s.setCountFromString("max-retries", get("MAX_RETRIES"), &cfg.MaxRetries); err != nil {
		return err
	}

	s.setBoolFromString("debug", get("DEBUG"), &cfg.Debug)
	s.setBoolFromString("watch-config", get("WATCH_CONFIG"), &cfg.WatchConfig)

	return nil
}
