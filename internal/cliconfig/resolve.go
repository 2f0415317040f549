package cliconfig

import "fmt"

// Resolve layers configuration sources over base, which holds defaults and
// parsed flag values. Precedence is flags > environment > env file > TOML
// file > defaults. configPath is skipped when empty or absent.
func Resolve(base Config, changed map[string]bool, configPath string) (Config, error) {
	cfg := base

	if configPath != "" && FileExists(configPath) {
		fc, err := LoadFileConfig(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", configPath, err)
		}
		if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := LoadDotEnv(cfg.EnvFile)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyEnvConfig(&cfg, changed, dotenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
