// Package config loads process configuration: a .env file (grounded on
// damione1-planning-poker's utils/config.go godotenv.Load() pattern) layered
// under a YAML server-config file for the settings that are naturally
// structured rather than flat key/value (listen address, catalog DSN, debug
// secret, public-session broadcast interval).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full set of process-level settings.
type Config struct {
	ListenAddr              string        `yaml:"listenAddr"`
	CatalogDSN              string        `yaml:"catalogDSN"`
	DebugSecret             string        `yaml:"debugSecret"`
	PublicSessionBroadcast  time.Duration `yaml:"publicSessionBroadcast"`
}

// defaults mirrors the teacher's flag defaults (director's 8000 port) for
// any field a config file or the environment doesn't set.
func defaults() Config {
	return Config{
		ListenAddr:             ":8000",
		PublicSessionBroadcast: 5 * time.Second,
	}
}

// Load reads .env (if present; a missing file is not an error, matching
// godotenv's own convention for optional environment overlays) into the
// process environment, then parses yamlPath into a Config seeded from
// defaults(). Fields left unset in the YAML keep their default.
func Load(yamlPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: loading .env: %w", err)
	}

	cfg := defaults()
	if yamlPath == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", yamlPath, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", yamlPath, err)
	}
	if v := os.Getenv("BOOSTERDRAFT_DEBUG_SECRET"); v != "" {
		cfg.DebugSecret = v
	}
	return cfg, nil
}
