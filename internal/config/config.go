// Package config handles legisnet configuration: a YAML file under the XDG
// config directory with environment-variable overrides. Commands load a
// .env file first via godotenv so deployments can keep settings out of the
// config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the legisnet configuration.
type Config struct {
	DBPath            string        `yaml:"db_path,omitempty"`
	Port              int           `yaml:"port,omitempty"`
	CacheTTL          time.Duration `yaml:"cache_ttl,omitempty"`
	SamplingStrategy  string        `yaml:"sampling_strategy,omitempty"`
	MinCollaborations int           `yaml:"min_collaborations,omitempty"`
	AllowedOrigins    []string      `yaml:"allowed_origins,omitempty"`

	// RateLimit is the server's requests-per-second budget. Zero selects
	// the default; a negative value disables rate limiting.
	RateLimit float64 `yaml:"rate_limit,omitempty"`
	RateBurst int     `yaml:"rate_burst,omitempty"`
}

const (
	// ConfigDirName is the directory name under XDG_CONFIG_HOME.
	ConfigDirName = "legisnet"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.yml"

	// Defaults applied when neither file nor environment sets a value.
	DefaultPort      = 5500
	DefaultCacheTTL  = 2 * time.Hour
	DefaultThreshold = 10
	DefaultRateLimit = 20.0
	DefaultRateBurst = 40
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/legisnet/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName, ConfigFileName)
}

// Load reads the configuration file, applies environment overrides, and
// fills defaults. A missing file yields the defaults, not an error.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := &Config{}
	if path := Path(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	configCache = cfg
	return cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// applyEnvOverrides applies LEGISNET_* environment variables over file
// values. Malformed numeric values are ignored in favor of the file value.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LEGISNET_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LEGISNET_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("LEGISNET_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = ttl
		}
	}
	if v := os.Getenv("LEGISNET_SAMPLING"); v != "" {
		cfg.SamplingStrategy = v
	}
	if v := os.Getenv("LEGISNET_MIN_COLLABORATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinCollaborations = n
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DBPath == "" {
		cfg.DBPath = "legisnet.db"
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.SamplingStrategy == "" {
		cfg.SamplingStrategy = "random"
	}
	if cfg.MinCollaborations == 0 {
		cfg.MinCollaborations = DefaultThreshold
	}
	// Negative RateLimit passes through: it means limiting is disabled,
	// not unset.
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = DefaultRateBurst
	}
}
