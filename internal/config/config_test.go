package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points the config system at a fresh temp directory and clears the
// cache and the override variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, v := range []string{"LEGISNET_DB", "LEGISNET_PORT", "LEGISNET_CACHE_TTL", "LEGISNET_SAMPLING", "LEGISNET_MIN_COLLABORATIONS"} {
		t.Setenv(v, "")
	}
	ResetCache()
	t.Cleanup(ResetCache)
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, ConfigDirName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.DBPath != "legisnet.db" {
		t.Errorf("DBPath = %q, want legisnet.db", cfg.DBPath)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", cfg.CacheTTL, DefaultCacheTTL)
	}
	if cfg.SamplingStrategy != "random" {
		t.Errorf("SamplingStrategy = %q, want random", cfg.SamplingStrategy)
	}
	if cfg.MinCollaborations != DefaultThreshold {
		t.Errorf("MinCollaborations = %d, want %d", cfg.MinCollaborations, DefaultThreshold)
	}
	if cfg.RateLimit != DefaultRateLimit || cfg.RateBurst != DefaultRateBurst {
		t.Errorf("rate limit = %v/%d, want %v/%d", cfg.RateLimit, cfg.RateBurst, DefaultRateLimit, DefaultRateBurst)
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
db_path: /data/net.db
port: 8080
cache_ttl: 30m
sampling_strategy: weighted
min_collaborations: 5
allowed_origins:
  - https://example.org
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.DBPath != "/data/net.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", cfg.CacheTTL)
	}
	if cfg.SamplingStrategy != "weighted" {
		t.Errorf("SamplingStrategy = %q, want weighted", cfg.SamplingStrategy)
	}
	if cfg.MinCollaborations != 5 {
		t.Errorf("MinCollaborations = %d, want 5", cfg.MinCollaborations)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://example.org" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "port: 8080\ndb_path: file.db\n")
	t.Setenv("LEGISNET_PORT", "9090")
	t.Setenv("LEGISNET_DB", "env.db")
	t.Setenv("LEGISNET_CACHE_TTL", "1h")
	t.Setenv("LEGISNET_SAMPLING", "weighted")
	t.Setenv("LEGISNET_MIN_COLLABORATIONS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want env override 9090", cfg.Port)
	}
	if cfg.DBPath != "env.db" {
		t.Errorf("DBPath = %q, want env override env.db", cfg.DBPath)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if cfg.SamplingStrategy != "weighted" {
		t.Errorf("SamplingStrategy = %q, want weighted", cfg.SamplingStrategy)
	}
	if cfg.MinCollaborations != 3 {
		t.Errorf("MinCollaborations = %d, want 3", cfg.MinCollaborations)
	}
}

func TestLoad_NegativeRateLimitDisables(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "rate_limit: -1\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.RateLimit >= 0 {
		t.Errorf("RateLimit = %v, want negative (disabled) preserved", cfg.RateLimit)
	}
}

func TestLoad_MalformedEnvIgnored(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "port: 8080\n")
	t.Setenv("LEGISNET_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want file value 8080", cfg.Port)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "port: [not an int\n")

	if _, err := Load(); err == nil {
		t.Error("malformed config should fail to load")
	}
}

func TestLoad_Caches(t *testing.T) {
	dir := isolate(t)

	first, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	// A file written after the first load is invisible until the cache
	// resets.
	writeConfig(t, dir, "port: 7000\n")
	second, err := Load()
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if second != first {
		t.Error("second load should return the cached config")
	}

	ResetCache()
	third, err := Load()
	if err != nil {
		t.Fatalf("loading after reset: %v", err)
	}
	if third.Port != 7000 {
		t.Errorf("Port after reset = %d, want 7000", third.Port)
	}
}

func TestPath(t *testing.T) {
	dir := isolate(t)

	want := filepath.Join(dir, ConfigDirName, ConfigFileName)
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
