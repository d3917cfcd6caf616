package startup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"findex/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all server configuration
type Config struct {
	DatabasePath    string
	Port            string
	MetricsEnabled  bool
	MetricsInterval time.Duration
	LogHealthChecks bool
	HistoryPath     string
	HistoryMax      int
}

// fileConfig is the optional YAML config file shape. Every field maps to one
// Config field; env vars override.
type fileConfig struct {
	DatabasePath    string `yaml:"database_path"`
	Port            string `yaml:"port"`
	MetricsEnabled  *bool  `yaml:"metrics_enabled"`
	MetricsInterval string `yaml:"metrics_interval"`
	LogHealthChecks *bool  `yaml:"log_health_checks"`
	HistoryPath     string `yaml:"history_path"`
	HistoryMax      int    `yaml:"history_max"`
}

// LoadConfig loads configuration from the optional YAML file and environment
// variables, validates the database directory and logs the result.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	cfg := &Config{
		DatabasePath:    "data/index.findex.db",
		Port:            "8080",
		MetricsEnabled:  true,
		MetricsInterval: 30 * time.Second,
		LogHealthChecks: true,
		HistoryMax:      0,
	}

	configFile, err := applyConfigFile(cfg)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if configFile != "" {
		logging.Info("  Config file:       %s", configFile)
	}
	logging.Info("  DATABASE_PATH:     %s", cfg.DatabasePath)
	logging.Info("  PORT:              %s", cfg.Port)
	logging.Info("  METRICS_ENABLED:   %v", cfg.MetricsEnabled)
	logging.Info("  METRICS_INTERVAL:  %s", cfg.MetricsInterval)
	logging.Info("  LOG_HEALTH_CHECKS: %v", cfg.LogHealthChecks)
	logging.Info("  LOG_LEVEL:         %s", logging.GetLevel())
	logging.Info("")

	abs, err := filepath.Abs(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	cfg.DatabasePath = abs

	dbDir := filepath.Dir(cfg.DatabasePath)
	if err := ensureDirectory(dbDir, "database"); err != nil {
		return nil, fmt.Errorf("database directory error: %w", err)
	}
	if err := testWriteAccess(dbDir); err != nil {
		return nil, fmt.Errorf("database directory is not writable: %w", err)
	}
	logging.Info("  [OK] Database directory is writable")

	return cfg, nil
}

// applyConfigFile merges the optional YAML config file into cfg. The file is
// named by FINDEX_CONFIG, falling back to ./findex.yaml when present.
func applyConfigFile(cfg *Config) (string, error) {
	path := os.Getenv("FINDEX_CONFIG")
	explicit := path != ""
	if path == "" {
		path = "findex.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return "", fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.MetricsEnabled != nil {
		cfg.MetricsEnabled = *fc.MetricsEnabled
	}
	if fc.MetricsInterval != "" {
		d, err := time.ParseDuration(fc.MetricsInterval)
		if err != nil {
			return "", fmt.Errorf("config file %s: invalid metrics_interval: %w", path, err)
		}
		cfg.MetricsInterval = d
	}
	if fc.LogHealthChecks != nil {
		cfg.LogHealthChecks = *fc.LogHealthChecks
	}
	if fc.HistoryPath != "" {
		cfg.HistoryPath = fc.HistoryPath
	}
	if fc.HistoryMax > 0 {
		cfg.HistoryMax = fc.HistoryMax
	}
	return path, nil
}

// applyEnv overrides cfg with environment variables.
func applyEnv(cfg *Config) {
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.LogHealthChecks = getEnvBool("LOG_HEALTH_CHECKS", cfg.LogHealthChecks)
	cfg.HistoryPath = getEnv("HISTORY_PATH", cfg.HistoryPath)

	if v := os.Getenv("METRICS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.MetricsInterval = d
		} else {
			logging.Warn("Invalid METRICS_INTERVAL %q, keeping %s", v, cfg.MetricsInterval)
		}
	}
	if v := os.Getenv("HISTORY_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryMax = n
		} else {
			logging.Warn("Invalid HISTORY_MAX %q, keeping %d", v, cfg.HistoryMax)
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}
