package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	// ViewerURL is the template used to build a stream's viewer
	// address; %s is replaced with the username.
	ViewerURL   string `yaml:"viewer_url"`
	GridColumns int    `yaml:"grid_columns"`

	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	cfgDir, _ := os.UserConfigDir()
	logPath := ""
	if cfgDir != "" {
		logPath = filepath.Join(cfgDir, "streamwall", "streamwall.log")
	}

	return &Config{
		ViewerURL:   getEnv("STREAMWALL_VIEWER_URL", "https://chaturbate.com/%s/"),
		GridColumns: getEnvInt("STREAMWALL_GRID_COLUMNS", 3),
		DBPath:      getEnv("STREAMWALL_DB_PATH", ""),
		LogLevel:    getEnv("STREAMWALL_LOG_LEVEL", "warn"),
		LogFile:     getEnv("STREAMWALL_LOG_FILE", logPath),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// Path returns the config file location, ~/.config/streamwall/config.yaml.
func Path() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "streamwall", "config.yaml"), nil
}

// Load reads the config file, falling back to defaults when it does
// not exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a config file from an explicit path.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config back to its default location.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
