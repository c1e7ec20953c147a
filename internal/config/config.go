// ABOUTME: FitTrack configuration management with backend selection.
// ABOUTME: Handles settings, AI endpoint, logging, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/harperreed/fittrack/internal/charm"
	"github.com/harperreed/fittrack/internal/storage"
)

const (
	DefaultAIModel  = "gpt-4o-mini"
	DefaultLogLevel = "warn"
)

// Config stores FitTrack configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger",
	// "charm", or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts fittrack.db here. Badger uses a badger/ folder here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fittrack.
	DataDir string `json:"data_dir,omitempty"`

	// AIBaseURL points at any OpenAI-compatible chat completions endpoint.
	AIBaseURL string `json:"ai_base_url,omitempty"`
	AIModel   string `json:"ai_model,omitempty"`
	AIAPIKey  string `json:"ai_api_key,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty"`

	// SeedSampleData fills an empty workout log with sample workouts. Defaults to true.
	SeedSampleData *bool `json:"seed_sample_data,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetAIModel returns the configured model, defaulting to gpt-4o-mini.
func (c *Config) GetAIModel() string {
	if c.AIModel == "" {
		return DefaultAIModel
	}
	return c.AIModel
}

// GetLogLevel returns the configured log level, defaulting to warn.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// GetLogFile returns the log file path with ~ expanded, or "" for stderr.
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

// ShouldSeedSampleData reports whether an empty log gets sample workouts.
func (c *Config) ShouldSeedSampleData() bool {
	if c.SeedSampleData == nil {
		return true
	}
	return *c.SeedSampleData
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// ApplyEnv overrides AI settings from the environment.
// FITTRACK_AI_API_KEY wins over OPENAI_API_KEY.
func (c *Config) ApplyEnv() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.AIAPIKey = key
	}
	if key := os.Getenv("FITTRACK_AI_API_KEY"); key != "" {
		c.AIAPIKey = key
	}
	if url := os.Getenv("FITTRACK_AI_BASE_URL"); url != "" {
		c.AIBaseURL = url
	}
	if model := os.Getenv("FITTRACK_AI_MODEL"); model != "" {
		c.AIModel = model
	}
}

// OpenStorage creates a BlobStore implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.BlobStore, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		return storage.Open(storage.DBPath(dataDir))
	case "badger":
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case "memory":
		return storage.OpenBadgerInMemory()
	case "charm":
		return charm.Open()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fittrack", "config.json")
}

// Load reads config from disk, then applies a .env file from the working
// directory and the environment on top.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}

	// A missing .env is normal.
	_ = godotenv.Load()
	cfg.ApplyEnv()
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
