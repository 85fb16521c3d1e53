// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type CacheConfig struct {
	// Addr is the Redis address for the season-totals cache. When empty
	// the cache is disabled and totals are computed on every request.
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"-"` // Loaded from environment
	DB       int    `yaml:"db,omitempty"`
}

// PrimaryTeamConfig selects the club team that scopes public-facing
// views. Resolution precedence is ID, then case-insensitive name, then
// the first team by id.
type PrimaryTeamConfig struct {
	ID   int64  `yaml:"id,omitempty"`
	Name string `yaml:"name,omitempty"`
}

type SyncConfig struct {
	// APIBase is the base URL of the external league results API.
	APIBase string `yaml:"api_base"`
	// Cron schedules the periodic import; empty disables it.
	Cron         string `yaml:"cron,omitempty"`
	LeagueID     int64  `yaml:"league_id,omitempty"`
	LeagueName   string `yaml:"league_name,omitempty"`
	LeagueSeason string `yaml:"league_season,omitempty"`
	// ExpandLeagueDates widens the league season window so imported
	// games pass season validation.
	ExpandLeagueDates bool `yaml:"expand_league_dates"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Database    DatabaseConfig    `yaml:"database"`
	Cache       CacheConfig       `yaml:"cache"`
	PrimaryTeam PrimaryTeamConfig `yaml:"primary_team"`
	Sync        SyncConfig        `yaml:"sync"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Read and parse YAML config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Load sensitive values from environment
	cfg.Cache.Password = os.Getenv("CACHE_PASSWORD")

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Sync.Cron != "" {
		if _, err := cron.ParseStandard(c.Sync.Cron); err != nil {
			return fmt.Errorf("invalid sync cron expression %q: %w", c.Sync.Cron, err)
		}
		if c.Sync.APIBase == "" {
			return fmt.Errorf("sync api_base is required when a sync cron is set")
		}
	}

	return nil
}
