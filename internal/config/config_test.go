package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfig = `
app:
  name: powerplay
  environment: development
  port: 8080
  base_url: http://localhost:8080

database:
  driver: sqlite
  filename: powerplay.db

cache:
  addr: localhost:6379
  db: 1

primary_team:
  name: HC Vlci

sync:
  api_base: https://vysledky.example.cz/api
  cron: "15 3 * * *"
  league_name: Krajská liga
  league_season: 2025/2026
  expand_league_dates: true
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestConfig(t, testConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Name != "powerplay" || cfg.App.Port != 8080 {
		t.Fatalf("app = %+v", cfg.App)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Filename != "powerplay.db" {
		t.Fatalf("database = %+v", cfg.Database)
	}
	if cfg.Cache.Addr != "localhost:6379" || cfg.Cache.DB != 1 {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
	if cfg.PrimaryTeam.Name != "HC Vlci" {
		t.Fatalf("primary team = %+v", cfg.PrimaryTeam)
	}
	if cfg.Sync.LeagueSeason != "2025/2026" || !cfg.Sync.ExpandLeagueDates {
		t.Fatalf("sync = %+v", cfg.Sync)
	}
}

func TestLoadReadsSecretsFromDotEnv(t *testing.T) {
	path := writeTestConfig(t, testConfig)
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := os.WriteFile(envPath, []byte("CACHE_PASSWORD=tajneheslo\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("CACHE_PASSWORD") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.Password != "tajneheslo" {
		t.Fatalf("cache password = %q", cfg.Cache.Password)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		var cfg Config
		cfg.App.Name = "powerplay"
		cfg.App.Port = 8080
		cfg.Database.Driver = "sqlite"
		cfg.Database.Filename = "powerplay.db"
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"missing name", func(c *Config) { c.App.Name = "" }, false},
		{"missing port", func(c *Config) { c.App.Port = 0 }, false},
		{"unsupported driver", func(c *Config) { c.Database.Driver = "postgres" }, false},
		{"sqlite without filename", func(c *Config) { c.Database.Filename = "" }, false},
		{"bad cron", func(c *Config) {
			c.Sync.Cron = "every day at noon"
			c.Sync.APIBase = "https://example.cz"
		}, false},
		{"cron without api base", func(c *Config) { c.Sync.Cron = "0 4 * * *" }, false},
		{"cron with api base", func(c *Config) {
			c.Sync.Cron = "0 4 * * *"
			c.Sync.APIBase = "https://example.cz"
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
