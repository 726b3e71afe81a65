package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"twocardpoker-server/internal/util"
)

// store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config provides configuration for the two-card poker server
type Config struct {
	loaded         bool
	Addr           string `yaml:"addr" envconfig:"addr"`
	AdminSecret    string `yaml:"adminSecret" envconfig:"admin_secret"`
	MaxPlayers     int    `yaml:"maxPlayers" envconfig:"max_players"`
	DebounceMS     int    `yaml:"debounceMs" envconfig:"debounce_ms"`
	PollIntervalMS int    `yaml:"pollIntervalMs" envconfig:"poll_interval_ms"`
	Store          struct {
		Driver         string `yaml:"driver" envconfig:"driver"`
		PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
		SQLitePath     string `yaml:"sqlitePath" envconfig:"sqlite_path"`
		MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	} `yaml:"store"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	cfg := Config{
		Addr:           ":5000",
		MaxPlayers:     26,
		DebounceMS:     700,
		PollIntervalMS: 5000,
	}

	cfg.Store.Driver = DriverMemory
	cfg.Store.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.Store.SQLitePath = "twocardpoker.db"
	cfg.Store.MigrationsPath = "sql"
	cfg.Log.Level = "info"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults are used instead
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("TCP_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("tcp", &cfg); err != nil {
		return err
	}

	config = cfg
	config.loaded = true
	return nil
}
