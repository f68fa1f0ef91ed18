package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Game holds configuration shared by the game tools.
type Game struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Templates is the aura template file. Empty uses the built-in set.
	Templates string `yaml:"templates" env:"TEMPLATES"`

	// Seed of the fallback RNG stream for entities outside a scene.
	Seed int64 `yaml:"seed" env:"SEED"`

	Storage   Storage        `yaml:"storage" envPrefix:"STORAGE_"`
	Database  DatabaseConfig `yaml:"database" envPrefix:"DB_"`
	Telemetry Telemetry      `yaml:"telemetry" envPrefix:"OTEL_"`

	// VerifyWorkers bounds concurrent slot checks in savecheck.
	VerifyWorkers int `yaml:"verify_workers" env:"VERIFY_WORKERS"`
}

// Storage selects where save slots live.
type Storage struct {
	Driver     string `yaml:"driver" env:"DRIVER"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Telemetry configures OpenTelemetry tracing. Tracing is off while
// Endpoint is empty.
type Telemetry struct {
	Endpoint    string `yaml:"endpoint" env:"ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// EnvPrefix prefixes every environment override, e.g. ZELDA_STORAGE_DRIVER.
const EnvPrefix = "ZELDA_"

// DefaultGame returns Game config with sensible defaults.
func DefaultGame() Game {
	return Game{
		LogLevel: "info",
		Seed:     5489,
		Storage: Storage{
			Driver:     DriverSQLite,
			SQLitePath: "saves.db",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "zelda",
			Password: "zelda",
			DBName:   "zelda",
			SSLMode:  "disable",
		},
		Telemetry: Telemetry{
			ServiceName: "zelda",
		},
		VerifyWorkers: runtime.NumCPU(),
	}
}

// LoadGame loads config from a YAML file, then applies ZELDA_* environment
// overrides. If the file doesn't exist, defaults are used.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that defaults cannot fix.
func (g Game) Validate() error {
	switch g.Storage.Driver {
	case DriverMemory, DriverPostgres:
	case DriverSQLite:
		if g.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", g.Storage.Driver)
	}
	if _, err := g.SlogLevel(); err != nil {
		return err
	}
	if g.VerifyWorkers < 1 {
		return fmt.Errorf("verify_workers must be >= 1, got %d", g.VerifyWorkers)
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (g Game) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(g.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
