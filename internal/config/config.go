package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arena/internal/game/effect"
)

// Roster size limits. The upper bound is the number of archetypes.
const (
	MinRosterSize = 2
	MaxRosterSize = 5
)

// Arena holds all configuration for the arena binaries.
type Arena struct {
	RosterSize  int           `yaml:"roster_size"`
	StackPolicy string        `yaml:"stack_policy"` // ignore | refresh
	TurnDelay   time.Duration `yaml:"turn_delay"`
	LogLevel    string        `yaml:"log_level"`

	// Battle archive
	Records RecordsConfig `yaml:"records"`
}

// RecordsConfig controls the optional PostgreSQL battle archive.
type RecordsConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns Arena config with sensible defaults.
func Default() Arena {
	return Arena{
		RosterSize:  3,
		StackPolicy: effect.StackIgnore.String(),
		LogLevel:    "info",
		Records: RecordsConfig{
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "arena",
				Password: "arena",
				DBName:   "arena",
				SSLMode:  "disable",
			},
		},
	}
}

// Load loads arena config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Arena, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (a Arena) Validate() error {
	if a.RosterSize < MinRosterSize || a.RosterSize > MaxRosterSize {
		return fmt.Errorf("roster_size must be between %d and %d, got %d", MinRosterSize, MaxRosterSize, a.RosterSize)
	}
	if a.TurnDelay < 0 {
		return fmt.Errorf("turn_delay must not be negative, got %s", a.TurnDelay)
	}
	if _, err := a.Stacking(); err != nil {
		return err
	}
	if _, err := a.Level(); err != nil {
		return err
	}
	return nil
}

// Stacking returns the parsed stack policy.
func (a Arena) Stacking() (effect.StackPolicy, error) {
	return effect.ParseStackPolicy(a.StackPolicy)
}

// Level returns the parsed log level.
func (a Arena) Level() (slog.Level, error) {
	switch strings.ToLower(a.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", a.LogLevel)
	}
}
