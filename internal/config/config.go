// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Store drivers.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite3"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Environment string
	Store       StoreConfig
	Database    DatabaseConfig
	Board       BoardConfig
	Auth        AuthConfig
	Log         LogConfig
}

type StoreConfig struct {
	Driver    string
	StateFile string
}

type DatabaseConfig struct {
	DSN         string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

type BoardConfig struct {
	Participants []string
	GraceDelay   time.Duration
}

type AuthConfig struct {
	CredentialScheme string
	BcryptCost       int
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

// HouseholdFile is the optional TOML file named by HOUSEHOLD_FILE.
type HouseholdFile struct {
	Participants []string `toml:"participants"`
	GraceDelay   string   `toml:"grace_delay"`
}

var defaultParticipants = []string{"JYOTHI", "CHAITRA", "SREE"}

func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Store: StoreConfig{
			Driver:    strings.ToLower(getEnv("STORE_DRIVER", StoreFile)),
			StateFile: getEnv("STATE_FILE", "choreboard.json"),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("DB_DSN", ""),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "choreboard"),
			SSLMode:     getEnv("DB_SSL_MODE", "disable"),
			AutoMigrate: getEnvAsBool("AUTO_MIGRATE", true),
		},
		Board: BoardConfig{
			Participants: getEnvAsList("PARTICIPANTS", defaultParticipants),
			GraceDelay:   getEnvAsDuration("GRACE_DELAY", 450*time.Millisecond),
		},
		Auth: AuthConfig{
			CredentialScheme: strings.ToLower(getEnv("CREDENTIAL_SCHEME", "plain")),
			BcryptCost:       getEnvAsInt("BCRYPT_COST", 12),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			File:   getEnv("LOG_FILE", "choreboard.log"),
		},
	}

	if path := getEnv("HOUSEHOLD_FILE", ""); path != "" {
		if err := cfg.applyHouseholdFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyHouseholdFile overrides board settings with the values present in a TOML file.
func (c *Config) applyHouseholdFile(path string) error {
	var hf HouseholdFile
	if _, err := toml.DecodeFile(path, &hf); err != nil {
		return fmt.Errorf("decode household file %s: %w", path, err)
	}
	if len(hf.Participants) > 0 {
		c.Board.Participants = cleanList(hf.Participants)
	}
	if hf.GraceDelay != "" {
		d, err := time.ParseDuration(hf.GraceDelay)
		if err != nil {
			return fmt.Errorf("household file %s: grace_delay: %w", path, err)
		}
		c.Board.GraceDelay = d
	}
	return nil
}

// ValidateConfig checks the loaded values for consistency.
func (c *Config) ValidateConfig() error {
	switch c.Store.Driver {
	case StoreFile:
		if c.Store.StateFile == "" {
			return fmt.Errorf("STATE_FILE is required for the file store")
		}
	case StoreSQLite, StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if len(c.Board.Participants) == 0 {
		return fmt.Errorf("at least one participant is required")
	}
	seen := make(map[string]bool, len(c.Board.Participants))
	for _, p := range c.Board.Participants {
		if seen[p] {
			return fmt.Errorf("duplicate participant %q", p)
		}
		seen[p] = true
	}

	if c.Board.GraceDelay < 0 {
		return fmt.Errorf("GRACE_DELAY must not be negative")
	}

	switch c.Auth.CredentialScheme {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("unknown CREDENTIAL_SCHEME %q", c.Auth.CredentialScheme)
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DatabaseDSN returns DB_DSN, or a DSN derived from the driver defaults.
func (c *Config) DatabaseDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	if c.Store.Driver == StorePostgres {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.DBName, c.Database.SSLMode,
		)
	}
	return "file:choreboard.db?cache=shared&_fk=1"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	// Try parsing as duration string (e.g., "450ms", "1s")
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return append([]string(nil), defaultValue...)
	}
	if list := cleanList(strings.Split(valueStr, ",")); len(list) > 0 {
		return list
	}
	return append([]string(nil), defaultValue...)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
