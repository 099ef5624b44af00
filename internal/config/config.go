// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // SQLite file, used only when DBDriver is DriverSQLite.
	LogLevel   slog.Level
}

// Load reads configuration from environment variables and returns a validated Config.
// Every variable is optional; defaults connect as root with no password to the
// bookstore database on localhost:3306:
// BOOKREVIEW_DB_DRIVER (mysql), BOOKREVIEW_DB_HOST (localhost), BOOKREVIEW_DB_PORT (3306),
// BOOKREVIEW_DB_USER (root), BOOKREVIEW_DB_PASSWORD (""), BOOKREVIEW_DB_NAME (bookstore),
// BOOKREVIEW_DB_PATH (bookstore.db), BOOKREVIEW_LOG_LEVEL (info).
func Load() (*Config, error) {
	driver := DriverMySQL
	if v, ok := os.LookupEnv("BOOKREVIEW_DB_DRIVER"); ok && v != "" {
		driver = strings.ToLower(strings.TrimSpace(v))
	}
	if driver != DriverMySQL && driver != DriverSQLite {
		return nil, fmt.Errorf("BOOKREVIEW_DB_DRIVER has unsupported value %q (want %q or %q)", driver, DriverMySQL, DriverSQLite)
	}

	host := "localhost"
	if v, ok := os.LookupEnv("BOOKREVIEW_DB_HOST"); ok && v != "" {
		host = v
	}

	port := 3306
	if v, ok := os.LookupEnv("BOOKREVIEW_DB_PORT"); ok && v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 65535 {
			return nil, fmt.Errorf("BOOKREVIEW_DB_PORT has invalid port %q", v)
		}
		port = parsed
	}

	user := "root"
	if v, ok := os.LookupEnv("BOOKREVIEW_DB_USER"); ok && v != "" {
		user = v
	}

	// An explicitly empty password is meaningful, so no emptiness check here.
	password := os.Getenv("BOOKREVIEW_DB_PASSWORD")

	name := "bookstore"
	if v, ok := os.LookupEnv("BOOKREVIEW_DB_NAME"); ok && v != "" {
		name = v
	}

	dbPath := "bookstore.db"
	if v, ok := os.LookupEnv("BOOKREVIEW_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	level := slog.LevelInfo
	if v, ok := os.LookupEnv("BOOKREVIEW_LOG_LEVEL"); ok && v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("BOOKREVIEW_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return &Config{
		DBDriver:   driver,
		DBHost:     host,
		DBPort:     port,
		DBUser:     user,
		DBPassword: password,
		DBName:     name,
		DBPath:     dbPath,
		LogLevel:   level,
	}, nil
}

// Addr returns the host:port of the MySQL server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.DBHost, c.DBPort)
}
