package dbconfig

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/xo/dburl"
)

// Config holds Postgres connection settings.
type Config struct {
	URL      string // DATABASE_URL; overrides the individual fields when set
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// NewConfigFromEnv reads DATABASE_URL or DB_* environment variables (with defaults).
func NewConfigFromEnv() Config {
	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		port = 5432
	}

	return Config{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		Database: getEnv("DB_NAME", "draftboard"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

// Parse resolves the connection URL. Any scheme dburl understands for
// Postgres is accepted (pg://, postgresql://, postgres+unix:// ...).
func (c Config) Parse() (*dburl.URL, error) {
	raw := c.URL
	if raw == "" {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			Path:     "/" + c.Database,
			RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
		}
		raw = u.String()
	}

	u, err := dburl.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if u.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported database driver %q", u.Driver)
	}
	return u, nil
}

// DSN returns the driver connection string, accepted by both lib/pq and pgx.
func (c Config) DSN() (string, error) {
	u, err := c.Parse()
	if err != nil {
		return "", err
	}
	return u.DSN, nil
}

// Redacted returns the connection URL without its password, for logging.
func (c Config) Redacted() string {
	u, err := c.Parse()
	if err != nil {
		return "<invalid>"
	}
	return u.Redacted()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
