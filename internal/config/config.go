package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the configuration of the bill tracker server.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `mapstructure:"listen"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// SessionKey signs the session cookie. A random key is generated when empty.
	SessionKey string `mapstructure:"session_key"`
	// SessionMaxAge is the session lifetime in seconds.
	SessionMaxAge int `mapstructure:"session_max_age"`
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool `mapstructure:"secure_cookies"`
	// Database selects and configures the store.
	Database *DatabaseConfig `mapstructure:"database"`
	// JWT configures the bearer tokens of the JSON API.
	JWT *JWTConfig `mapstructure:"jwt"`
	// Bills configures the bill listing.
	Bills *BillsConfig `mapstructure:"bills"`
	// Metrics configures the prometheus endpoint.
	Metrics *MetricsConfig `mapstructure:"metrics"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	// Path is the sqlite database file.
	Path string `mapstructure:"path"`
	// Postgres holds the postgres connection parameters.
	Postgres *PostgresConfig `mapstructure:"postgres"`
}

// PostgresConfig holds postgres connection parameters.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN renders the connection parameters as a postgres:// URL.
func (p *PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

// JWTConfig holds the API token settings. The API is disabled without a secret.
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int64  `mapstructure:"expiration_hours"`
}

// BillsConfig holds bill listing settings.
type BillsConfig struct {
	// ListAll lists the bills of every group on each group page.
	ListAll bool `mapstructure:"list_all"`
}

// MetricsConfig holds the metrics settings.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads the configuration from the given file, or searches the default
// locations when path is empty. Environment variables prefixed with
// BILL_TRACKER_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("BILL_TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bill_tracker")
		v.AddConfigPath("/etc/bill_tracker")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug("no config file found, using defaults and environment")
	} else {
		log.Debug("using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// setDefaults sets default values for the configuration.
// Every key is registered so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "127.0.0.1:5000")
	v.SetDefault("log_level", "info")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 172800) // 48 hours
	v.SetDefault("secure_cookies", false)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/bills.db")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.postgres.name", "")
	v.SetDefault("database.postgres.sslmode", "disable")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", 24)

	v.SetDefault("bills.list_all", false)

	v.SetDefault("metrics.enabled", true)
}

func validateConfig(c *Config) error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	case DriverPostgres:
		pg := c.Database.Postgres
		if pg.Host == "" || pg.User == "" || pg.Name == "" {
			return errors.New("database.postgres host, user and name are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session_max_age must be positive, got %d", c.SessionMaxAge)
	}
	if c.JWT.ExpirationHours <= 0 {
		log.Warn("invalid jwt.expiration_hours, defaulting to 24", "value", c.JWT.ExpirationHours)
		c.JWT.ExpirationHours = 24
	}
	return nil
}
