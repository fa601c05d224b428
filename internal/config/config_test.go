package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5000", cfg.Listen)
	assert.Equal(t, 172800, cfg.SessionMaxAge)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/bills.db", cfg.Database.Path)
	assert.Equal(t, int64(24), cfg.JWT.ExpirationHours)
	assert.Empty(t, cfg.JWT.Secret)
	assert.False(t, cfg.Bills.ListAll)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: 0.0.0.0:8080
bills:
  list_all: true
database:
  path: /tmp/other.db
`), 0o600))
	t.Setenv("BILL_TRACKER_LISTEN", "127.0.0.1:9000")
	t.Setenv("BILL_TRACKER_JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.True(t, cfg.Bills.ListAll)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown driver", "database:\n  driver: mysql\n"},
		{"postgres without host details", "database:\n  driver: postgres\n"},
		{"non-positive session age", "session_max_age: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"empty password", ""},
		{"password with space", "a b"},
		{"password with url characters", `p@ss:/?#'"x`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg := &PostgresConfig{Host: "db", Port: 5433, User: "bills user", Password: tt.password, Name: "bills", SSLMode: "disable"}

			parsed, err := pgxpool.ParseConfig(pg.DSN())
			require.NoError(t, err)

			assert.Equal(t, "db", parsed.ConnConfig.Host)
			assert.Equal(t, uint16(5433), parsed.ConnConfig.Port)
			assert.Equal(t, "bills user", parsed.ConnConfig.User)
			assert.Equal(t, tt.password, parsed.ConnConfig.Password)
			assert.Equal(t, "bills", parsed.ConnConfig.Database)
		})
	}
}

func TestOpenSQLite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bills.db")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.FileExists(t, path)
	assert.True(t, db.Migrator().HasTable("bills"))
}
