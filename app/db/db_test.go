package database

import (
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/config"
)

func TestNewDatabaseConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Repositories.Postgres.Host = "db"
	cfg.Repositories.Postgres.Port = "5433"
	cfg.Repositories.Postgres.Username = "planner"
	cfg.Repositories.Postgres.Password = "p@ss"
	cfg.Repositories.Postgres.DB = "trips"

	dbCfg, err := NewDatabaseConfig(cfg, slog.Default())
	require.NoError(t, err)

	u, err := url.Parse(dbCfg.ConnectionURL)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", u.Scheme)
	assert.Equal(t, "db:5433", u.Host)
	assert.Equal(t, "/trips", u.Path)
	assert.Equal(t, "planner", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestNewDatabaseConfig_MissingHost(t *testing.T) {
	_, err := NewDatabaseConfig(&config.Config{}, slog.Default())
	assert.Error(t, err)

	_, err = NewDatabaseConfig(nil, slog.Default())
	assert.Error(t, err)
}

func TestRunMigrations_RejectsNonPostgresURL(t *testing.T) {
	err := RunMigrations("mysql://localhost/db", slog.Default())
	assert.ErrorContains(t, err, "invalid database URL scheme")
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 6)
}
