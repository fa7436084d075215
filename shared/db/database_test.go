package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmohub/listings/shared/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: "postgres", Host: "db", Port: 5433, User: "u",
		Password: "p", Name: "listings", SSLMode: "require",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=listings sslmode=require", DSN(cfg))

	cfg.URL = "postgres://u:p@db/listings"
	assert.Equal(t, "postgres://u:p@db/listings", DSN(cfg))

	assert.Equal(t, "local.db", DSN(config.DatabaseConfig{Driver: "sqlite", Name: "local"}))
}

func TestNewDBAndMigrateSQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:       "sqlite",
		URL:          filepath.Join(t.TempDir(), "listings.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	database, err := NewDB(cfg)
	require.NoError(t, err)
	defer Close(database)

	require.NoError(t, Migrate(database))
	for _, table := range []string{"agencies", "users", "properties", "projects", "floors", "quadrants", "landing_images"} {
		assert.True(t, database.Migrator().HasTable(table), table)
	}
}
