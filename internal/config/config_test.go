package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"APP_ENV":              "",
		"PORT":                 "",
		"STORE_DRIVER":         "",
		"DATABASE_URL":         "postgres://localhost:5432/gudang",
		"REDIS_URL":            "",
		"CORS_ALLOWED_ORIGINS": "",
		"CATALOG_CACHE_TTL":    "",
		"MIGRATE_ON_START":     "",
	})
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, DriverPostgres, cfg.StoreDriver)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, time.Minute, cfg.CatalogCacheTTL)
	require.True(t, cfg.MigrateOnStart)
}

func TestLoadRequiresDatabaseURLForPostgres(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"STORE_DRIVER": DriverPostgres,
		"DATABASE_URL": "",
	})
	require.Error(t, err)
}

func TestLoadMemoryDriverNeedsNoDatabase(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"STORE_DRIVER": DriverMemory,
		"DATABASE_URL": "",
	})
	require.NoError(t, err)
	require.Equal(t, DriverMemory, cfg.StoreDriver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"STORE_DRIVER": "sqlite",
	})
	require.Error(t, err)
}

func TestLoadParsesLists(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"STORE_DRIVER":         DriverMemory,
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example ,",
		"CATALOG_CACHE_TTL":    "5m",
		"PORT":                 "9090",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	require.Equal(t, ":9090", cfg.HTTPAddr())
}
