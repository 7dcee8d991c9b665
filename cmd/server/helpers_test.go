package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/cake-api/internal/config"
	"github.com/phrazzld/cake-api/internal/platform/logger"
	"github.com/phrazzld/cake-api/internal/service"
	"github.com/stretchr/testify/require"
)

// testConfig returns a valid memory-backed configuration.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "debug",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     time.Minute,
			ShutdownTimeout: 5 * time.Second,
			RateLimitBurst:  20,
		},
		Database: config.DatabaseConfig{
			Driver:       "memory",
			MaxOpenConns: 10,
			AutoMigrate:  true,
		},
		Cache: config.CacheConfig{
			TTL: time.Minute,
		},
	}
}

// sqliteConfig points testConfig at a fresh SQLite file.
func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := testConfig()
	cfg.Database.Driver = "sqlite"
	cfg.Database.URL = filepath.Join(t.TempDir(), "cakes.db")
	return cfg
}

// newTestApplication builds an application and registers its cleanup.
func newTestApplication(t *testing.T, cfg *config.Config) *application {
	t.Helper()

	_, l := logger.SetupTestLogger(t)
	app, err := newApplication(context.Background(), cfg, l)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

// seedLemonCheesecake stores the cake the HTTP scenarios start from.
func seedLemonCheesecake(t *testing.T, app *application) {
	t.Helper()

	cake, err := app.cakeService.CreateCake(context.Background(), service.CreateCakeRequest{
		Title:       "Lemon cheesecake",
		Description: "A cheesecake made of lemon",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), cake.ID)
}
