package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/profile-api/internal/config"
	"github.com/phrazzld/profile-api/internal/platform/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(driver string) *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "info"},
		Database: config.DatabaseConfig{Driver: driver},
		User:     config.UserConfig{MinAge: 18},
	}
}

func TestNewApplication(t *testing.T) {
	t.Run("memory driver", func(t *testing.T) {
		app, err := newApplication(testConfig(config.DriverMemory), testLogger(), nil)
		require.NoError(t, err)
		assert.IsType(t, &memory.UserStore{}, app.userStore)
		assert.NotNil(t, app.userService)
	})

	t.Run("postgres driver requires a connection", func(t *testing.T) {
		_, err := newApplication(testConfig(config.DriverPostgres), testLogger(), nil)
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := newApplication(testConfig("sqlite"), testLogger(), nil)
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}
