//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/profile-api/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// MigrationTableName is the goose version table used by the server.
const MigrationTableName = "schema_migrations"

// databaseURLEnvVars are checked in order by GetTestDatabaseURL.
var databaseURLEnvVars = []string{"PROFILE_TEST_DATABASE_URL", "PROFILE_DATABASE_URL", "DATABASE_URL"}

// GetTestDatabaseURL returns the first database URL found in the environment,
// or an empty string.
func GetTestDatabaseURL() string {
	for _, name := range databaseURLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// GetTestDB opens a connection to the test database and applies all migrations.
// The test is skipped when no database URL is configured.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("no test database configured; set PROFILE_TEST_DATABASE_URL to run")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(MigrationTableName)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, db, "."), "failed to apply migrations")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back,
// so tests never see each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		_ = tx.Rollback()
	}()

	fn(t, tx)
}
