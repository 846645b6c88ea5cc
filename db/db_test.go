package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrgen.exe.dev/db/dbgen"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite3")
	wdb, err := Open(path)
	require.NoError(t, err)
	defer wdb.Close()

	require.NoError(t, RunMigrations(wdb))
	// Re-running is a no-op.
	require.NoError(t, RunMigrations(wdb))

	var version int
	require.NoError(t, wdb.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, 2, version)
}

func TestMigrationsSeedPlansAndConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite3")
	wdb, err := Open(path)
	require.NoError(t, err)
	defer wdb.Close()
	require.NoError(t, RunMigrations(wdb))

	q := dbgen.New(wdb)
	plans, err := q.ListActivePlans(t.Context())
	require.NoError(t, err)
	require.Len(t, plans, 5)
	assert.Equal(t, "free", plans[0].ID)

	cfg, err := q.GetAppConfig(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.EnableUserRegistration)
	assert.Equal(t, int64(10), cfg.DefaultFreePlanLimit)
	assert.Equal(t, "monthly", cfg.ConversionResetPeriod)
}

func TestConversionsUniquePerAccountAndText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite3")
	wdb, err := Open(path)
	require.NoError(t, err)
	defer wdb.Close()
	require.NoError(t, RunMigrations(wdb))

	_, err = wdb.Exec(`INSERT INTO accounts (id, email, password_hash, api_key, bearer_token) VALUES ('a1', 'a@b.example', 'x', 'qr_x', 'br_x')`)
	require.NoError(t, err)

	_, err = wdb.Exec(`INSERT INTO conversions (id, account_id, text, qr_code_url, type) VALUES ('c1', 'a1', 'dup', 'data:', 'text')`)
	require.NoError(t, err)
	_, err = wdb.Exec(`INSERT INTO conversions (id, account_id, text, qr_code_url, type) VALUES ('c2', 'a1', 'dup', 'data:', 'text')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}
