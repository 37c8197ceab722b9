package database

import (
	"path/filepath"
	"testing"

	"beast-hub/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBRunsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "beast.db")

	db, err := NewDB(path, logging.Discard())
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"documents", "execution_metrics"} {
		var name string
		err := db.SQL.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beast.db")

	require.NoError(t, RunMigrations(path, logging.Discard()))
	assert.NoError(t, RunMigrations(path, logging.Discard()))
}
