package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersions(t *testing.T) {
	t.Parallel()

	versions, err := migrationVersions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)

	assert.IsNonDecreasing(t, versions)
	assert.Equal(t, "001_initial_schema.sql", versions[0])

	for _, v := range versions {
		data, err := migrationsFS.ReadFile("migrations/" + v)
		require.NoError(t, err)
		assert.NotEmpty(t, strings.TrimSpace(string(data)), "migration %s is empty", v)
	}
}

func TestMigrations_DefineTables(t *testing.T) {
	t.Parallel()

	versions, err := migrationVersions()
	require.NoError(t, err)

	var all strings.Builder
	for _, v := range versions {
		data, err := migrationsFS.ReadFile("migrations/" + v)
		require.NoError(t, err)
		all.Write(data)
	}

	for _, table := range []string{
		"appraisals", "comparables", "valuations",
		"job_runs", "scheduler_locks",
	} {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, all.String(), "CREATE OR REPLACE VIEW system_state")
}
