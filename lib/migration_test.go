package lib

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadMigrationsDir(t *testing.T) {
	migrations, err := ReadMigrationsDir("testdata/migrations")
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	require.Equal(t, "0001_first", migrations[0].Name)
	require.True(t, strings.HasPrefix(migrations[0].UpSQL, "CREATE TABLE first"))
	require.True(t, strings.HasPrefix(migrations[0].DownSQL, "DROP TABLE first"))

	require.Equal(t, "0002_second", migrations[1].Name)
	require.Equal(t, "", migrations[1].DownSQL)
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := EmbeddedMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	require.Equal(t, "0001_create_derivatives", migrations[0].Name)
	require.Equal(t, "0002_add_derivatives_hits", migrations[1].Name)
	for _, m := range migrations {
		require.NotEmpty(t, m.UpSQL, m.Name)
		require.NotEmpty(t, m.DownSQL, m.Name)
	}
}

func TestParseMigrationFileName(t *testing.T) {
	name, up := parseMigrationFileName("0003_thing.sql")
	require.Equal(t, "0003_thing", name)
	require.True(t, up)

	name, up = parseMigrationFileName("0003_thing.down.sql")
	require.Equal(t, "0003_thing", name)
	require.False(t, up)
}

func TestRebind(t *testing.T) {
	query := "SELECT a FROM b WHERE c = ? AND d = ?"
	require.Equal(t, query, rebind(DriverSQLite, query))
	require.Equal(t, "SELECT a FROM b WHERE c = $1 AND d = $2", rebind(DriverPostgres, query))
}

func TestRunAndRevertMigrations(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx, StoreConfig{Driver: DriverSQLite})
	require.NoError(t, err)
	defer store.Close()

	migrations, err := ReadMigrationsDir("testdata/migrations")
	require.NoError(t, err)

	require.NoError(t, RunMigrations(ctx, store.DB(), DriverSQLite, migrations))
	// already applied migrations are skipped
	require.NoError(t, RunMigrations(ctx, store.DB(), DriverSQLite, migrations))

	var applied int
	require.NoError(t, store.DB().QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	require.Equal(t, 2, applied)

	// 0002_second has no down script
	_, err = RevertLastMigration(ctx, store.DB(), DriverSQLite, migrations)
	require.Error(t, err)

	name, err := RevertLastMigration(ctx, store.DB(), DriverSQLite, migrations[:1])
	require.NoError(t, err)
	require.Equal(t, "0001_first", name)

	name, err = RevertLastMigration(ctx, store.DB(), DriverSQLite, migrations[:1])
	require.NoError(t, err)
	require.Equal(t, "", name)
}
