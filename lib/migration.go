package lib

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

type Migration struct {
	Name    string
	UpSQL   string
	DownSQL string
}

// EmbeddedMigrations returns the schema migrations for the derivative store.
func EmbeddedMigrations() ([]*Migration, error) {
	return ReadMigrationsFS(embeddedMigrations, "migrations")
}

func ReadMigrationsDir(dir string) ([]*Migration, error) {
	return ReadMigrationsFS(os.DirFS(dir), ".")
}

// ReadMigrationsFS loads NAME.sql / NAME.down.sql pairs from dir, sorted by
// name.
func ReadMigrationsFS(fsys fs.FS, dir string) ([]*Migration, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	migrations := map[string]*Migration{}

	withMigration := func(name string) *Migration {
		m, ok := migrations[name]
		if !ok {
			m = &Migration{
				Name: name,
			}
			migrations[name] = m
		}
		return m
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		bytes, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}

		name, isUp := parseMigrationFileName(file.Name())
		migration := withMigration(name)
		if isUp {
			migration.UpSQL = string(bytes)
		} else {
			migration.DownSQL = string(bytes)
		}
	}

	keys := []string{}
	for k := range migrations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []*Migration{}
	for _, k := range keys {
		result = append(result, migrations[k])
	}
	return result, nil
}

func parseMigrationFileName(fileName string) (string, bool) {
	return getMigrationName(fileName), getUpness(fileName)
}

func getMigrationName(fileName string) string {
	dotParts := strings.Split(fileName, ".")
	return dotParts[0]
}

func getUpness(fileName string) bool {
	return !strings.HasSuffix(fileName, ".down.sql")
}

// RunMigrations applies every migration not yet recorded in the migrations
// table, each in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB, driver string, migrations []*Migration) error {
	err := requireMigrationsTable(ctx, db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		err = execMigration(ctx, db, driver, migration)
		if err != nil {
			return fmt.Errorf("migration %s: %w", migration.Name, err)
		}
	}

	return nil
}

func requireMigrationsTable(ctx context.Context, db *sql.DB) error {
	const query = `CREATE TABLE IF NOT EXISTS migrations (
		name       TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func execMigration(ctx context.Context, db *sql.DB, driver string, migration *Migration) error {
	var applied int
	row := db.QueryRowContext(ctx, rebind(driver, "SELECT COUNT(*) FROM migrations WHERE name = ?"), migration.Name)
	if err := row.Scan(&applied); err != nil {
		return err
	}
	if applied > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.UpSQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, rebind(driver, "INSERT INTO migrations (name) VALUES (?)"), migration.Name); err != nil {
		return err
	}
	return tx.Commit()
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func rebind(driver string, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// RevertLastMigration runs the down script of the most recently applied
// migration and returns its name, or "" when nothing is applied.
func RevertLastMigration(ctx context.Context, db *sql.DB, driver string, migrations []*Migration) (string, error) {
	err := requireMigrationsTable(ctx, db)
	if err != nil {
		return "", err
	}

	for i := len(migrations) - 1; i >= 0; i-- {
		migration := migrations[i]
		var applied int
		row := db.QueryRowContext(ctx, rebind(driver, "SELECT COUNT(*) FROM migrations WHERE name = ?"), migration.Name)
		if err := row.Scan(&applied); err != nil {
			return "", err
		}
		if applied == 0 {
			continue
		}
		if migration.DownSQL == "" {
			return "", fmt.Errorf("migration %s has no down script", migration.Name)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return "", err
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx, migration.DownSQL); err != nil {
			return "", fmt.Errorf("migration %s: %w", migration.Name, err)
		}
		if _, err := tx.ExecContext(ctx, rebind(driver, "DELETE FROM migrations WHERE name = ?"), migration.Name); err != nil {
			return "", err
		}
		return migration.Name, tx.Commit()
	}
	return "", nil
}
