package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
)

//go:embed *.sql
var migrationFiles embed.FS

const (
	createTrackingTable = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`
	selectApplied = `SELECT version FROM schema_migrations ORDER BY version`
	recordApplied = `INSERT INTO schema_migrations (version, name, applied_at) VALUES ($1, $2, NOW())`
)

// Migration is one numbered schema change for the palette blob table.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

func (m Migration) String() string {
	return fmt.Sprintf("%03d_%s", m.Version, m.Name)
}

// RunMigrations brings the palette schema up to date with the embedded migrations.
func RunMigrations(db *sql.DB) error {
	return apply(context.Background(), db, migrationFiles)
}

// apply runs every migration in fsys whose version is not yet recorded,
// each in its own transaction together with its schema_migrations row.
func apply(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	if _, err := db.ExecContext(ctx, createTrackingTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	all, err := readMigrationFiles(fsys)
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	pending := pendingMigrations(all, applied)
	log.Printf("Palette schema: %d migrations, %d pending", len(all), len(pending))

	for _, migration := range pending {
		if err := applyMigration(ctx, db, migration); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration, err)
		}
		log.Printf("Applied migration %s", migration)
	}
	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, selectApplied)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// pendingMigrations keeps the version order of all.
func pendingMigrations(all []Migration, applied map[int]bool) []Migration {
	var pending []Migration
	for _, migration := range all {
		if !applied[migration.Version] {
			pending = append(pending, migration)
		}
	}
	return pending
}

// readMigrationFiles loads NNN_name.sql files from fsys sorted by version.
func readMigrationFiles(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var migration Migration
		if _, err := fmt.Sscanf(entry.Name(), "%d_%s", &migration.Version, &migration.Name); err != nil {
			log.Printf("Skipping migration file without a version prefix: %s", entry.Name())
			continue
		}
		migration.Name = strings.TrimSuffix(migration.Name, ".sql")

		content, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		migration.SQL = string(content)

		migrations = append(migrations, migration)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func applyMigration(ctx context.Context, db *sql.DB, migration Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, recordApplied, migration.Version, migration.Name); err != nil {
		return err
	}
	return tx.Commit()
}
