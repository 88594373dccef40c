package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// MigrationDirection selects which way Migrate moves the schema.
type MigrationDirection string

const (
	MigrateUp   MigrationDirection = "up"
	MigrateDown MigrationDirection = "down"
)

// Migrate applies (or rolls back one step of) the embedded goose migrations.
// goose drives database/sql, so a short-lived pgx stdlib connection is opened
// next to the pool.
func Migrate(ctx context.Context, dsn string, dir MigrationDirection) error {
	conn, provider, err := newMigrationProvider(dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	switch dir {
	case MigrateUp:
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}
		for _, r := range results {
			slog.InfoContext(ctx, "migration applied", "version", r.Source.Version, "duration", r.Duration)
		}
	case MigrateDown:
		r, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("rolling back migration: %w", err)
		}
		slog.InfoContext(ctx, "migration rolled back", "version", r.Source.Version)
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}
	return nil
}

// MigrationStatus writes one line per known migration to w.
func MigrationStatus(ctx context.Context, dsn string, w io.Writer) error {
	conn, provider, err := newMigrationProvider(dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	statuses, err := provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("reading migration status: %w", err)
	}
	for _, s := range statuses {
		applied := "pending"
		if s.State == goose.StateApplied {
			applied = "applied " + s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%05d  %-32s %s\n", s.Source.Version, s.Source.Path, applied)
	}
	return nil
}

// Migrate runs migrations against the DSN this DB was opened with.
func (db *DB) Migrate(ctx context.Context, dir MigrationDirection) error {
	return Migrate(ctx, db.dsn, dir)
}

func newMigrationProvider(dsn string) (*sql.DB, *goose.Provider, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening migration connection: %w", err)
	}
	sub, err := fs.Sub(migrationsFS, migrationsDir)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, conn, sub, goose.WithDisableGlobalRegistry(true))
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return conn, provider, nil
}
