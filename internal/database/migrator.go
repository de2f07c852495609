package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/placesapi/placesapi/internal/config"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Idempotent schemas for the database/sql drivers.
//
//go:embed schema/*.sql
var schemas embed.FS

// Migrate brings the configured database up to date.
//
// Postgres runs the versioned tern migrations and records progress in
// schema_version. SQLite and MySQL apply their CREATE ... IF NOT EXISTS
// schema; opening them through New does the same.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	switch cfg.Database.Driver {
	case config.DriverSQLite, config.DriverMySQL:
		db, err := New(cfg, logger, nil)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info().Str("driver", cfg.Database.Driver).Msg("database schema up to date")
		return nil
	}

	conn, err := pgx.Connect(ctx, PostgresDSN(&cfg.Database))
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver string) error {
	ddl, err := schemas.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return fmt.Errorf("reading %s schema: %w", driver, err)
	}

	// The MySQL driver rejects multi-statement strings unless asked to
	// allow them, so its schema is a single statement.
	stmt := strings.TrimSuffix(strings.TrimSpace(string(ddl)), ";")
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("applying %s schema: %w", driver, err)
	}
	return nil
}
