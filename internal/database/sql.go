package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/placesapi/placesapi/internal/config"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

// OpenSQLite opens a SQLite database file (":memory:" works) and makes
// sure the places schema exists.
func OpenSQLite(ctx context.Context, path string, logger *zerolog.Logger) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// One writer at a time; a single connection also keeps ":memory:" alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := ensureSchema(ctx, db, config.DriverSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info().Str("driver", config.DriverSQLite).Str("path", path).Msg("connected to the database")

	return &Database{Driver: config.DriverSQLite, SQL: db, log: logger}, nil
}

// MySQLDSN builds a go-sql-driver DSN. Times are parsed into time.Time
// and UPDATE reports matched rather than changed rows.
func MySQLDSN(cfg *config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.ClientFoundRows = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// OpenMySQL connects to MySQL and makes sure the places schema exists.
func OpenMySQL(ctx context.Context, cfg *config.DatabaseConfig, logger *zerolog.Logger) (*Database, error) {
	db, err := sql.Open("mysql", MySQLDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := ensureSchema(ctx, db, config.DriverMySQL); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info().Str("driver", config.DriverMySQL).Str("addr", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))).Msg("connected to the database")

	return &Database{Driver: config.DriverMySQL, SQL: db, log: logger}, nil
}
