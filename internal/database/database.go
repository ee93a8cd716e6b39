package database

import (
	"context"
	"fmt"
	"time"

	"interview-agent/internal/config"
	"interview-agent/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sqlx.Open(dialect.DriverName, cfg.DSN)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("failed to open %s database: %w", dialect.Name, err)
	}

	if dialect.Name == SQLite.Name {
		// One connection avoids "database is locked" and keeps ":memory:" databases shared.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, Dialect{}, fmt.Errorf("failed to ping %s database: %w", dialect.Name, err)
	}

	if dialect.Name == SQLite.Name {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, Dialect{}, fmt.Errorf("setting busy timeout: %w", err)
		}
	}

	logger.Get().Info("Connected to database", zap.String("driver", dialect.Name))
	return db, dialect, nil
}

// OpenAndMigrate opens the database and brings the schema up to date.
func OpenAndMigrate(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, Dialect, error) {
	db, dialect, err := Open(ctx, cfg)
	if err != nil {
		return nil, Dialect{}, err
	}
	if err := Migrate(ctx, db, dialect); err != nil {
		db.Close()
		return nil, Dialect{}, fmt.Errorf("running migrations: %w", err)
	}
	return db, dialect, nil
}
