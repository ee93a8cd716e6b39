package database

import (
	"context"
	"fmt"
	"sort"
	"time"

	"interview-agent/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	RecordsTable       = "interview_records"
	schemaVersionTable = "schema_version"
)

// Migration is one additive schema step. Present reports whether the schema
// already contains the change (for example a table created before versioning
// existed); the step is then recorded without executing its DDL.
type Migration struct {
	Version int
	Name    string
	Present func(ctx context.Context, db Queryer, d Dialect) (bool, error)
	Up      func(d Dialect) string
}

// Migrations lists every schema step in ascending version order.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_interview_records",
		Present: func(ctx context.Context, db Queryer, d Dialect) (bool, error) {
			return TableExists(ctx, db, d, RecordsTable)
		},
		Up: func(d Dialect) string { return d.CreateRecordsTable },
	},
	{
		Version: 2,
		Name:    "add_qa_column",
		Present: func(ctx context.Context, db Queryer, d Dialect) (bool, error) {
			return ColumnExists(ctx, db, d, RecordsTable, "qa")
		},
		Up: func(d Dialect) string { return d.AddQAColumn },
	},
}

// Queryer is satisfied by *sqlx.DB and *sqlx.Tx.
type Queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

// AppliedMigration is a row of the schema_version table.
type AppliedMigration struct {
	Version   int       `db:"version"`
	Name      string    `db:"name"`
	AppliedAt time.Time `db:"applied_at"`
}

// Migrate applies pending migrations. It is safe to run any number of times.
func Migrate(ctx context.Context, db *sqlx.DB, d Dialect) error {
	l := logger.Get()

	if err := ensureSchemaVersionTable(ctx, db, d); err != nil {
		return err
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	steps := make([]Migration, len(Migrations))
	copy(steps, Migrations)
	sort.Slice(steps, func(i, j int) bool { return steps[i].Version < steps[j].Version })

	for _, m := range steps {
		if applied[m.Version] {
			continue
		}

		present, err := m.Present(ctx, db, d)
		if err != nil {
			return fmt.Errorf("checking migration %d (%s): %w", m.Version, m.Name, err)
		}
		if present {
			l.Info("Schema change already present, recording migration",
				zap.Int("version", m.Version), zap.String("name", m.Name))
		} else {
			if _, err := db.ExecContext(ctx, m.Up(d)); err != nil {
				return fmt.Errorf("applying migration %d (%s): %w", m.Version, m.Name, err)
			}
			l.Info("Applied migration", zap.Int("version", m.Version), zap.String("name", m.Name))
		}

		insert := db.Rebind(`INSERT INTO schema_version (version, name, applied_at) VALUES (?, ?, ?)`)
		if _, err := db.ExecContext(ctx, insert, m.Version, m.Name, time.Now().UTC()); err != nil {
			return fmt.Errorf("recording migration %d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// AppliedMigrations returns the recorded migrations in ascending version order.
func AppliedMigrations(ctx context.Context, db *sqlx.DB) ([]AppliedMigration, error) {
	var rows []AppliedMigration
	query := `SELECT version "version", name "name", applied_at "applied_at" FROM schema_version ORDER BY version`
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("listing applied migrations: %w", err)
	}
	return rows, nil
}

// TableExists reports whether the named table exists in the current schema.
func TableExists(ctx context.Context, db Queryer, d Dialect, table string) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, db, &count, db.Rebind(d.TableExistsQuery), table); err != nil {
		return false, fmt.Errorf("checking table %s: %w", table, err)
	}
	return count > 0, nil
}

// ColumnExists reports whether the named column exists on table.
func ColumnExists(ctx context.Context, db Queryer, d Dialect, table, column string) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, db, &count, db.Rebind(d.ColumnExistsQuery), table, column); err != nil {
		return false, fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	return count > 0, nil
}

func ensureSchemaVersionTable(ctx context.Context, db *sqlx.DB, d Dialect) error {
	exists, err := TableExists(ctx, db, d, schemaVersionTable)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if _, err := db.ExecContext(ctx, d.CreateSchemaVersionTable); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}
	return nil
}

func appliedVersions(ctx context.Context, db *sqlx.DB) (map[int]bool, error) {
	var versions []int
	if err := db.SelectContext(ctx, &versions, `SELECT version FROM schema_version`); err != nil {
		return nil, fmt.Errorf("reading schema_version: %w", err)
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}
