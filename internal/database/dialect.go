package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Dialect carries the SQL that differs between supported databases.
// Shared statements are written with '?' placeholders and passed through sqlx Rebind.
type Dialect struct {
	// Name is the configured driver name ("sqlite", "oracle").
	Name string
	// DriverName is the database/sql driver registered by the imported driver package.
	DriverName string

	// ReturningInsert is true when the insert reports the new id through a RETURNING ... INTO bind
	// instead of sql.Result.LastInsertId.
	ReturningInsert bool

	TableExistsQuery  string
	ColumnExistsQuery string

	CreateSchemaVersionTable string
	CreateRecordsTable       string
	AddQAColumn              string

	limitClause string
}

// LimitClause returns the row-limiting clause with a single '?' bind.
func (d Dialect) LimitClause() string {
	return d.limitClause
}

var SQLite = Dialect{
	Name:       "sqlite",
	DriverName: "sqlite",

	TableExistsQuery:  `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
	ColumnExistsQuery: `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,

	CreateSchemaVersionTable: `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP NOT NULL
	)`,
	CreateRecordsTable: `CREATE TABLE IF NOT EXISTS interview_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_title VARCHAR(255) NOT NULL,
		job_description TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	AddQAColumn: `ALTER TABLE interview_records ADD COLUMN qa TEXT`,

	limitClause: `LIMIT ?`,
}

var Oracle = Dialect{
	Name:            "oracle",
	DriverName:      "oracle",
	ReturningInsert: true,

	TableExistsQuery:  `SELECT COUNT(*) FROM user_tables WHERE table_name = UPPER(?)`,
	ColumnExistsQuery: `SELECT COUNT(*) FROM user_tab_columns WHERE table_name = UPPER(?) AND column_name = UPPER(?)`,

	CreateSchemaVersionTable: `CREATE TABLE schema_version (
		version NUMBER(10) PRIMARY KEY,
		name VARCHAR2(128) NOT NULL,
		applied_at TIMESTAMP NOT NULL
	)`,
	CreateRecordsTable: `CREATE TABLE interview_records (
		id NUMBER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		job_title VARCHAR2(255 CHAR) NOT NULL,
		job_description CLOB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT SYSTIMESTAMP NOT NULL
	)`,
	AddQAColumn: `ALTER TABLE interview_records ADD (qa CLOB)`,

	limitClause: `FETCH FIRST ? ROWS ONLY`,
}

func init() {
	// sqlx only knows the bind styles of older driver names.
	sqlx.BindDriver(SQLite.DriverName, sqlx.QUESTION)
	sqlx.BindDriver(Oracle.DriverName, sqlx.NAMED)
}

// DialectFor resolves a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case SQLite.Name:
		return SQLite, nil
	case Oracle.Name:
		return Oracle, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver: %q", driver)
}
