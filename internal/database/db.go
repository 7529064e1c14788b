package database

import (
	"context"
	"database/sql"
)

// Dialect selects the placeholder style the store compiler emits.
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSQLite
)

// DB abstracts the two corpus backends (pgx pool, database/sql over sqlite)
// behind one query surface. The ranking pipeline only reads; Exec exists for
// schema setup and imports.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	Dialect() Dialect

	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
