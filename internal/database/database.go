// Package database opens the local session store: SQLite by default,
// PostgreSQL when the DSN is a postgres URL.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"
)

// Driver is a database/sql driver name.
type Driver string

// Supported drivers.
const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "pgx"
)

// DB is an open store with the driver it was opened with.
type DB struct {
	*sql.DB
	Driver Driver
}

// DriverForDSN picks the driver for dsn: postgres:// and postgresql:// URLs
// use pgx, everything else is a SQLite path.
func DriverForDSN(dsn string) Driver {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	tracerProvider trace.TracerProvider
}

// WithTracerProvider traces PostgreSQL queries with tp. Nil uses the otel
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *openOptions) { o.tracerProvider = tp }
}

// Open connects to dsn and pings it. SQLite files get their parent
// directory created and are limited to one open connection. PostgreSQL
// connections are traced with otelpgx.
func Open(ctx context.Context, dsn string, opts ...Option) (*DB, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	driver := DriverForDSN(dsn)

	if driver == DriverSQLite && isSQLiteFile(dsn) {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=busy_timeout(5000)"
		}
	}

	var db *sql.DB
	if driver == DriverPostgres {
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("unable to parse database URL: %w", err)
		}
		var tracerOpts []otelpgx.Option
		if o.tracerProvider != nil {
			tracerOpts = append(tracerOpts, otelpgx.WithTracerProvider(o.tracerProvider))
		}
		cfg.Tracer = otelpgx.NewTracer(tracerOpts...)
		db = stdlib.OpenDB(*cfg)
	} else {
		var err error
		db, err = sql.Open(string(driver), dsn)
		if err != nil {
			return nil, fmt.Errorf("unable to open %s database: %w", driver, err)
		}
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &DB{DB: db, Driver: driver}, nil
}

func isSQLiteFile(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// Rebind rewrites ? placeholders to $n for PostgreSQL. Queries must not
// contain literal question marks.
func Rebind(driver Driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
