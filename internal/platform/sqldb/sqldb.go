// Package sqldb opens the relational store and applies its schema.
//
// Stores write portable SQL with '?' placeholders and run it through Rebind,
// so the same queries serve PostgreSQL (lib/pq) and embedded SQLite
// (modernc.org/sqlite).
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder syntax and driver.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB is a *sql.DB that knows its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects and verifies the connection. For SQLite, dsn is a file path
// or ":memory:".
func Open(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	switch dialect {
	case Postgres, SQLite:
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}
	if dialect == SQLite {
		// An in-memory database lives and dies with its connection.
		if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
			db.SetMaxOpenConns(1)
		}
		pragmas := []string{
			"PRAGMA foreign_keys = ON",
			"PRAGMA busy_timeout = 5000",
		}
		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
			}
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}
	return &DB{DB: db, Dialect: dialect}, nil
}

// Wrap adopts an already open connection, e.g. one owned by a test container.
func Wrap(db *sql.DB, dialect Dialect) *DB {
	return &DB{DB: db, Dialect: dialect}
}

// Rebind rewrites '?' placeholders to '$n' for PostgreSQL. Question marks
// inside single-quoted literals are left alone.
func (db *DB) Rebind(query string) string {
	if db.Dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const (
	pgUniqueViolation       = "23505"
	sqliteConstraintUnique  = 2067
	sqliteConstraintPrimary = 1555
)

// IsUniqueViolation reports whether err is a unique or primary key violation
// from either driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		code := coder.Code()
		return code == sqliteConstraintUnique || code == sqliteConstraintPrimary
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Timestamps are stored as fixed-width UTC RFC 3339 text. Both dialects
// round-trip them identically and text order is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// NullString maps "" to NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
