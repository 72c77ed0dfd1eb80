// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the revision-history store for Sentinel. It
// abstracts the underlying database (SQLite, PostgreSQL, MySQL) behind a
// consistent interface so the rest of the application never touches SQL
// drivers directly.
package db // import "github.com/toeirei/sentinel/internal/db"

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// SQL drivers registered for the supported backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var (
	store Store
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// InitDB initializes the database connection based on the provided type
// and DSN and sets the package-level store used by the helpers below.
func InitDB(dbType, dsn string) error {
	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	store = s
	return nil
}

// IsInitialized reports whether the package-level store has been set.
func IsInitialized() bool {
	return store != nil
}

// NewStoreFromDSN opens a sql.DB for the given DSN, ensures the schema
// exists, and returns a Store backed by a long-lived *bun.DB.
func NewStoreFromDSN(dbType, dsn string) (Store, error) {
	driverName := dbType
	// The pgx stdlib registers driver name "pgx"; map "postgres" to that driver.
	if dbType == "postgres" {
		driverName = "pgx"
	}
	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var bdb *bun.DB
	switch dbType {
	case "sqlite":
		bdb = bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		bdb = bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		bdb = bun.NewDB(sqlDB, mysqldialect.New())
	default:
		_ = sqlDB.Close()
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	s := &BunStore{db: bdb}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return s, nil
}
