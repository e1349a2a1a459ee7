// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"heartsupport/internal/db"
)

// NewDB opens a private in-memory SQLite database with the schema migrated.
// A single connection keeps the database alive and serialises transactions.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.Config())
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		tb.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.Migrate(context.Background(), gdb); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return gdb
}
