// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"blogicum/internal/db"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Open returns a migrated database stored under t.TempDir().
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := db.SQLitePrefix + filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(dsn, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}
