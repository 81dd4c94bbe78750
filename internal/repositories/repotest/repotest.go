// Package repotest opens throwaway migrated databases for tests.
package repotest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/anonto42/nano-midea/gateway/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated and seeded sqlite database that lives in the
// test's temp dir.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "gateway.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repositories.Migrate(context.Background(), db))
	return db
}

// NewStore returns a Store over a fresh database.
func NewStore(t testing.TB) *repositories.Store {
	return repositories.NewPostgresStore(Open(t))
}
