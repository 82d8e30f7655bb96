// Package testdb opens a throwaway SQLite store, migrated and seeded the
// same way the server does at startup.
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/cafepos/database/migrations"
	"github.com/shashiranjanraj/cafepos/database/seeders"
	"github.com/shashiranjanraj/cafepos/pkg/database"
	"github.com/shashiranjanraj/cafepos/pkg/migration"
)

const (
	AdminUsername = "Admin"
	AdminPassword = "1722"
)

// Open returns a fresh database in t's temp dir, closed on cleanup.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migration.New(db).Run())
	require.NoError(t, seeders.RunAll(context.Background(), db, seeders.Options{
		AdminUsername: AdminUsername,
		AdminPassword: AdminPassword,
	}))
	return db
}
