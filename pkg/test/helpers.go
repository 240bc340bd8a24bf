package test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"taskmanager/internal/adapter/database"
	"taskmanager/pkg/config"
)

// InitTestDB opens a private in-memory sqlite database with every migration
// applied. It is closed when the test ends.
func InitTestDB(t testing.TB) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())

	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Type:           config.DBTypeSQLite,
		SQLiteFilename: dsn,
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func StringPtr(s string) *string {
	return &s
}
