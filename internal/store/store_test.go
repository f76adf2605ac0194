package store

import (
	"testing"

	"github.com/taskdock-dev/taskdock/db"
	"github.com/taskdock-dev/taskdock/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single
// connection keeps every query on the same :memory: instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()

	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, email string) *models.User {
	t.Helper()

	user, err := NewUserStore(gdb).Create(email, "Test User", "pw123456")

	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}

	return user
}
