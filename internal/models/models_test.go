package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	return db
}

func TestSeedInterests_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := SeedInterests(db); err != nil {
		t.Fatalf("SeedInterests failed: %v", err)
	}
	if err := SeedInterests(db); err != nil {
		t.Fatalf("second SeedInterests failed: %v", err)
	}

	var count int64
	if err := db.Model(&Interest{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if int(count) != len(DefaultInterests()) {
		t.Errorf("expected %d interests, got %d", len(DefaultInterests()), count)
	}

	var defaultInterest Interest
	if err := FindByID(db, DefaultInterestID, &defaultInterest); err != nil {
		t.Errorf("default interest should be seeded: %v", err)
	}
}

func TestBaseModel_GeneratesULID(t *testing.T) {
	db := newTestDB(t)

	user := &User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if len(user.ID) != 26 {
		t.Errorf("expected a 26-character ULID, got '%s'", user.ID)
	}

	// An explicit ID must be kept
	other := &User{BaseModel: BaseModel{ID: "fixed-id"}, Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if other.ID != "fixed-id" {
		t.Errorf("explicit ID should survive, got '%s'", other.ID)
	}
}

func TestUser_UniqueConstraints(t *testing.T) {
	db := newTestDB(t)

	first := &User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	duplicate := &User{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	if err := db.Create(duplicate).Error; err == nil {
		t.Error("duplicate username should be rejected")
	}
}
