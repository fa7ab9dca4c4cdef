package favorite

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	entity "portal.GO/model/entity"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.Merchant{}, &entity.Favorite{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestToggle_FlipsAndPersists(t *testing.T) {
	repo := NewFavoriteRepository(testDB(t))

	on, err := repo.Toggle("american", "42")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !on {
		t.Error("first toggle should set the favorite")
	}
	if !repo.IsFavorite("american", "42") {
		t.Error("IsFavorite = false after toggle on")
	}

	off, err := repo.Toggle("american", "42")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if off {
		t.Error("second toggle should unset the favorite")
	}
	if repo.IsFavorite("american", "42") {
		t.Error("IsFavorite = true after toggle off")
	}
}

func TestToggle_BrandsAreIsolated(t *testing.T) {
	repo := NewFavoriteRepository(testDB(t))

	if _, err := repo.Toggle("american", "42"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if repo.IsFavorite("united", "42") {
		t.Error("favorite leaked across brands")
	}
}

func TestMap(t *testing.T) {
	repo := NewFavoriteRepository(testDB(t))

	if _, err := repo.Toggle("american", "42"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := repo.Toggle("american", "77"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := repo.Toggle("american", "77"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	m, err := repo.Map("american")
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if !m["42"] {
		t.Error("42 should map to true")
	}
	if m["77"] {
		t.Error("77 was toggled off, should not map to true")
	}
}

func TestToggleByURL(t *testing.T) {
	db := testDB(t)
	if err := db.Create(&entity.Merchant{
		BrandKey:   "american",
		MerchantID: "42",
		Name:       "Apple",
		ClickURL:   "https://example.com/apple",
	}).Error; err != nil {
		t.Fatalf("seed merchant: %v", err)
	}
	repo := NewFavoriteRepository(db)

	m, on, err := repo.ToggleByURL("american", "https://example.com/apple")
	if err != nil {
		t.Fatalf("ToggleByURL: %v", err)
	}
	if m.MerchantID != "42" || m.Name != "Apple" {
		t.Errorf("resolved merchant = %+v", m)
	}
	if !on {
		t.Error("toggle on expected")
	}
	if !repo.IsFavorite("american", "42") {
		t.Error("favorite not persisted via URL toggle")
	}
}

func TestToggleByURL_NotFound(t *testing.T) {
	repo := NewFavoriteRepository(testDB(t))
	_, _, err := repo.ToggleByURL("american", "https://example.com/nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
