package resolvers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"portal.GO/config"
	entity "portal.GO/model/entity"
	catalogRepo "portal.GO/model/repository/catalog"
	stateRepo "portal.GO/model/repository/state"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Merchant{},
		&entity.Favorite{},
		&entity.AppState{},
		&entity.RefreshLock{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, brandKey string, merchants ...entity.Merchant) {
	t.Helper()
	if err := catalogRepo.NewCatalogRepository(db).ReplaceSnapshot(brandKey, merchants, time.Now()); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}
}

func TestStores_QueryAndFavorites(t *testing.T) {
	db := testDB(t)
	seed(t, db, "american",
		entity.Merchant{MerchantID: "1", Name: "Walmart", ClickURL: "https://example.com/walmart", RebateValue: "2", RebateCurrency: "miles/$"},
		entity.Merchant{MerchantID: "2", Name: "Apple", ClickURL: "https://example.com/apple", RebateValue: "3", RebateCurrency: "miles/$"},
	)

	r := NewResolver(db, "american")
	if _, err := r.ToggleFavorite(context.Background(), strPtr("2"), nil); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}

	res, err := r.Stores(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Stores: %v", err)
	}
	if res.Brand != "american" {
		t.Errorf("Brand = %q", res.Brand)
	}
	if res.Updating {
		t.Error("fresh snapshot reported as updating")
	}
	if res.Total != 1 || len(res.Stores) != 1 {
		t.Fatalf("got %d stores, want 1", len(res.Stores))
	}
	s := res.Stores[0]
	if s.Name != "Apple" || s.ID != "2" {
		t.Errorf("store = %+v", s)
	}
	if !s.Favorite {
		t.Error("favorite flag not carried into the model")
	}
	if !strings.Contains(s.Subtitle, "earn 3 miles/$") {
		t.Errorf("Subtitle = %q", s.Subtitle)
	}
}

func TestStores_FavoritesTagFilter(t *testing.T) {
	db := testDB(t)
	seed(t, db, "american",
		entity.Merchant{MerchantID: "1", Name: "Walmart", ClickURL: "https://example.com/walmart"},
		entity.Merchant{MerchantID: "2", Name: "Apple", ClickURL: "https://example.com/apple"},
	)

	r := NewResolver(db, "american")
	if _, err := r.ToggleFavorite(context.Background(), strPtr("1"), nil); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}

	res, err := r.Stores(context.Background(), ":fav")
	if err != nil {
		t.Fatalf("Stores: %v", err)
	}
	if len(res.Stores) != 1 || res.Stores[0].Name != "Walmart" {
		t.Errorf("stores = %+v, want only Walmart", res.Stores)
	}
}

func TestStore_Lookup(t *testing.T) {
	db := testDB(t)
	seed(t, db, "american",
		entity.Merchant{MerchantID: "1", Name: "Walmart", ClickURL: "https://example.com/walmart"},
	)

	r := NewResolver(db, "american")
	s, err := r.Store(context.Background(), "1")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if s == nil || s.Name != "Walmart" {
		t.Errorf("store = %+v", s)
	}

	missing, err := r.Store(context.Background(), "999")
	if err != nil {
		t.Fatalf("Store missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing store = %+v, want nil", missing)
	}
}

func TestToggleFavorite_ByURLNotFound(t *testing.T) {
	r := NewResolver(testDB(t), "american")
	_, err := r.ToggleFavorite(context.Background(), nil, strPtr("https://example.com/nope"))
	if err == nil || !strings.Contains(err.Error(), "could not find that store") {
		t.Fatalf("err = %v, want not-found message", err)
	}
}

func TestToggleFavorite_NeedsIDOrURL(t *testing.T) {
	r := NewResolver(testDB(t), "american")
	if _, err := r.ToggleFavorite(context.Background(), nil, nil); err == nil {
		t.Fatal("want error without id and url")
	}
}

func TestBrands_MarksCurrent(t *testing.T) {
	db := testDB(t)
	r := NewResolver(db, "")

	brands, err := r.Brands(context.Background())
	if err != nil {
		t.Fatalf("Brands: %v", err)
	}
	if len(brands) != len(config.BrandKeys()) {
		t.Fatalf("got %d brands, want %d", len(brands), len(config.BrandKeys()))
	}
	currents := 0
	for _, b := range brands {
		if b.Current {
			currents++
			if b.Key != config.DefaultBrand {
				t.Errorf("current = %q, want default %q", b.Key, config.DefaultBrand)
			}
		}
	}
	if currents != 1 {
		t.Errorf("%d brands marked current, want 1", currents)
	}
}

func TestSetCurrentBrand(t *testing.T) {
	db := testDB(t)
	r := NewResolver(db, "")

	b, err := r.SetCurrentBrand(context.Background(), "united")
	if err != nil {
		t.Fatalf("SetCurrentBrand: %v", err)
	}
	if b.Key != "united" || !b.Current {
		t.Errorf("brand = %+v", b)
	}
	if got := stateRepo.NewStateRepository(db).CurrentBrand(config.DefaultBrand); got != "united" {
		t.Errorf("persisted brand = %q", got)
	}

	if _, err := r.SetCurrentBrand(context.Background(), "klingon"); !errors.Is(err, config.ErrInvalidBrand) {
		t.Errorf("err = %v, want ErrInvalidBrand", err)
	}
}

func TestNewResolver_EmptyBrandFallsBackToStored(t *testing.T) {
	db := testDB(t)
	if err := stateRepo.NewStateRepository(db).SetCurrentBrand("delta"); err != nil {
		t.Fatalf("SetCurrentBrand: %v", err)
	}
	seed(t, db, "delta",
		entity.Merchant{MerchantID: "1", Name: "Walmart", ClickURL: "https://example.com/walmart"},
	)

	r := NewResolver(db, "")
	res, err := r.Stores(context.Background(), "")
	if err != nil {
		t.Fatalf("Stores: %v", err)
	}
	if res.Brand != "delta" || len(res.Stores) != 1 {
		t.Errorf("brand = %q with %d stores, want delta's snapshot", res.Brand, len(res.Stores))
	}
}

func strPtr(s string) *string { return &s }
