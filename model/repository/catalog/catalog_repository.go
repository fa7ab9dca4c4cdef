package catalog

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portal.GO/config"
	"portal.GO/core/cache"
	entity "portal.GO/model/entity"
)

const (
	snapshotCacheTag = "catalog"
	// in-process snapshot memo TTL (seconds); server mode only benefit
	snapshotMemTTL = 30
	// redis blob TTL; refreshes rewrite the key well before this
	snapshotRedisTTL = 48 * time.Hour
)

// CatalogRepository persists brand catalog snapshots. A snapshot is only
// ever replaced as a whole inside one transaction, so concurrent readers
// observe either the old or the new catalog, never a mix.
type CatalogRepository struct {
	db  *gorm.DB
	mem *cache.Cache
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	// shared cache: a commit through any repository instance must
	// invalidate the memo every other instance reads from
	return &CatalogRepository{db: db, mem: cache.GetInstance()}
}

func snapshotKey(brandKey string) string {
	return "catalog:" + brandKey
}

// Snapshot returns the cached merchant list for a brand in stored order.
// An absent catalog is an empty slice, not an error. Reads go through the
// in-process cache and, when configured, Redis before hitting SQLite.
func (r *CatalogRepository) Snapshot(brandKey string) ([]entity.Merchant, error) {
	key := snapshotKey(brandKey)
	if v, ok := r.mem.Get(key); ok {
		if merchants, ok := v.([]entity.Merchant); ok {
			return merchants, nil
		}
	}
	if config.RedisClient != nil {
		data, err := config.RedisClient.Get(config.RedisCtx(), key).Bytes()
		if err == nil && len(data) > 0 {
			var merchants []entity.Merchant
			if err := json.Unmarshal(data, &merchants); err == nil {
				r.mem.Set(key, merchants, snapshotMemTTL, []string{snapshotCacheTag})
				return merchants, nil
			}
		}
	}

	var merchants []entity.Merchant
	err := r.db.Where("brand_key = ?", brandKey).Order("position asc").Find(&merchants).Error
	if err != nil {
		return nil, err
	}
	r.mem.Set(key, merchants, snapshotMemTTL, []string{snapshotCacheTag})
	if config.RedisClient != nil && len(merchants) > 0 {
		if data, err := json.Marshal(merchants); err == nil {
			if err := config.RedisClient.Set(config.RedisCtx(), key, data, snapshotRedisTTL).Err(); err != nil {
				log.Printf("catalog: redis set failed: %v", err)
			}
		}
	}
	return merchants, nil
}

// ReplaceSnapshot swaps in a full new catalog for a brand and records the
// refresh time, all in one transaction.
func (r *CatalogRepository) ReplaceSnapshot(brandKey string, merchants []entity.Merchant, refreshedAt time.Time) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("brand_key = ?", brandKey).Delete(&entity.Merchant{}).Error; err != nil {
			return err
		}
		for i := range merchants {
			merchants[i].ID = 0
			merchants[i].BrandKey = brandKey
			merchants[i].Position = i
		}
		if len(merchants) > 0 {
			if err := tx.CreateInBatches(merchants, 500).Error; err != nil {
				return err
			}
		}
		stamp := entity.AppState{
			Key:   "last_update:" + brandKey,
			Value: strconv.FormatInt(refreshedAt.Unix(), 10),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&stamp).Error
	})
	if err != nil {
		return err
	}
	r.invalidate(brandKey)
	return nil
}

// FindByClickURL returns the merchant with an exact click_url match in the
// brand's current snapshot.
func (r *CatalogRepository) FindByClickURL(brandKey, clickURL string) (*entity.Merchant, error) {
	var m entity.Merchant
	err := r.db.First(&m, "brand_key = ? AND click_url = ?", brandKey, clickURL).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Reinitialize clears all persisted state: snapshots, favorites, brand
// selection, timestamps, and refresh locks.
func (r *CatalogRepository) Reinitialize() error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&entity.Merchant{},
			&entity.Favorite{},
			&entity.AppState{},
			&entity.RefreshLock{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.mem.DeleteByTag(snapshotCacheTag)
	if config.RedisClient != nil {
		for _, key := range config.BrandKeys() {
			if err := config.RedisClient.Del(config.RedisCtx(), snapshotKey(key)).Err(); err != nil {
				log.Printf("catalog: redis del failed: %v", err)
			}
		}
	}
	return nil
}

func (r *CatalogRepository) invalidate(brandKey string) {
	r.mem.Delete(snapshotKey(brandKey))
	if config.RedisClient != nil {
		if err := config.RedisClient.Del(config.RedisCtx(), snapshotKey(brandKey)).Err(); err != nil {
			log.Printf("catalog: redis del failed: %v", err)
		}
	}
}
