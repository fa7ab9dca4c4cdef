package lock

import (
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "portal.GO/model/entity"
)

// lockTTL bounds a refresh claim so a killed refresher releases the brand.
const lockTTL = 10 * time.Minute

// LockRepository implements the at-most-one-refresh-per-brand marker from
// the freshness policy. The lock row is observable by any process sharing
// the data dir; the query path only reads it, never waits on it.
type LockRepository struct {
	db *gorm.DB
}

func NewLockRepository(db *gorm.DB) *LockRepository {
	return &LockRepository{db: db}
}

// TryAcquire claims the refresh lock for a brand. Returns false when a live
// claim already exists. Expired claims are taken over in the same statement,
// so two concurrent callers resolve to exactly one winner.
func (r *LockRepository) TryAcquire(brandKey string) (bool, error) {
	now := time.Now()
	row := entity.RefreshLock{
		BrandKey:  brandKey,
		PID:       os.Getpid(),
		StartedAt: now,
		ExpiresAt: now.Add(lockTTL),
	}
	// Insert, or steal the row only if the existing claim has expired.
	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "brand_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"pid":        row.PID,
			"started_at": row.StartedAt,
			"expires_at": row.ExpiresAt,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Lt{Column: clause.Column{Table: "refresh_lock", Name: "expires_at"}, Value: now},
		}},
	}).Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Release drops the brand's lock row. Safe to call when not held.
func (r *LockRepository) Release(brandKey string) error {
	return r.db.Delete(&entity.RefreshLock{}, "brand_key = ?", brandKey).Error
}

// IsHeld reports whether a live refresh claim exists for the brand. Used by
// the query path to annotate results with an updating hint.
func (r *LockRepository) IsHeld(brandKey string) bool {
	var row entity.RefreshLock
	err := r.db.First(&row, "brand_key = ?", brandKey).Error
	if err != nil {
		return false
	}
	return row.ExpiresAt.After(time.Now())
}
