package state

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "portal.GO/model/entity"
)

const (
	keyCurrentBrand  = "current_brand"
	keyLastUpdatePfx = "last_update:"
)

type StateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get returns the value for a state key, or ("", false) if unset.
func (r *StateRepository) Get(key string) (string, bool) {
	var row entity.AppState
	err := r.db.First(&row, "key = ?", key).Error
	if err != nil {
		return "", false
	}
	return row.Value, true
}

// Set upserts a state key.
func (r *StateRepository) Set(key, value string) error {
	row := entity.AppState{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

// Delete removes a state key. Missing keys are not an error.
func (r *StateRepository) Delete(key string) error {
	err := r.db.Delete(&entity.AppState{}, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// CurrentBrand returns the selected brand key, falling back to def when no
// selection has been persisted yet.
func (r *StateRepository) CurrentBrand(def string) string {
	if v, ok := r.Get(keyCurrentBrand); ok && v != "" {
		return v
	}
	return def
}

// SetCurrentBrand persists the brand selection.
func (r *StateRepository) SetCurrentBrand(brandKey string) error {
	return r.Set(keyCurrentBrand, brandKey)
}

// LastUpdate returns the last successful refresh time for a brand.
func (r *StateRepository) LastUpdate(brandKey string) (time.Time, bool) {
	v, ok := r.Get(keyLastUpdatePfx + brandKey)
	if !ok {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}

// SetLastUpdate records the refresh time for a brand.
func (r *StateRepository) SetLastUpdate(brandKey string, t time.Time) error {
	return r.Set(keyLastUpdatePfx+brandKey, strconv.FormatInt(t.Unix(), 10))
}
