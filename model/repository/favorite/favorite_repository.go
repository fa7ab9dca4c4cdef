package favorite

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "portal.GO/model/entity"
)

// ErrNotFound is returned when a favorite toggle cannot resolve a merchant.
var ErrNotFound = errors.New("store not found")

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Map returns the favorite flags for a brand keyed by merchant id. Only
// merchants that have ever been toggled appear.
func (r *FavoriteRepository) Map(brandKey string) (map[string]bool, error) {
	var rows []entity.Favorite
	if err := r.db.Where("brand_key = ?", brandKey).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		out[row.MerchantID] = row.Flag
	}
	return out, nil
}

// IsFavorite reports the current flag for one merchant.
func (r *FavoriteRepository) IsFavorite(brandKey, merchantID string) bool {
	var row entity.Favorite
	err := r.db.First(&row, "brand_key = ? AND merchant_id = ?", brandKey, merchantID).Error
	if err != nil {
		return false
	}
	return row.Flag
}

// Toggle flips the favorite flag for a merchant and persists it immediately,
// returning the new state. First toggle of an unseen merchant creates the
// row as favorite.
func (r *FavoriteRepository) Toggle(brandKey, merchantID string) (bool, error) {
	newState := !r.IsFavorite(brandKey, merchantID)
	row := entity.Favorite{BrandKey: brandKey, MerchantID: merchantID, Flag: newState}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "brand_key"}, {Name: "merchant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"flag", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return false, err
	}
	return newState, nil
}

// ToggleByURL resolves a merchant by exact click URL within the brand's
// snapshot and toggles it. An unknown URL is ErrNotFound; no dangling
// favorite row is created.
func (r *FavoriteRepository) ToggleByURL(brandKey, clickURL string) (*entity.Merchant, bool, error) {
	var m entity.Merchant
	err := r.db.First(&m, "brand_key = ? AND click_url = ?", brandKey, clickURL).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("%w: %s", ErrNotFound, clickURL)
		}
		return nil, false, err
	}
	state, err := r.Toggle(brandKey, m.MerchantID)
	if err != nil {
		return nil, false, err
	}
	return &m, state, nil
}
