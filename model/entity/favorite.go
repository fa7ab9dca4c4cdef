package entity

import "time"

// Favorite is the per-brand favorite flag for a merchant. Rows appear on
// first toggle; a missing row means "not favorite".
type Favorite struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	BrandKey   string    `gorm:"column:brand_key;type:varchar(32);not null;uniqueIndex:idx_fav_brand_merchant,priority:1"`
	MerchantID string    `gorm:"column:merchant_id;type:varchar(64);not null;uniqueIndex:idx_fav_brand_merchant,priority:2"`
	Flag       bool      `gorm:"column:flag;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Favorite) TableName() string {
	return "catalog_favorite"
}
