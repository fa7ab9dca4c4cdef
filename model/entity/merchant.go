package entity

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Merchant is one catalog entry for a brand's shopping portal. Rows are only
// ever written as a whole brand snapshot; Position preserves the upstream
// sort order.
type Merchant struct {
	ID               uint           `gorm:"column:id;primaryKey;autoIncrement"`
	BrandKey         string         `gorm:"column:brand_key;type:varchar(32);not null;uniqueIndex:idx_brand_merchant,priority:1;index:idx_brand_position"`
	MerchantID       string         `gorm:"column:merchant_id;type:varchar(64);not null;uniqueIndex:idx_brand_merchant,priority:2"`
	Position         int            `gorm:"column:position;not null"`
	Name             string         `gorm:"column:name;type:varchar(255);not null"`
	ClickURL         string         `gorm:"column:click_url;type:varchar(2048);not null"`
	Categories       datatypes.JSON `gorm:"column:categories"`
	RebateValue      string         `gorm:"column:rebate_value;type:varchar(32)"`
	RebateCurrency   string         `gorm:"column:rebate_currency;type:varchar(32)"`
	IsElevated       bool           `gorm:"column:is_elevated;not null;default:0"`
	OriginalValue    string         `gorm:"column:original_value;type:varchar(32)"`
	OriginalCurrency string         `gorm:"column:original_currency;type:varchar(32)"`
	BonusPercentage  float64        `gorm:"column:bonus_percentage;not null;default:0"`
	IsDirect         bool           `gorm:"column:is_direct;not null;default:0"`
	TracksMobile     bool           `gorm:"column:tracks_mobile;not null;default:0"`
	LogoURL          string         `gorm:"column:logo_url;type:varchar(2048)"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (Merchant) TableName() string {
	return "catalog_merchant"
}

// CategoryNames decodes the categories JSON column. Absent or malformed
// columns read as no categories.
func (m *Merchant) CategoryNames() []string {
	if len(m.Categories) == 0 {
		return nil
	}
	var names []string
	if err := json.Unmarshal(m.Categories, &names); err != nil {
		return nil
	}
	return names
}

// SetCategoryNames encodes names into the categories JSON column.
func (m *Merchant) SetCategoryNames(names []string) {
	if len(names) == 0 {
		m.Categories = nil
		return
	}
	data, err := json.Marshal(names)
	if err != nil {
		m.Categories = nil
		return
	}
	m.Categories = datatypes.JSON(data)
}
