package entity

import "time"

// RefreshLock marks an in-flight catalog refresh for a brand. At most one
// row per brand exists; ExpiresAt bounds the claim so a killed refresher
// cannot wedge the brand forever.
type RefreshLock struct {
	BrandKey  string    `gorm:"column:brand_key;type:varchar(32);primaryKey"`
	PID       int       `gorm:"column:pid;not null"`
	StartedAt time.Time `gorm:"column:started_at;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
}

func (RefreshLock) TableName() string {
	return "refresh_lock"
}
