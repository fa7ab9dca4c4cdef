package entity

import "time"

// AppState is a small key/value table for persisted workflow state: the
// current brand selection and per-brand last_update timestamps.
type AppState struct {
	Key       string    `gorm:"column:key;type:varchar(64);primaryKey"`
	Value     string    `gorm:"column:value;type:varchar(255);not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AppState) TableName() string {
	return "app_state"
}
