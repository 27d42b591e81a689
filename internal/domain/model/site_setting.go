package model

import "time"

type SiteSetting struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SettingKey   string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"setting_key"`
	SettingValue string    `gorm:"type:text;not null" json:"setting_value"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
