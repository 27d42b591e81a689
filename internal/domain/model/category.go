package model

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	NameRw    string    `gorm:"type:varchar(255);column:name_rw" json:"name_rw"`
	ImageURL  string    `gorm:"type:text" json:"image_url"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
