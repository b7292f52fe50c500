package model

import "time"

// Branch is a physical store location holding inventory.
type Branch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Location  string    `gorm:"type:varchar(200);not null" json:"location" validate:"required"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
