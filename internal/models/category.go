package models

import "time"

type Category struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Color     string    `gorm:"type:varchar(7);not null;default:'#3b82f6'" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:CategoryID" json:"tasks,omitempty"`
}
