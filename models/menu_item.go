package models

import "time"

const (
	MenuItemStatusAvailable   = "available"
	MenuItemStatusUnavailable = "unavailable"
)

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string    `gorm:"type:varchar(255)" json:"image"`
	Status      string    `gorm:"type:varchar(15);not null;default:'available'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func ValidMenuItemStatus(s string) bool {
	return s == MenuItemStatusAvailable || s == MenuItemStatusUnavailable
}
