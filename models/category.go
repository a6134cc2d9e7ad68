package models

import "time"

const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"type:varchar(255)" json:"image"`
	Status      string    `gorm:"type:varchar(15);not null;default:'active'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func ValidCategoryStatus(s string) bool {
	return s == CategoryStatusActive || s == CategoryStatusInactive
}
