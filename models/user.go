package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Username  string    `gorm:"type:varchar(100);unique;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	Role      string    `gorm:"type:varchar(15);not null;default:'user'" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleUser
}

// CanDeleteUser reports whether the acting admin may delete target.
// Admin accounts are never deletable and nobody may delete themself.
func CanDeleteUser(target *User, currentUserID uint) bool {
	if target.Role == RoleAdmin {
		return false
	}
	if target.ID == currentUserID {
		return false
	}
	return true
}

// CanEditUserRole reports whether the acting admin may change target's role.
// An admin can never change their own role, so at least one admin remains.
func CanEditUserRole(target *User, currentUserID uint) bool {
	return target.ID != currentUserID
}
