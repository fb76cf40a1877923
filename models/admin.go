package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a staff account. Role is carried into the login token.
type Admin struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	FullName    string         `gorm:"size:255" json:"full_name"`
	Username    string         `gorm:"uniqueIndex;size:150" json:"username"`
	Password    string         `gorm:"size:255" json:"-"`
	Role        string         `gorm:"size:50;default:receptionist" json:"role"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
