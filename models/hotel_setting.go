package models

import "time"

// HotelSetting is a single-row table edited from the settings page.
type HotelSetting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255" json:"name"`
	TaxID        string    `gorm:"column:tax_id;size:20" json:"tax_id"`
	Address      string    `gorm:"type:text" json:"address"`
	Phone        string    `gorm:"size:50" json:"phone"`
	Email        string    `gorm:"size:150" json:"email"`
	Website      string    `gorm:"size:255" json:"website"`
	Logo         string    `gorm:"size:255" json:"logo"`
	Currency     string    `gorm:"size:3;default:PEN" json:"currency"`
	CheckInTime  string    `gorm:"size:5;default:14:00" json:"check_in_time"`
	CheckOutTime string    `gorm:"size:5;default:12:00" json:"check_out_time"`
	UpdatedAt    time.Time `json:"updated_at"`
}
