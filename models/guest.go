package models

import (
	"strings"
	"time"

	"hotel-pms/pricing"
)

// Guest is validated through Info, so the guest screens and the booking
// wizard share pricing.GuestInfo's rules.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName string `json:"first_name" gorm:"size:100"`
	LastName  string `json:"last_name" gorm:"size:100"`
	Email     string `json:"email" gorm:"size:150;uniqueIndex"`
	Phone     string `json:"phone" gorm:"size:50"`

	DocumentType   string `json:"document_type" gorm:"size:30"`
	DocumentNumber string `json:"document_number" gorm:"size:50;index"`

	Nationality string `json:"nationality" gorm:"size:80"`
	Address     string `json:"address" gorm:"type:text"`
	City        string `json:"city" gorm:"size:100"`
	Country     string `json:"country" gorm:"size:80"`
}

func (g Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

func (g Guest) Info() pricing.GuestInfo {
	return pricing.GuestInfo{
		FirstName:      g.FirstName,
		LastName:       g.LastName,
		Email:          g.Email,
		Phone:          g.Phone,
		DocumentType:   g.DocumentType,
		DocumentNumber: g.DocumentNumber,
		Nationality:    g.Nationality,
		Address:        g.Address,
		City:           g.City,
		Country:        g.Country,
	}
}

// GuestFromInfo maps normalized guest details onto a new row.
func GuestFromInfo(info pricing.GuestInfo) Guest {
	info = info.Normalize()
	return Guest{
		FirstName:      info.FirstName,
		LastName:       info.LastName,
		Email:          info.Email,
		Phone:          info.Phone,
		DocumentType:   info.DocumentType,
		DocumentNumber: info.DocumentNumber,
		Nationality:    info.Nationality,
		Address:        info.Address,
		City:           info.City,
		Country:        info.Country,
	}
}
