package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-pms/pricing"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomCleaning    RoomStatus = "cleaning"
	RoomBlocked     RoomStatus = "blocked"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning, RoomBlocked:
		return true
	}
	return false
}

// Bookable is false for rooms taken out of service; occupancy is decided by reservations.
func (s RoomStatus) Bookable() bool {
	return s != RoomMaintenance && s != RoomBlocked
}

type Room struct {
	gorm.Model

	RoomNumber string     `json:"room_number" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Type       string     `json:"type" gorm:"type:varchar(100)"`
	Floor      string     `json:"floor" gorm:"type:varchar(10)"`
	Status     RoomStatus `json:"status" gorm:"type:varchar(32);index;default:available"`
	Capacity   int        `json:"max_occupancy" gorm:"column:max_occupancy"`

	// Rate is used for per_room pricing, RatesPerPerson for per_person; never both.
	RateMode       pricing.RateMode             `json:"rate_type" gorm:"column:rate_type;type:varchar(16);default:per_room"`
	Rate           float64                      `json:"rate"`
	RatesPerPerson datatypes.JSONSlice[float64] `json:"rates_per_person" gorm:"column:rates_per_person"`

	Amenities   datatypes.JSONSlice[string] `json:"amenities"`
	Photos      datatypes.JSONSlice[string] `json:"photos"`
	Description string                      `json:"description" gorm:"type:text"`
}

// PricingRate converts the stored columns into a rate variant.
func (r Room) PricingRate() (pricing.Rate, error) {
	return pricing.NewRate(r.RateMode, r.Rate, r.RatesPerPerson, r.Capacity)
}

func (r Room) Ref() (pricing.RoomRef, error) {
	rate, err := r.PricingRate()
	if err != nil {
		return pricing.RoomRef{}, err
	}
	return pricing.RoomRef{
		ID:       r.ID,
		Number:   r.RoomNumber,
		Type:     r.Type,
		Capacity: r.Capacity,
		Rate:     rate,
	}, nil
}
