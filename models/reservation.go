package models

import (
	"time"

	"gorm.io/datatypes"

	"hotel-pms/pricing"
)

type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusCheckedIn  ReservationStatus = "checked_in"
	StatusCheckedOut ReservationStatus = "checked_out"
	StatusCancelled  ReservationStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReferenceCode string `gorm:"column:reference_code;size:32;uniqueIndex" json:"reference_code"`

	RoomID  uint `gorm:"index" json:"room_id"`
	GuestID uint `gorm:"index" json:"guest_id"`

	CheckIn  time.Time `gorm:"column:check_in;index" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"check_out"`

	Adults         int `gorm:"default:1" json:"adults"`
	Children       int `gorm:"default:0" json:"children"`
	NumberOfGuests int `json:"number_of_guests"`

	AdditionalServices datatypes.JSONSlice[pricing.Service] `gorm:"column:additional_services" json:"additional_services"`

	Nights           int     `json:"nights"`
	RoomRate         float64 `json:"room_rate"`
	ServicesPerNight float64 `json:"services_per_night"`
	Subtotal         float64 `json:"subtotal"`
	Tax              float64 `json:"tax"`
	ServiceFee       float64 `json:"service_fee"`
	TotalAmount      float64 `json:"total_amount"`

	Status        ReservationStatus `gorm:"type:varchar(32);index" json:"status"`
	PaymentStatus PaymentStatus     `gorm:"type:varchar(32);default:pending" json:"payment_status"`
	Notes         string            `gorm:"type:text" json:"notes,omitempty"`

	CheckedInAt        *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt       *time.Time `json:"checked_out_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason,omitempty"`

	Room     Room                 `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Guest    Guest                `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	History  []ReservationHistory `gorm:"foreignKey:ReservationID" json:"history,omitempty"`
	Payments []Payment            `gorm:"foreignKey:ReservationID" json:"payments,omitempty"`
}

// ApplyQuote copies a price breakdown onto the reservation.
func (r *Reservation) ApplyQuote(q pricing.Quote) {
	r.Nights = q.Nights
	r.RoomRate = q.RoomRate
	r.ServicesPerNight = q.ServicesPerNight
	r.Subtotal = q.Subtotal
	r.Tax = q.Tax
	r.ServiceFee = q.ServiceFee
	r.TotalAmount = q.Total
}

func (r Reservation) Stay() pricing.Stay {
	return pricing.Stay{CheckIn: r.CheckIn, CheckOut: r.CheckOut, Adults: r.Adults, Children: r.Children}
}

type ReservationHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReservationID uint      `gorm:"index" json:"reservation_id"`
	Action        string    `gorm:"size:50" json:"action"`
	Details       string    `gorm:"type:text" json:"details"`
	PerformedBy   string    `gorm:"size:150" json:"performed_by"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ReservationHistory) TableName() string { return "reservation_history" }
