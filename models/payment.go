package models

import "time"

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodCard || m == MethodTransfer
}

type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	ReservationID uint          `gorm:"index" json:"reservation_id"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `gorm:"column:payment_method;size:20" json:"payment_method"`
	Reference     string        `gorm:"size:100" json:"reference,omitempty"`
	ReceiptURL    string        `gorm:"size:500" json:"receipt_url,omitempty"`
	PaidAt        time.Time     `json:"date"`
	RecordedBy    string        `gorm:"size:150" json:"recorded_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// PaymentStatusFor derives the payment status of a reservation total from the amount paid.
func PaymentStatusFor(total, paid float64) PaymentStatus {
	switch {
	case paid <= 0:
		return PaymentPending
	case paid+0.005 < total:
		return PaymentPartial
	}
	return PaymentPaid
}

// PendingAmount is what remains to be paid; it is negative when overpaid.
func PendingAmount(total float64, payments []Payment) float64 {
	paid := 0.0
	for _, p := range payments {
		paid += p.Amount
	}
	return total - paid
}
