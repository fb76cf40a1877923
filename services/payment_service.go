package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/pricing"
	"hotel-pms/storage"
	"hotel-pms/utils"
)

type PaymentService struct {
	DB    *gorm.DB
	Store storage.Store

	now func() time.Time
}

func NewPaymentService(db *gorm.DB, store storage.Store) *PaymentService {
	return &PaymentService{DB: db, Store: store, now: time.Now}
}

type PaymentInput struct {
	Amount    float64              `json:"amount" form:"amount"`
	Method    models.PaymentMethod `json:"payment_method" form:"payment_method"`
	Reference string               `json:"reference" form:"reference"`
	Date      string               `json:"date" form:"date"`
}

// Receipt is an optional proof-of-payment file.
type Receipt struct {
	Body        io.Reader
	ContentType string
}

func (in PaymentInput) paidAt(now time.Time) (time.Time, error) {
	if strings.TrimSpace(in.Date) == "" {
		return now.UTC(), nil
	}
	return utils.ParseDate(in.Date)
}

func (s *PaymentService) List(ctx context.Context, reservationID uint) ([]models.Payment, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Reservation{}).Where("id = ?", reservationID).Count(&n).Error; err != nil {
		return nil, pricing.Persistence("get reservation", err)
	}
	if n == 0 {
		return nil, notFound("reservation", reservationID)
	}

	var payments []models.Payment
	if err := s.DB.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("paid_at ASC, id ASC").
		Find(&payments).Error; err != nil {
		return nil, pricing.Persistence("list payments", err)
	}
	return payments, nil
}

// Record stores a payment against a reservation and refreshes its payment
// status. A receipt, when given, is uploaded to the payment-receipts bucket.
func (s *PaymentService) Record(ctx context.Context, reservationID uint, in PaymentInput, receipt *Receipt, performedBy string) (*models.Payment, error) {
	verr := &pricing.ValidationError{}
	if in.Amount <= 0 {
		verr.Add("amount", "must be greater than zero")
	}
	in.Method = models.PaymentMethod(strings.ToLower(strings.TrimSpace(string(in.Method))))
	if !in.Method.Valid() {
		verr.Add("payment_method", "must be cash, card or transfer")
	}
	paidAt, err := in.paidAt(s.now())
	if err != nil {
		verr.Add("date", err.Error())
	}
	var receiptExt string
	if receipt != nil {
		ext, ok := storage.ExtensionFor(receipt.ContentType)
		if !ok {
			verr.Add("receipt", "must be a jpeg, png, webp or pdf file")
		}
		receiptExt = ext
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	var res models.Reservation
	if err := s.DB.WithContext(ctx).First(&res, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reservation", reservationID)
		}
		return nil, pricing.Persistence("get reservation", err)
	}
	if res.Status == models.StatusCancelled {
		return nil, &ConflictError{Message: "cannot record a payment on a cancelled reservation"}
	}

	payment := models.Payment{
		ReservationID: reservationID,
		Amount:        in.Amount,
		Method:        in.Method,
		Reference:     strings.TrimSpace(in.Reference),
		PaidAt:        paidAt,
		RecordedBy:    performedBy,
	}

	var receiptKey string
	if receipt != nil {
		if s.Store == nil {
			return nil, errors.New("receipt storage is not configured")
		}
		receiptKey = storage.ObjectKey(res.ReferenceCode, receiptExt, s.now())
		url, err := s.Store.Put(ctx, storage.PaymentReceipts, receiptKey, receipt.Body, receipt.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload receipt: %w", err)
		}
		payment.ReceiptURL = url
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		paid, err := paidTotal(tx, reservationID)
		if err != nil {
			return err
		}
		if paid+in.Amount > res.TotalAmount+0.005 {
			return pricing.NewValidationError("amount", fmt.Sprintf("exceeds the pending balance of %.2f", res.TotalAmount-paid))
		}

		if err := tx.Create(&payment).Error; err != nil {
			if utils.IsForeignKeyError(err) {
				return notFound("reservation", reservationID)
			}
			return pricing.Persistence("create payment", err)
		}
		if err := refreshPaymentStatus(tx, reservationID, res.TotalAmount); err != nil {
			return err
		}
		details := fmt.Sprintf("Payment of %.2f (%s)", payment.Amount, payment.Method)
		if payment.Reference != "" {
			details += " ref " + payment.Reference
		}
		return addHistory(tx, reservationID, "payment", details, performedBy)
	})
	if err != nil {
		if receiptKey != "" {
			if delErr := s.Store.Delete(context.WithoutCancel(ctx), storage.PaymentReceipts, receiptKey); delErr != nil {
				log.Printf("⚠️ failed to remove orphan receipt %s: %v", receiptKey, delErr)
			}
		}
		return nil, err
	}

	log.Printf("✅ Payment %d recorded for reservation %d", payment.ID, reservationID)
	return &payment, nil
}

func paidTotal(tx *gorm.DB, reservationID uint) (float64, error) {
	var paid float64
	if err := tx.Model(&models.Payment{}).
		Where("reservation_id = ?", reservationID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return 0, pricing.Persistence("sum payments", err)
	}
	return paid, nil
}

// refreshPaymentStatus re-derives payment_status from the payments on file.
func refreshPaymentStatus(tx *gorm.DB, reservationID uint, total float64) error {
	paid, err := paidTotal(tx, reservationID)
	if err != nil {
		return err
	}
	status := models.PaymentStatusFor(total, paid)
	if err := tx.Model(&models.Reservation{}).Where("id = ?", reservationID).Update("payment_status", status).Error; err != nil {
		return pricing.Persistence("update payment status", err)
	}
	return nil
}
