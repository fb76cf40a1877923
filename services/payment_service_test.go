package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hotel-pms/models"
	"hotel-pms/pricing"
	"hotel-pms/storage"
)

func TestPaymentServiceRecord(t *testing.T) {
	db := newTestDB(t)
	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatal(err)
	}
	svc := NewPaymentService(db, store)
	svc.now = func() time.Time { return time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC) }
	room := createRoom(t, db, "101", 2, 100)
	res := createReservation(t, db, room.ID, day(2025, 8, 10), day(2025, 8, 12), models.StatusConfirmed)
	ctx := context.Background()

	p, err := svc.Record(ctx, res.ID, PaymentInput{Amount: 40, Method: "Cash"}, nil, "desk")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if p.Method != models.MethodCash || p.RecordedBy != "desk" || !p.PaidAt.Equal(svc.now()) {
		t.Errorf("payment = %+v", p)
	}

	var reloaded models.Reservation
	db.First(&reloaded, res.ID)
	if reloaded.PaymentStatus != models.PaymentPartial {
		t.Errorf("payment status = %s, want partial", reloaded.PaymentStatus)
	}

	receipt := &Receipt{Body: strings.NewReader("%PDF"), ContentType: "application/pdf"}
	p2, err := svc.Record(ctx, res.ID, PaymentInput{Amount: 60, Method: models.MethodTransfer, Reference: "OP-123", Date: "2025-08-11"}, receipt, "desk")
	if err != nil {
		t.Fatalf("Record() with receipt error = %v", err)
	}
	if !strings.Contains(p2.ReceiptURL, "/uploads/payment-receipts/") || !strings.HasSuffix(p2.ReceiptURL, ".pdf") {
		t.Errorf("ReceiptURL = %q", p2.ReceiptURL)
	}

	db.First(&reloaded, res.ID)
	if reloaded.PaymentStatus != models.PaymentPaid {
		t.Errorf("payment status = %s, want paid", reloaded.PaymentStatus)
	}

	_, err = svc.Record(ctx, res.ID, PaymentInput{Amount: 1, Method: models.MethodCard}, nil, "desk")
	if !pricing.IsValidation(err) {
		t.Errorf("overpayment error = %v, want validation error", err)
	}

	list, err := svc.List(ctx, res.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("List() = %d, %v", len(list), err)
	}

	var history []models.ReservationHistory
	db.Where("reservation_id = ? AND action = ?", res.ID, "payment").Find(&history)
	if len(history) != 2 {
		t.Errorf("payment history rows = %d, want 2", len(history))
	}
}

func TestPaymentServiceValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(db, nil)
	room := createRoom(t, db, "101", 2, 100)
	res := createReservation(t, db, room.ID, day(2025, 8, 10), day(2025, 8, 12), models.StatusConfirmed)
	cancelled := createReservation(t, db, room.ID, day(2025, 9, 10), day(2025, 9, 12), models.StatusCancelled)
	ctx := context.Background()

	tests := []struct {
		name      string
		in        PaymentInput
		receipt   *Receipt
		wantField string
	}{
		{"zero amount", PaymentInput{Amount: 0, Method: "cash"}, nil, "amount"},
		{"bad method", PaymentInput{Amount: 10, Method: "bitcoin"}, nil, "payment_method"},
		{"bad date", PaymentInput{Amount: 10, Method: "cash", Date: "yesterday"}, nil, "date"},
		{"bad receipt", PaymentInput{Amount: 10, Method: "cash"}, &Receipt{Body: strings.NewReader("x"), ContentType: "text/html"}, "receipt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(ctx, res.ID, tt.in, tt.receipt, "")
			var verr *pricing.ValidationError
			if !errors.As(err, &verr) || !verr.Has(tt.wantField) {
				t.Errorf("Record() error = %v, want field %q", err, tt.wantField)
			}
		})
	}

	var conflict *ConflictError
	if _, err := svc.Record(ctx, cancelled.ID, PaymentInput{Amount: 10, Method: "cash"}, nil, ""); !errors.As(err, &conflict) {
		t.Errorf("Record() on cancelled = %v, want ConflictError", err)
	}
	if _, err := svc.Record(ctx, 999, PaymentInput{Amount: 10, Method: "cash"}, nil, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Record() on missing = %v, want ErrNotFound", err)
	}
	if _, err := svc.List(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("List() on missing = %v, want ErrNotFound", err)
	}
}
