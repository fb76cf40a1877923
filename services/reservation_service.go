package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-pms/models"
	"hotel-pms/pricing"
	"hotel-pms/utils"
)

// ReservationService runs the booking wizard and the reservation lifecycle.
type ReservationService struct {
	DB      *gorm.DB
	Rooms   *RoomService
	Guests  *GuestService
	Catalog *CatalogService

	now func() time.Time
}

func NewReservationService(db *gorm.DB, rooms *RoomService, guests *GuestService, catalog *CatalogService) *ReservationService {
	return &ReservationService{DB: db, Rooms: rooms, Guests: guests, Catalog: catalog, now: time.Now}
}

// ---------------------------
// Requests / results
// ---------------------------

type StayRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
}

// Stay parses the request on top of pricing.DefaultStay(now): a blank
// check-in is today, a blank check-out is the day after check-in and zero
// adults means the default two.
func (r StayRequest) Stay(now time.Time) (pricing.Stay, error) {
	stay := pricing.DefaultStay(now)
	verr := &pricing.ValidationError{}
	if strings.TrimSpace(r.CheckIn) != "" {
		in, err := utils.ParseDate(r.CheckIn)
		if err != nil {
			verr.Add("check_in", err.Error())
		}
		stay.CheckIn = in
	}
	if strings.TrimSpace(r.CheckOut) != "" {
		out, err := utils.ParseDate(r.CheckOut)
		if err != nil {
			verr.Add("check_out", err.Error())
		}
		stay.CheckOut = out
	} else if !stay.CheckIn.IsZero() {
		stay.CheckOut = stay.CheckIn.AddDate(0, 0, 1)
	}
	if err := verr.Err(); err != nil {
		return pricing.Stay{}, err
	}
	if r.Adults != 0 {
		stay.Adults = r.Adults
	}
	stay.Children = r.Children
	return stay, nil
}

type QuoteRequest struct {
	StayRequest
	RoomID     uint     `json:"room_id"`
	ServiceIDs []string `json:"service_ids"`
}

type ConfirmRequest struct {
	QuoteRequest
	Guest pricing.GuestInfo `json:"guest"`
	Notes string            `json:"notes"`
	// Status is "confirmed" (default) or "pending" for a tentative hold.
	Status models.ReservationStatus `json:"status"`
}

type AvailableRoom struct {
	models.Room
	NightlyRate float64 `json:"nightly_rate"`
	Fits        bool    `json:"fits"`
}

type AvailabilityResult struct {
	Stay        pricing.Stay    `json:"stay"`
	Nights      int             `json:"nights"`
	MaxCapacity int             `json:"max_capacity"`
	MaxAdults   int             `json:"max_adults"`
	MaxChildren int             `json:"max_children"`
	Rooms       []AvailableRoom `json:"rooms"`
	NextStep    string          `json:"next_step"`
}

type QuoteResult struct {
	Stay      pricing.Stay      `json:"stay"`
	Room      models.Room       `json:"room"`
	Services  []pricing.Service `json:"services"`
	Quote     pricing.Quote     `json:"quote"`
	Available bool              `json:"available"`
	NextStep  string            `json:"next_step"`
}

type ReservationFilter struct {
	Status string
	Query  string
}

type ReservationDetail struct {
	*models.Reservation
	PaidAmount    float64 `json:"paid_amount"`
	PendingAmount float64 `json:"pending_amount"`
}

// ---------------------------
// Wizard
// ---------------------------

// Availability lists the rooms free for the stay and re-clamps the guest
// selection to the largest of them, so the selector never offers more
// guests than any free room can hold.
func (s *ReservationService) Availability(ctx context.Context, req StayRequest) (*AvailabilityResult, error) {
	stay, err := req.Stay(s.now())
	if err != nil {
		return nil, err
	}
	if stay.Nights() < 1 {
		return nil, pricing.NewValidationError("check_out", "must be after check-in")
	}

	ceiling, rooms, err := s.Rooms.AvailabilityCeiling(ctx, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return nil, err
	}

	stay = stay.Clamp(ceiling)
	maxAdults, maxChildren := pricing.Limits(stay.Adults, stay.Children, ceiling)

	result := &AvailabilityResult{
		Stay:        stay,
		Nights:      stay.Nights(),
		MaxCapacity: ceiling,
		MaxAdults:   maxAdults,
		MaxChildren: maxChildren,
		Rooms:       make([]AvailableRoom, 0, len(rooms)),
		NextStep:    pricing.NewDraft(stay).Step().String(),
	}
	for _, room := range rooms {
		entry := AvailableRoom{Room: room, Fits: stay.Guests() <= room.Capacity}
		if rate, err := room.PricingRate(); err == nil {
			entry.NightlyRate = pricing.Resolve(rate, stay.Guests())
		} else {
			log.Printf("⚠️ Room %s has an invalid rate: %v", room.RoomNumber, err)
		}
		result.Rooms = append(result.Rooms, entry)
	}
	return result, nil
}

// BuildDraft assembles a draft from a request. The room and services are
// loaded from the store so prices never come from the client.
func (s *ReservationService) BuildDraft(ctx context.Context, req QuoteRequest) (pricing.Draft, *models.Room, error) {
	stay, err := req.Stay(s.now())
	if err != nil {
		return pricing.Draft{}, nil, err
	}
	draft := pricing.NewDraft(stay)

	var room *models.Room
	if req.RoomID != 0 {
		room, err = s.Rooms.Get(ctx, req.RoomID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return pricing.Draft{}, nil, pricing.NewValidationError("room_id", fmt.Sprintf("room %d does not exist", req.RoomID))
			}
			return pricing.Draft{}, nil, err
		}
		ref, err := room.Ref()
		if err != nil {
			return pricing.Draft{}, nil, err
		}
		draft = draft.WithRoom(ref)
	}

	sel, err := s.Catalog.Resolve(ctx, req.ServiceIDs)
	if err != nil {
		return pricing.Draft{}, nil, err
	}
	return draft.WithServices(sel), room, nil
}

// Quote prices a stay in a room without persisting anything.
func (s *ReservationService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	draft, room, err := s.BuildDraft(ctx, req)
	if err != nil {
		return nil, err
	}
	q, err := draft.Quote()
	if err != nil {
		return nil, err
	}

	free, err := roomIsFree(s.DB.WithContext(ctx), *room, draft.Stay().CheckIn, draft.Stay().CheckOut, 0)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{
		Stay:      draft.Stay(),
		Room:      *room,
		Services:  draft.Services().Items(),
		Quote:     q,
		Available: free,
		NextStep:  draft.Step().String(),
	}, nil
}

// Book validates the complete draft and persists it in one transaction:
// overlap re-check, guest upsert by email, reservation and history rows.
func (s *ReservationService) Book(ctx context.Context, req ConfirmRequest, performedBy string) (*ReservationDetail, error) {
	status := req.Status
	if status == "" {
		status = models.StatusConfirmed
	}
	if status != models.StatusConfirmed && status != models.StatusPending {
		return nil, pricing.NewValidationError("status", "must be confirmed or pending")
	}

	draft, room, err := s.BuildDraft(ctx, req.QuoteRequest)
	if err != nil {
		return nil, err
	}
	draft = draft.WithGuest(req.Guest)
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	stay := draft.Stay()

	var (
		reservationID uint
		total         float64
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, room.ID).Error; err != nil {
			return pricing.Persistence("reload room", err)
		}
		if !current.Status.Bookable() {
			return &pricing.AvailabilityError{RoomID: current.ID, Reason: fmt.Sprintf("room is %s", current.Status)}
		}
		free, err := roomIsFree(tx, current, stay.CheckIn, stay.CheckOut, 0)
		if err != nil {
			return err
		}
		if !free {
			return &pricing.AvailabilityError{RoomID: current.ID, Reason: "already booked for the selected dates"}
		}

		// price from the row read inside the transaction, not the one BuildDraft loaded
		ref, err := current.Ref()
		if err != nil {
			return err
		}
		q, err := draft.WithRoom(ref).Quote()
		if err != nil {
			return err
		}
		total = q.Total

		guest, err := s.Guests.Upsert(tx, req.Guest)
		if err != nil {
			return err
		}

		code, err := uniqueReferenceCode(tx)
		if err != nil {
			return err
		}

		res := models.Reservation{
			ReferenceCode:      code,
			RoomID:             current.ID,
			GuestID:            guest.ID,
			CheckIn:            stay.CheckIn,
			CheckOut:           stay.CheckOut,
			Adults:             stay.Adults,
			Children:           stay.Children,
			NumberOfGuests:     stay.Guests(),
			AdditionalServices: draft.Services().Items(),
			Status:             status,
			PaymentStatus:      models.PaymentPending,
			Notes:              strings.TrimSpace(req.Notes),
		}
		res.ApplyQuote(q)

		if err := tx.Create(&res).Error; err != nil {
			if utils.IsForeignKeyError(err) {
				return notFound("room", current.ID)
			}
			return pricing.Persistence("create reservation", err)
		}
		reservationID = res.ID

		details := fmt.Sprintf("Reservation %s created for room %s, %d night(s), total %.2f", code, current.RoomNumber, q.Nights, q.Total)
		return addHistory(tx, res.ID, "created", details, performedBy)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Reservation %d booked (room %d, %s → %s, total %.2f)", reservationID, room.ID,
		stay.CheckIn.Format(utils.DateLayout), stay.CheckOut.Format(utils.DateLayout), total)
	return s.Get(ctx, reservationID)
}

// uniqueReferenceCode checks candidates before inserting so a collision
// never aborts the surrounding transaction.
func uniqueReferenceCode(tx *gorm.DB) (string, error) {
	const maxRetries = 5
	for attempt := 0; attempt < maxRetries; attempt++ {
		code, err := utils.GenerateReferenceCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate reference code: %w", err)
		}
		var n int64
		if err := tx.Model(&models.Reservation{}).Where("reference_code = ?", code).Count(&n).Error; err != nil {
			return "", pricing.Persistence("check reference code", err)
		}
		if n == 0 {
			return code, nil
		}
		log.Printf("reference code collision (attempt %d) - retrying", attempt+1)
	}
	return "", errors.New("failed to generate a unique reference code")
}

func addHistory(tx *gorm.DB, reservationID uint, action, details, performedBy string) error {
	entry := models.ReservationHistory{
		ReservationID: reservationID,
		Action:        action,
		Details:       details,
		PerformedBy:   performedBy,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return pricing.Persistence("write reservation history", err)
	}
	return nil
}

// ---------------------------
// Lifecycle
// ---------------------------

// transition loads the reservation, checks the state machine, applies the
// status-specific changes and writes a history row, all in one transaction.
func (s *ReservationService) transition(
	ctx context.Context,
	id uint,
	to models.ReservationStatus,
	performedBy string,
	apply func(tx *gorm.DB, res *models.Reservation, updates map[string]interface{}) (string, error),
) (*ReservationDetail, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation", id)
			}
			return pricing.Persistence("get reservation", err)
		}

		if !models.CanTransition(res.Status, to) {
			return &TransitionError{From: res.Status, To: to}
		}

		updates := map[string]interface{}{"status": to}
		details, err := apply(tx, &res, updates)
		if err != nil {
			return err
		}

		if err := tx.Model(&res).Updates(updates).Error; err != nil {
			return pricing.Persistence("update reservation", err)
		}
		return addHistory(tx, res.ID, models.HistoryAction(to), details, performedBy)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Reservation %d → %s", id, to)
	return s.Get(ctx, id)
}

func setRoomStatus(tx *gorm.DB, roomID uint, status models.RoomStatus) error {
	if err := tx.Model(&models.Room{}).Where("id = ?", roomID).Update("status", status).Error; err != nil {
		return pricing.Persistence("update room status", err)
	}
	return nil
}

func (s *ReservationService) Confirm(ctx context.Context, id uint, performedBy string) (*ReservationDetail, error) {
	return s.transition(ctx, id, models.StatusConfirmed, performedBy,
		func(tx *gorm.DB, res *models.Reservation, _ map[string]interface{}) (string, error) {
			return "Reservation confirmed", nil
		})
}

// CheckIn marks the guest as arrived and the room as occupied.
func (s *ReservationService) CheckIn(ctx context.Context, id uint, performedBy string) (*ReservationDetail, error) {
	return s.transition(ctx, id, models.StatusCheckedIn, performedBy,
		func(tx *gorm.DB, res *models.Reservation, updates map[string]interface{}) (string, error) {
			updates["checked_in_at"] = s.now().UTC()
			if err := setRoomStatus(tx, res.RoomID, models.RoomOccupied); err != nil {
				return "", err
			}
			return "Guest checked in", nil
		})
}

// CheckOut closes the stay and sends the room to cleaning.
func (s *ReservationService) CheckOut(ctx context.Context, id uint, performedBy string) (*ReservationDetail, error) {
	return s.transition(ctx, id, models.StatusCheckedOut, performedBy,
		func(tx *gorm.DB, res *models.Reservation, updates map[string]interface{}) (string, error) {
			updates["checked_out_at"] = s.now().UTC()
			if err := setRoomStatus(tx, res.RoomID, models.RoomCleaning); err != nil {
				return "", err
			}
			return "Guest checked out", nil
		})
}

// Cancel requires a reason. The room status is left alone: the dates stop
// being blocked as soon as the reservation is no longer active.
func (s *ReservationService) Cancel(ctx context.Context, id uint, reason, performedBy string) (*ReservationDetail, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, pricing.NewValidationError("cancellation_reason", "is required")
	}
	return s.transition(ctx, id, models.StatusCancelled, performedBy,
		func(tx *gorm.DB, res *models.Reservation, updates map[string]interface{}) (string, error) {
			updates["cancelled_at"] = s.now().UTC()
			updates["cancellation_reason"] = reason
			return "Cancelled: " + reason, nil
		})
}

// ChangeRoom moves an active reservation to another room free for the same
// dates and re-prices it with that room's rate.
func (s *ReservationService) ChangeRoom(ctx context.Context, id, roomID uint, performedBy string) (*ReservationDetail, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.Preload("Room").First(&res, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation", id)
			}
			return pricing.Persistence("get reservation", err)
		}
		if !res.Status.Active() {
			return &ConflictError{Message: fmt.Sprintf("reservation is %s; only active reservations can change room", res.Status)}
		}
		if res.RoomID == roomID {
			return pricing.NewValidationError("room_id", "reservation is already in this room")
		}

		var target models.Room
		if err := tx.First(&target, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pricing.NewValidationError("room_id", fmt.Sprintf("room %d does not exist", roomID))
			}
			return pricing.Persistence("get room", err)
		}
		if !target.Status.Bookable() {
			return &pricing.AvailabilityError{RoomID: target.ID, Reason: fmt.Sprintf("room is %s", target.Status)}
		}

		ref, err := target.Ref()
		if err != nil {
			return err
		}
		draft := pricing.NewDraft(res.Stay()).
			WithRoom(ref).
			WithServices(pricing.NewSelection(res.AdditionalServices...))
		q, err := draft.Quote()
		if err != nil {
			return err
		}

		free, err := roomIsFree(tx, target, res.CheckIn, res.CheckOut, res.ID)
		if err != nil {
			return err
		}
		if !free {
			return &pricing.AvailabilityError{RoomID: target.ID, Reason: "not free for the reservation dates"}
		}

		if res.Status == models.StatusCheckedIn {
			if err := setRoomStatus(tx, res.RoomID, models.RoomCleaning); err != nil {
				return err
			}
			if err := setRoomStatus(tx, target.ID, models.RoomOccupied); err != nil {
				return err
			}
		}

		oldNumber := res.Room.RoomNumber
		res.RoomID = target.ID
		res.ApplyQuote(q)
		updates := map[string]interface{}{
			"room_id":            res.RoomID,
			"room_rate":          res.RoomRate,
			"services_per_night": res.ServicesPerNight,
			"subtotal":           res.Subtotal,
			"tax":                res.Tax,
			"service_fee":        res.ServiceFee,
			"total_amount":       res.TotalAmount,
		}
		if err := tx.Model(&models.Reservation{}).Where("id = ?", res.ID).Updates(updates).Error; err != nil {
			return pricing.Persistence("update reservation", err)
		}
		if err := refreshPaymentStatus(tx, res.ID, res.TotalAmount); err != nil {
			return err
		}

		details := fmt.Sprintf("Room changed from %s to %s, new total %.2f", oldNumber, target.RoomNumber, q.Total)
		return addHistory(tx, res.ID, "room_change", details, performedBy)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// ---------------------------
// Queries
// ---------------------------

// List returns reservations, newest stays first. Query matches the reference
// code, the guest's name or email and the room number.
func (s *ReservationService) List(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	db := s.DB.WithContext(ctx)
	q := db.Preload("Room").Preload("Guest").Order("check_in DESC, id DESC")

	if status := strings.TrimSpace(f.Status); status != "" {
		if !models.ReservationStatus(status).Valid() {
			return nil, pricing.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
		}
		q = q.Where("status = ?", status)
	}

	if text := strings.ToLower(strings.TrimSpace(f.Query)); text != "" {
		like := "%" + text + "%"
		guests := db.Model(&models.Guest{}).Select("id").
			Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
		rooms := db.Model(&models.Room{}).Select("id").Where("LOWER(room_number) LIKE ?", like)
		q = q.Where(
			db.Where("LOWER(reference_code) LIKE ?", like).
				Or("guest_id IN (?)", guests).
				Or("room_id IN (?)", rooms),
		)
	}

	var list []models.Reservation
	if err := q.Find(&list).Error; err != nil {
		return nil, pricing.Persistence("list reservations", err)
	}
	return list, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*ReservationDetail, error) {
	var res models.Reservation
	err := s.DB.WithContext(ctx).
		Preload("Room").
		Preload("Guest").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC, id ASC") }).
		First(&res, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reservation", id)
		}
		return nil, pricing.Persistence("get reservation", err)
	}

	pending := models.PendingAmount(res.TotalAmount, res.Payments)
	return &ReservationDetail{
		Reservation:   &res,
		PaidAmount:    res.TotalAmount - pending,
		PendingAmount: pending,
	}, nil
}

type CalendarEntry struct {
	ID            uint                     `json:"id"`
	ReferenceCode string                   `json:"reference_code"`
	GuestName     string                   `json:"guest_name"`
	CheckIn       time.Time                `json:"check_in"`
	CheckOut      time.Time                `json:"check_out"`
	Status        models.ReservationStatus `json:"status"`
}

type CalendarRow struct {
	Room         models.Room     `json:"room"`
	Reservations []CalendarEntry `json:"reservations"`
}

// Calendar lists every room with the non-cancelled reservations that
// overlap [from, to).
func (s *ReservationService) Calendar(ctx context.Context, from, to time.Time) ([]CalendarRow, error) {
	from, to = pricing.Day(from), pricing.Day(to)
	if !to.After(from) {
		return nil, pricing.NewValidationError("to", "must be after from")
	}
	if to.Sub(from) > 93*24*time.Hour {
		return nil, pricing.NewValidationError("to", "window must not exceed 93 days")
	}

	db := s.DB.WithContext(ctx)
	var rooms []models.Room
	if err := db.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, pricing.Persistence("list rooms", err)
	}

	var list []models.Reservation
	err := db.Preload("Guest").
		Where("status <> ?", models.StatusCancelled).
		Where("check_in < ? AND check_out > ?", to, from).
		Order("check_in ASC").
		Find(&list).Error
	if err != nil {
		return nil, pricing.Persistence("list calendar reservations", err)
	}

	byRoom := make(map[uint][]CalendarEntry, len(rooms))
	for _, r := range list {
		byRoom[r.RoomID] = append(byRoom[r.RoomID], CalendarEntry{
			ID:            r.ID,
			ReferenceCode: r.ReferenceCode,
			GuestName:     r.Guest.FullName(),
			CheckIn:       r.CheckIn,
			CheckOut:      r.CheckOut,
			Status:        r.Status,
		})
	}

	rows := make([]CalendarRow, 0, len(rooms))
	for _, room := range rooms {
		entries := byRoom[room.ID]
		if entries == nil {
			entries = []CalendarEntry{}
		}
		rows = append(rows, CalendarRow{Room: room, Reservations: entries})
	}
	return rows, nil
}
