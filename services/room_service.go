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

type RoomService struct {
	DB    *gorm.DB
	Store storage.Store
}

func NewRoomService(db *gorm.DB, store storage.Store) *RoomService {
	return &RoomService{DB: db, Store: store}
}

// RoomInput is the writable part of a room.
type RoomInput struct {
	RoomNumber     string            `json:"room_number"`
	Type           string            `json:"type"`
	Floor          string            `json:"floor"`
	Status         models.RoomStatus `json:"status"`
	Capacity       int               `json:"max_occupancy"`
	RateMode       string            `json:"rate_type"`
	Rate           float64           `json:"rate"`
	RatesPerPerson []float64         `json:"rates_per_person"`
	Amenities      []string          `json:"amenities"`
	Photos         []string          `json:"photos"`
	Description    string            `json:"description"`
}

// apply validates the input and copies it onto room. Every problem is
// reported at once.
func (in RoomInput) apply(room *models.Room) error {
	verr := &pricing.ValidationError{}

	number := strings.TrimSpace(in.RoomNumber)
	if number == "" {
		verr.Add("room_number", "is required")
	}
	if in.Capacity < 1 {
		verr.Add("max_occupancy", "must be at least 1")
	}

	status := in.Status
	if status == "" {
		status = models.RoomAvailable
	}
	if !status.Valid() {
		verr.Add("status", fmt.Sprintf("unknown status %q", in.Status))
	}

	amenities := make([]string, 0, len(in.Amenities))
	seen := map[string]bool{}
	for _, a := range in.Amenities {
		a = strings.ToLower(strings.TrimSpace(a))
		if seen[a] {
			continue
		}
		if !models.IsKnownAmenity(a) {
			verr.Add("amenities", fmt.Sprintf("unknown amenity %q", a))
			continue
		}
		seen[a] = true
		amenities = append(amenities, a)
	}

	mode, err := pricing.ParseRateMode(in.RateMode)
	if err != nil {
		verr.Add("rate_type", err.Error())
	} else if in.Capacity >= 1 {
		if _, err := pricing.NewRate(mode, in.Rate, in.RatesPerPerson, in.Capacity); err != nil {
			var rateErr *pricing.ValidationError
			if errors.As(err, &rateErr) {
				verr.Fields = append(verr.Fields, rateErr.Fields...)
			}
		}
	}

	if err := verr.Err(); err != nil {
		return err
	}

	room.RoomNumber = number
	room.Type = strings.TrimSpace(in.Type)
	room.Floor = strings.TrimSpace(in.Floor)
	room.Status = status
	room.Capacity = in.Capacity
	room.RateMode = mode
	room.Amenities = amenities
	room.Description = in.Description
	if mode == pricing.PerPerson {
		room.Rate = 0
		room.RatesPerPerson = append([]float64(nil), in.RatesPerPerson...)
	} else {
		room.Rate = in.Rate
		room.RatesPerPerson = nil
	}
	if in.Photos != nil {
		room.Photos = append([]string(nil), in.Photos...)
	}
	return nil
}

func (s *RoomService) List(ctx context.Context, status string) ([]models.Room, error) {
	var rooms []models.Room
	q := s.DB.WithContext(ctx).Order("room_number ASC")
	if status = strings.TrimSpace(status); status != "" {
		if !models.RoomStatus(status).Valid() {
			return nil, pricing.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
		}
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&rooms).Error; err != nil {
		return nil, pricing.Persistence("list rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room", id)
		}
		return nil, pricing.Persistence("get room", err)
	}
	return &room, nil
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (*models.Room, error) {
	var room models.Room
	if err := in.apply(&room); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			log.Printf("❌ Duplicate Room Number: %s", room.RoomNumber)
			return nil, &ConflictError{Message: fmt.Sprintf("Room Number '%s' already exists.", room.RoomNumber)}
		}
		return nil, pricing.Persistence("create room", err)
	}
	log.Printf("✅ Room %s created (id=%d)", room.RoomNumber, room.ID)
	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (*models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(room); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Save(room).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil, &ConflictError{Message: fmt.Sprintf("Room Number '%s' already exists.", room.RoomNumber)}
		}
		return nil, pricing.Persistence("update room", err)
	}
	return room, nil
}

func (s *RoomService) UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) (*models.Room, error) {
	if !status.Valid() {
		return nil, pricing.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(room).Update("status", status).Error; err != nil {
		return nil, pricing.Persistence("update room status", err)
	}
	room.Status = status
	return room, nil
}

// Delete soft-deletes a room. Rooms still holding active reservations are kept.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("room", id)
			}
			return pricing.Persistence("get room", err)
		}

		var active int64
		if err := tx.Model(&models.Reservation{}).
			Where("room_id = ? AND status IN ?", id, models.ActiveStatuses()).
			Count(&active).Error; err != nil {
			return pricing.Persistence("count reservations", err)
		}
		if active > 0 {
			return &ConflictError{Message: fmt.Sprintf("Room %s has %d active reservation(s).", room.RoomNumber, active)}
		}

		var booked int64
		if err := tx.Model(&models.Reservation{}).Where("room_id = ?", id).Count(&booked).Error; err != nil {
			return pricing.Persistence("count reservations", err)
		}
		if booked == 0 {
			if err := tx.Unscoped().Delete(&room).Error; err != nil {
				return pricing.Persistence("delete room", err)
			}
			log.Printf("✅ Room ID %d deleted.", id)
			return nil
		}

		// past reservations keep pointing at the soft-deleted row, so its
		// number is retired to let a new room reuse it
		retired := fmt.Sprintf("%s~%d", room.RoomNumber, room.ID)
		if err := tx.Model(&room).Update("room_number", retired).Error; err != nil {
			return pricing.Persistence("retire room number", err)
		}
		if err := tx.Delete(&room).Error; err != nil {
			return pricing.Persistence("delete room", err)
		}
		log.Printf("✅ Room ID %d archived as %s.", id, retired)
		return nil
	})
}

// AddPhoto uploads a photo to the room-photos bucket and appends its URL.
func (s *RoomService) AddPhoto(ctx context.Context, id uint, body io.Reader, contentType string) (*models.Room, error) {
	if s.Store == nil {
		return nil, errors.New("photo storage is not configured")
	}
	ext, ok := storage.ExtensionFor(contentType)
	if !ok || ext == ".pdf" {
		return nil, pricing.NewValidationError("photo", "must be a jpeg, png or webp image")
	}
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := storage.ObjectKey(fmt.Sprintf("room-%d", room.ID), ext, time.Now())
	url, err := s.Store.Put(ctx, storage.RoomPhotos, key, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	room.Photos = append(room.Photos, url)
	if err := s.DB.WithContext(ctx).Model(room).Update("photos", room.Photos).Error; err != nil {
		return nil, pricing.Persistence("save room photos", err)
	}
	return room, nil
}

// overlapping selects reservations that block [checkIn, checkOut) for a room.
func overlapping(tx *gorm.DB, checkIn, checkOut time.Time, excludeReservationID uint) *gorm.DB {
	q := tx.Model(&models.Reservation{}).
		Where("status IN ?", models.ActiveStatuses()).
		Where("check_in < ? AND check_out > ?", pricing.Day(checkOut), pricing.Day(checkIn))
	if excludeReservationID != 0 {
		q = q.Where("id <> ?", excludeReservationID)
	}
	return q
}

// roomIsFree reports whether the room can take the stay: it must be in
// service and have no overlapping active reservation.
func roomIsFree(tx *gorm.DB, room models.Room, checkIn, checkOut time.Time, excludeReservationID uint) (bool, error) {
	if !room.Status.Bookable() {
		return false, nil
	}
	var n int64
	if err := overlapping(tx, checkIn, checkOut, excludeReservationID).
		Where("room_id = ?", room.ID).
		Count(&n).Error; err != nil {
		return false, pricing.Persistence("check room overlap", err)
	}
	return n == 0, nil
}

// Available lists rooms in service with no active reservation overlapping
// [checkIn, checkOut). excludeReservationID lets a reservation ignore itself
// when it moves to another room.
func (s *RoomService) Available(ctx context.Context, checkIn, checkOut time.Time, excludeReservationID uint) ([]models.Room, error) {
	if !pricing.Day(checkOut).After(pricing.Day(checkIn)) {
		return nil, pricing.NewValidationError("check_out", "must be after check-in")
	}

	db := s.DB.WithContext(ctx)
	busy := overlapping(db, checkIn, checkOut, excludeReservationID).Select("room_id")

	var rooms []models.Room
	err := db.
		Where("status NOT IN ?", []string{string(models.RoomMaintenance), string(models.RoomBlocked)}).
		Where("id NOT IN (?)", busy).
		Order("room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, pricing.Persistence("list available rooms", err)
	}
	return rooms, nil
}

// AvailabilityCeiling is the largest capacity among the rooms free for the
// stay, or the default ceiling when none are.
func (s *RoomService) AvailabilityCeiling(ctx context.Context, checkIn, checkOut time.Time) (int, []models.Room, error) {
	rooms, err := s.Available(ctx, checkIn, checkOut, 0)
	if err != nil {
		return 0, nil, err
	}
	caps := make([]int, len(rooms))
	for i, r := range rooms {
		caps[i] = r.Capacity
	}
	return pricing.MaxCapacity(caps), rooms, nil
}
