package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"hotel-pms/models"
	"hotel-pms/pricing"
	"hotel-pms/storage"
)

func TestRoomServiceCreateValidates(t *testing.T) {
	svc := NewRoomService(newTestDB(t), nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		in        RoomInput
		wantField string
	}{
		{"missing number", RoomInput{Capacity: 2, Rate: 100}, "room_number"},
		{"zero capacity", RoomInput{RoomNumber: "101"}, "max_occupancy"},
		{"bad status", RoomInput{RoomNumber: "101", Capacity: 2, Status: "reserved"}, "status"},
		{"unknown amenity", RoomInput{RoomNumber: "101", Capacity: 2, Amenities: []string{"helipad"}}, "amenities"},
		{"short rate table", RoomInput{RoomNumber: "101", Capacity: 3, RateMode: "per_person", RatesPerPerson: []float64{100, 150}}, "rates_per_person"},
		{"mixed shapes", RoomInput{RoomNumber: "101", Capacity: 2, RateMode: "per_room", Rate: 100, RatesPerPerson: []float64{1, 2}}, "rates_per_person"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			var verr *pricing.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Create() error = %v, want validation error", err)
			}
			if !verr.Has(tt.wantField) {
				t.Errorf("fields = %+v, want %q", verr.Fields, tt.wantField)
			}
		})
	}
}

func TestRoomServiceCreateAndDuplicate(t *testing.T) {
	svc := NewRoomService(newTestDB(t), nil)
	ctx := context.Background()

	in := RoomInput{
		RoomNumber:     " 301 ",
		Type:           "Suite",
		Capacity:       3,
		RateMode:       "per_person",
		RatesPerPerson: []float64{800, 1200, 1500},
		Amenities:      []string{"WiFi", "jacuzzi", "wifi"},
	}
	room, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if room.RoomNumber != "301" || room.Status != models.RoomAvailable {
		t.Errorf("room = %+v", room)
	}
	if len(room.Amenities) != 2 {
		t.Errorf("Amenities = %v, want de-duplicated wifi, jacuzzi", room.Amenities)
	}

	got, err := svc.Get(ctx, room.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	rate, err := got.PricingRate()
	if err != nil {
		t.Fatalf("PricingRate() error = %v", err)
	}
	if rate.Nightly(3) != 1500 {
		t.Errorf("Nightly(3) = %v, want 1500", rate.Nightly(3))
	}

	_, err = svc.Create(ctx, in)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("duplicate Create() error = %v, want ConflictError", err)
	}
}

func TestRoomServiceGetMissing(t *testing.T) {
	svc := NewRoomService(newTestDB(t), nil)
	if _, err := svc.Get(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestRoomServiceUpdateSwitchesRateMode(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db, nil)
	ctx := context.Background()
	room := createRoom(t, db, "101", 2, 180)

	updated, err := svc.Update(ctx, room.ID, RoomInput{
		RoomNumber:     "101",
		Capacity:       2,
		RateMode:       "per_person",
		RatesPerPerson: []float64{150, 200},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Rate != 0 || len(updated.RatesPerPerson) != 2 || updated.RateMode != pricing.PerPerson {
		t.Errorf("updated = %+v", updated)
	}
}

func TestRoomServiceAvailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db, nil)
	ctx := context.Background()

	createRoom(t, db, "101", 2, 100)
	booked := createRoom(t, db, "102", 4, 100)
	cancelled := createRoom(t, db, "103", 3, 100)
	maintenance := createRoom(t, db, "104", 6, 100)
	adjacent := createRoom(t, db, "105", 2, 100)

	db.Model(&maintenance).Update("status", models.RoomMaintenance)
	createReservation(t, db, booked.ID, day(2025, 8, 9), day(2025, 8, 11), models.StatusConfirmed)
	createReservation(t, db, cancelled.ID, day(2025, 8, 9), day(2025, 8, 11), models.StatusCancelled)
	createReservation(t, db, adjacent.ID, day(2025, 8, 8), day(2025, 8, 10), models.StatusCheckedIn)

	rooms, err := svc.Available(ctx, day(2025, 8, 10), day(2025, 8, 12), 0)
	if err != nil {
		t.Fatalf("Available() error = %v", err)
	}
	var numbers []string
	for _, r := range rooms {
		numbers = append(numbers, r.RoomNumber)
	}
	if got := strings.Join(numbers, ","); got != "101,103,105" {
		t.Errorf("Available() = %s, want 101,103,105", got)
	}

	ceiling, _, err := svc.AvailabilityCeiling(ctx, day(2025, 8, 10), day(2025, 8, 12))
	if err != nil {
		t.Fatalf("AvailabilityCeiling() error = %v", err)
	}
	if ceiling != 3 {
		t.Errorf("ceiling = %d, want 3", ceiling)
	}
}

func TestRoomServiceAvailableRejectsEmptyRange(t *testing.T) {
	svc := NewRoomService(newTestDB(t), nil)
	_, err := svc.Available(context.Background(), day(2025, 8, 10), day(2025, 8, 10), 0)
	if !pricing.IsValidation(err) {
		t.Errorf("Available() error = %v, want validation error", err)
	}
}

func TestAvailabilityCeilingDefaultsWhenNothingFree(t *testing.T) {
	svc := NewRoomService(newTestDB(t), nil)
	ceiling, rooms, err := svc.AvailabilityCeiling(context.Background(), day(2025, 8, 10), day(2025, 8, 12))
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 0 || ceiling != pricing.DefaultMaxCapacity {
		t.Errorf("ceiling = %d, rooms = %d", ceiling, len(rooms))
	}
}

func TestRoomServiceDeleteKeepsBookedRooms(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db, nil)
	ctx := context.Background()

	room := createRoom(t, db, "101", 2, 100)
	createReservation(t, db, room.ID, day(2025, 8, 9), day(2025, 8, 11), models.StatusPending)

	var conflict *ConflictError
	if err := svc.Delete(ctx, room.ID); !errors.As(err, &conflict) {
		t.Fatalf("Delete() error = %v, want ConflictError", err)
	}

	empty := createRoom(t, db, "102", 2, 100)
	if err := svc.Delete(ctx, empty.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, empty.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete = %v, want ErrNotFound", err)
	}
}

func TestRoomServiceDeleteFreesRoomNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db, nil)
	ctx := context.Background()

	never := createRoom(t, db, "101", 2, 100)
	if err := svc.Delete(ctx, never.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	var rows int64
	db.Unscoped().Model(&models.Room{}).Where("id = ?", never.ID).Count(&rows)
	if rows != 0 {
		t.Errorf("unbooked room still stored (%d rows), want hard delete", rows)
	}

	past := createRoom(t, db, "102", 2, 100)
	res := createReservation(t, db, past.ID, day(2025, 1, 9), day(2025, 1, 11), models.StatusCheckedOut)
	if err := svc.Delete(ctx, past.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	var archived models.Room
	if err := db.Unscoped().First(&archived, past.ID).Error; err != nil {
		t.Fatalf("archived room: %v", err)
	}
	if archived.RoomNumber != fmt.Sprintf("102~%d", past.ID) || !archived.DeletedAt.Valid {
		t.Errorf("archived room = %q deleted=%v", archived.RoomNumber, archived.DeletedAt.Valid)
	}
	var kept models.Reservation
	if err := db.First(&kept, res.ID).Error; err != nil || kept.RoomID != past.ID {
		t.Errorf("reservation after delete = %+v, %v", kept, err)
	}

	for _, number := range []string{"101", "102"} {
		in := suiteInput()
		in.RoomNumber = number
		if _, err := svc.Create(ctx, in); err != nil {
			t.Errorf("Create(%s) after delete = %v", number, err)
		}
	}
}

func TestRoomServiceAddPhoto(t *testing.T) {
	db := newTestDB(t)
	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatal(err)
	}
	svc := NewRoomService(db, store)
	ctx := context.Background()
	room := createRoom(t, db, "101", 2, 100)

	if _, err := svc.AddPhoto(ctx, room.ID, strings.NewReader("x"), "text/plain"); !pricing.IsValidation(err) {
		t.Errorf("AddPhoto(text/plain) error = %v, want validation error", err)
	}

	updated, err := svc.AddPhoto(ctx, room.ID, strings.NewReader("jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("AddPhoto() error = %v", err)
	}
	if len(updated.Photos) != 1 || !strings.HasPrefix(updated.Photos[0], "http://localhost:8080/uploads/room-photos/room-") {
		t.Errorf("Photos = %v", updated.Photos)
	}

	reloaded, _ := svc.Get(ctx, room.ID)
	if len(reloaded.Photos) != 1 {
		t.Errorf("persisted Photos = %v", reloaded.Photos)
	}
}
