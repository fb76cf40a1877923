package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-pms/config"
	"hotel-pms/models"
	"hotel-pms/pricing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.Seed(db, config.SeedOptions{})
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createRoom(t *testing.T, db *gorm.DB, number string, capacity int, rate float64) models.Room {
	t.Helper()
	room := models.Room{
		RoomNumber: number,
		Type:       "Standard",
		Status:     models.RoomAvailable,
		Capacity:   capacity,
		RateMode:   pricing.PerRoom,
		Rate:       rate,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return room
}

func createReservation(t *testing.T, db *gorm.DB, roomID uint, in, out time.Time, status models.ReservationStatus) models.Reservation {
	t.Helper()
	key := fmt.Sprintf("%d-%s-%s", roomID, in.Format("20060102"), status)
	guest := models.Guest{FirstName: "Test", LastName: "Guest", Email: "guest-" + key + "@example.com", Phone: "1"}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("create guest: %v", err)
	}
	res := models.Reservation{
		ReferenceCode: "T-" + key,
		RoomID:        roomID,
		GuestID:       guest.ID,
		CheckIn:       in,
		CheckOut:      out,
		Adults:        1,
		Status:        status,
		TotalAmount:   100,
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return res
}
