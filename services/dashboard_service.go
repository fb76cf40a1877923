package services

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/pricing"
	"hotel-pms/utils"
)

type DashboardService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db, now: time.Now}
}

type DashboardStats struct {
	Date                 string           `json:"date"`
	TotalRooms           int64            `json:"total_rooms"`
	OccupiedRooms        int64            `json:"occupied_rooms"`
	AvailableRooms       int64            `json:"available_rooms"`
	OutOfServiceRooms    int64            `json:"out_of_service_rooms"`
	OccupancyRate        float64          `json:"occupancy_rate"`
	ArrivalsToday        int64            `json:"arrivals_today"`
	DeparturesToday      int64            `json:"departures_today"`
	InHouse              int64            `json:"in_house"`
	MonthRevenue         float64          `json:"month_revenue"`
	ReservationsByStatus map[string]int64 `json:"reservations_by_status"`
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	db := s.DB.WithContext(ctx)
	today := pricing.Day(s.now())
	monthStart, nextMonth := utils.MonthBounds(today)
	stats := &DashboardStats{Date: today.Format(utils.DateLayout), ReservationsByStatus: map[string]int64{}}

	var roomCounts []struct {
		Status models.RoomStatus
		Total  int64
	}
	if err := db.Model(&models.Room{}).Select("status, COUNT(*) AS total").Group("status").Scan(&roomCounts).Error; err != nil {
		return nil, pricing.Persistence("count rooms", err)
	}
	for _, rc := range roomCounts {
		stats.TotalRooms += rc.Total
		switch rc.Status {
		case models.RoomOccupied:
			stats.OccupiedRooms += rc.Total
		case models.RoomAvailable:
			stats.AvailableRooms += rc.Total
		case models.RoomMaintenance, models.RoomBlocked:
			stats.OutOfServiceRooms += rc.Total
		}
	}
	if stats.TotalRooms > 0 {
		rate := float64(stats.OccupiedRooms) / float64(stats.TotalRooms) * 100
		stats.OccupancyRate = math.Round(rate*10) / 10
	}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.ArrivalsToday, db.Model(&models.Reservation{}).
			Where("check_in = ? AND status IN ?", today, []string{string(models.StatusPending), string(models.StatusConfirmed)})},
		{&stats.DeparturesToday, db.Model(&models.Reservation{}).
			Where("check_out = ? AND status = ?", today, models.StatusCheckedIn)},
		{&stats.InHouse, db.Model(&models.Reservation{}).
			Where("status = ?", models.StatusCheckedIn)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, pricing.Persistence("count reservations", err)
		}
	}

	if err := db.Model(&models.Reservation{}).
		Where("status <> ? AND check_in >= ? AND check_in < ?", models.StatusCancelled, monthStart, nextMonth).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.MonthRevenue).Error; err != nil {
		return nil, pricing.Persistence("sum revenue", err)
	}

	var byStatus []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&models.Reservation{}).Select("status, COUNT(*) AS total").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, pricing.Persistence("count reservations by status", err)
	}
	for _, b := range byStatus {
		stats.ReservationsByStatus[b.Status] = b.Total
	}
	return stats, nil
}
