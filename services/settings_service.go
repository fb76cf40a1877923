package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/pricing"
)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

type HotelSettingsInput struct {
	Name         string `json:"name"`
	TaxID        string `json:"tax_id"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website"`
	Logo         string `json:"logo"`
	Currency     string `json:"currency"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time"`
}

// clockOrDefault accepts "HH:MM" and falls back to def when blank.
func clockOrDefault(raw, def string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return "", false
	}
	return t.Format("15:04"), true
}

// Get returns the single settings row, or an empty one when none exists yet.
func (s *SettingsService) Get(ctx context.Context) (*models.HotelSetting, error) {
	var hotel models.HotelSetting
	if err := s.DB.WithContext(ctx).First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.HotelSetting{Currency: "PEN", CheckInTime: "14:00", CheckOutTime: "12:00"}, nil
		}
		return nil, pricing.Persistence("get hotel settings", err)
	}
	return &hotel, nil
}

// Update overwrites the settings row, creating it on first use.
func (s *SettingsService) Update(ctx context.Context, in HotelSettingsInput) (*models.HotelSetting, error) {
	verr := &pricing.ValidationError{}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "PEN"
	}
	if len(currency) != 3 {
		verr.Add("currency", "must be a 3-letter ISO code")
	}
	checkIn, ok := clockOrDefault(in.CheckInTime, "14:00")
	if !ok {
		verr.Add("check_in_time", "must be HH:MM")
	}
	checkOut, ok := clockOrDefault(in.CheckOutTime, "12:00")
	if !ok {
		verr.Add("check_out_time", "must be HH:MM")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	var hotel models.HotelSetting
	err := s.DB.WithContext(ctx).First(&hotel).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pricing.Persistence("get hotel settings", err)
	}

	hotel.Name = strings.TrimSpace(in.Name)
	hotel.TaxID = strings.TrimSpace(in.TaxID)
	hotel.Address = in.Address
	hotel.Phone = in.Phone
	hotel.Email = strings.TrimSpace(in.Email)
	hotel.Website = in.Website
	hotel.Logo = in.Logo
	hotel.Currency = currency
	hotel.CheckInTime = checkIn
	hotel.CheckOutTime = checkOut

	if err := s.DB.WithContext(ctx).Save(&hotel).Error; err != nil {
		return nil, pricing.Persistence("save hotel settings", err)
	}
	return &hotel, nil
}
