package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/pricing"
	"hotel-pms/utils"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// normalizeGuest validates the guest with the wizard's rules and replaces it
// with its normalized row. Ids and timestamps are reset.
func normalizeGuest(g *models.Guest) error {
	info := g.Info()
	if err := info.Validate(); err != nil {
		return err
	}
	*g = models.GuestFromInfo(info)
	return nil
}

// List returns guests, newest first. q matches name, email or document number.
func (s *GuestService) List(ctx context.Context, q string) ([]models.Guest, error) {
	var guests []models.Guest
	db := s.DB.WithContext(ctx).Order("id DESC")
	if q = strings.ToLower(strings.TrimSpace(q)); q != "" {
		like := "%" + q + "%"
		db = db.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(document_number) LIKE ?",
			like, like, like, like,
		)
	}
	if err := db.Find(&guests).Error; err != nil {
		return nil, pricing.Persistence("list guests", err)
	}
	return guests, nil
}

func (s *GuestService) Get(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("guest", id)
		}
		return nil, pricing.Persistence("get guest", err)
	}
	return &guest, nil
}

// Create takes a pointer so the generated ID is written back to the caller.
func (s *GuestService) Create(ctx context.Context, guest *models.Guest) error {
	if err := normalizeGuest(guest); err != nil {
		return err
	}

	if err := s.DB.WithContext(ctx).Create(guest).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return &ConflictError{Message: fmt.Sprintf("A guest with email '%s' already exists.", guest.Email)}
		}
		return pricing.Persistence("create guest", err)
	}
	log.Printf("✅ Guest %d created", guest.ID)
	return nil
}

func (s *GuestService) Update(ctx context.Context, id uint, in models.Guest) (*models.Guest, error) {
	guest, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := normalizeGuest(&in); err != nil {
		return nil, err
	}
	in.ID = guest.ID
	in.CreatedAt = guest.CreatedAt

	if err := s.DB.WithContext(ctx).Save(&in).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil, &ConflictError{Message: fmt.Sprintf("A guest with email '%s' already exists.", in.Email)}
		}
		return nil, pricing.Persistence("update guest", err)
	}
	return &in, nil
}

// Upsert finds the guest by email and refreshes their details, or creates a
// new one. tx lets callers run it inside their own transaction.
func (s *GuestService) Upsert(tx *gorm.DB, info pricing.GuestInfo) (*models.Guest, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	incoming := models.GuestFromInfo(info)

	var existing models.Guest
	err := tx.Where("email = ?", incoming.Email).First(&existing).Error
	switch {
	case err == nil:
		incoming.ID = existing.ID
		incoming.CreatedAt = existing.CreatedAt
		if err := tx.Save(&incoming).Error; err != nil {
			return nil, pricing.Persistence("update guest", err)
		}
		log.Printf("➡️ GuestService.Upsert updated guest_id=%d", incoming.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&incoming).Error; err != nil {
			return nil, pricing.Persistence("create guest", err)
		}
		log.Printf("➡️ GuestService.Upsert created guest_id=%d", incoming.ID)
	default:
		return nil, pricing.Persistence("find guest", err)
	}
	return &incoming, nil
}
