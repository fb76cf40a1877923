package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/pricing"
)

// CatalogService serves the add-on services offered by the booking wizard.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) List(ctx context.Context) ([]models.AdditionalService, error) {
	var items []models.AdditionalService
	if err := s.DB.WithContext(ctx).Where("active = ?", true).Order("price ASC, id ASC").Find(&items).Error; err != nil {
		return nil, pricing.Persistence("list additional services", err)
	}
	return items, nil
}

// Resolve turns requested ids into a selection priced from the catalog.
// Unknown or inactive ids are rejected so clients cannot set prices.
func (s *CatalogService) Resolve(ctx context.Context, ids []string) (pricing.Selection, error) {
	if len(ids) == 0 {
		return pricing.NewSelection(), nil
	}

	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}

	var rows []models.AdditionalService
	if err := s.DB.WithContext(ctx).Where("id IN ? AND active = ?", cleaned, true).Find(&rows).Error; err != nil {
		return pricing.Selection{}, pricing.Persistence("load additional services", err)
	}
	byID := make(map[string]models.AdditionalService, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}

	verr := &pricing.ValidationError{}
	picked := make([]pricing.Service, 0, len(cleaned))
	for _, id := range cleaned {
		row, ok := byID[id]
		if !ok {
			verr.Add("service_ids", fmt.Sprintf("unknown service %q", id))
			continue
		}
		picked = append(picked, row.Pricing())
	}
	if err := verr.Err(); err != nil {
		return pricing.Selection{}, err
	}
	return pricing.NewSelection(picked...), nil
}
