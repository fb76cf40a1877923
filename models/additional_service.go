package models

import "hotel-pms/pricing"

// AdditionalService is the catalog of optional extras offered by the wizard.
type AdditionalService struct {
	ID     string  `gorm:"primaryKey;size:64" json:"id"`
	Name   string  `gorm:"size:100" json:"name"`
	Price  float64 `json:"price"`
	Active bool    `gorm:"default:true" json:"active"`
}

func (s AdditionalService) Pricing() pricing.Service {
	return pricing.Service{ID: s.ID, Name: s.Name, Price: s.Price}
}
