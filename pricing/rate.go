package pricing

import (
	"fmt"
	"strings"
)

type RateMode string

const (
	PerRoom   RateMode = "per_room"
	PerPerson RateMode = "per_person"
)

// ParseRateMode accepts the short forms ("room", "person") used by older rows.
func ParseRateMode(s string) (RateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "room", string(PerRoom):
		return PerRoom, nil
	case "person", string(PerPerson):
		return PerPerson, nil
	}
	return "", fmt.Errorf("unknown rate mode %q", s)
}

// Rate is the nightly price of a room. It is either a FlatRate or an
// OccupancyRate, never both.
type Rate interface {
	Mode() RateMode
	Nightly(guests int) float64
}

// FlatRate charges the same amount whatever the occupancy.
type FlatRate struct {
	Amount float64
}

func (r FlatRate) Mode() RateMode { return PerRoom }

func (r FlatRate) Nightly(int) float64 { return r.Amount }

// OccupancyRate holds one price per guest count; Amounts[i] is the rate for i+1 guests.
type OccupancyRate struct {
	Amounts []float64
}

func (r OccupancyRate) Mode() RateMode { return PerPerson }

func (r OccupancyRate) Nightly(guests int) float64 {
	if guests < 1 || guests > len(r.Amounts) {
		return 0
	}
	return r.Amounts[guests-1]
}

// Resolve returns the nightly rate of a room for the given guest count.
func Resolve(rate Rate, guests int) float64 {
	if rate == nil {
		return 0
	}
	return rate.Nightly(guests)
}

// NewRate builds the rate variant from stored room columns. A per-person
// table must have exactly one entry per unit of capacity.
func NewRate(mode RateMode, flat float64, perPerson []float64, capacity int) (Rate, error) {
	verr := &ValidationError{}
	switch mode {
	case PerRoom, "":
		if len(perPerson) > 0 {
			verr.Add("rates_per_person", "must be empty for per_room pricing")
		}
		if flat < 0 {
			verr.Add("rate", "must not be negative")
		}
		if err := verr.Err(); err != nil {
			return nil, err
		}
		return FlatRate{Amount: flat}, nil
	case PerPerson:
		if capacity < 1 {
			verr.Add("max_occupancy", "must be at least 1")
		}
		if len(perPerson) != capacity {
			verr.Add("rates_per_person", fmt.Sprintf("expected %d rates, got %d", capacity, len(perPerson)))
		}
		for i, amount := range perPerson {
			if amount < 0 {
				verr.Add(fmt.Sprintf("rates_per_person[%d]", i), "must not be negative")
			}
		}
		if err := verr.Err(); err != nil {
			return nil, err
		}
		amounts := make([]float64, len(perPerson))
		copy(amounts, perPerson)
		return OccupancyRate{Amounts: amounts}, nil
	}
	return nil, NewValidationError("rate_type", fmt.Sprintf("unknown rate mode %q", mode))
}
