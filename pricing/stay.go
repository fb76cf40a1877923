package pricing

import "time"

const (
	MinAdults          = 1
	DefaultMaxCapacity = 4
	DefaultAdults      = 2

	// at most 60% of a room's capacity may be children
	maxChildrenPercent = 60
)

// Stay is a date range plus guest counts, the unit priced by QuoteStay.
type Stay struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Adults   int       `json:"adults"`
	Children int       `json:"children"`
}

// Day truncates t to its calendar date, expressed as UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultStay starts today, ends tomorrow, for two adults.
func DefaultStay(now time.Time) Stay {
	today := Day(now)
	return Stay{
		CheckIn:  today,
		CheckOut: today.AddDate(0, 0, 1),
		Adults:   DefaultAdults,
	}
}

func (s Stay) Guests() int { return s.Adults + s.Children }

// Nights counts whole days between check-in and check-out; it may be zero or negative.
func (s Stay) Nights() int {
	return int(Day(s.CheckOut).Sub(Day(s.CheckIn)).Hours() / 24)
}

// Normalize drops the time of day from both dates.
func (s Stay) Normalize() Stay {
	if !s.CheckIn.IsZero() {
		s.CheckIn = Day(s.CheckIn)
	}
	if !s.CheckOut.IsZero() {
		s.CheckOut = Day(s.CheckOut)
	}
	return s
}

// Clamp returns the stay with guest counts clamped to capacity.
func (s Stay) Clamp(capacity int) Stay {
	s.Adults, s.Children = ClampGuests(s.Adults, s.Children, capacity)
	return s
}

// MaxChildren is floor(capacity × 0.6).
func MaxChildren(capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return capacity * maxChildrenPercent / 100
}

// Limits reports how many adults and children can still be chosen given the
// other count, the way the selector bounds its inputs.
func Limits(adults, children, capacity int) (maxAdults, maxChildren int) {
	maxAdults = capacity - children
	if maxAdults < MinAdults {
		maxAdults = MinAdults
	}
	maxChildren = capacity - adults
	if mc := MaxChildren(capacity); mc < maxChildren {
		maxChildren = mc
	}
	if maxChildren < 0 {
		maxChildren = 0
	}
	return maxAdults, maxChildren
}

// ClampGuests fits a guest selection under capacity. Children are reduced
// first, then adults, and adults never drop below MinAdults. A pair that
// already fits is returned unchanged.
func ClampGuests(adults, children, capacity int) (int, int) {
	if capacity < MinAdults {
		capacity = MinAdults
	}
	if adults < MinAdults {
		adults = MinAdults
	}
	if children < 0 {
		children = 0
	}
	if mc := MaxChildren(capacity); children > mc {
		children = mc
	}
	if adults+children > capacity {
		adults = max(MinAdults, min(adults, capacity-children))
	}
	return adults, children
}

// ValidateStay checks date ordering and guest bounds against capacity.
func ValidateStay(s Stay, capacity int) error {
	verr := &ValidationError{}
	if s.CheckIn.IsZero() {
		verr.Add("check_in", "is required")
	}
	if s.CheckOut.IsZero() {
		verr.Add("check_out", "is required")
	}
	if !s.CheckIn.IsZero() && !s.CheckOut.IsZero() && s.Nights() < 1 {
		verr.Add("check_out", "must be after check-in")
	}
	if s.Adults < MinAdults {
		verr.Add("adults", "at least one adult is required")
	}
	if s.Children < 0 {
		verr.Add("children", "must not be negative")
	}
	if capacity > 0 {
		if s.Guests() > capacity {
			verr.Add("guests", "exceeds room capacity")
		}
		if s.Children > MaxChildren(capacity) {
			verr.Add("children", "exceeds the children allowance for this capacity")
		}
	}
	return verr.Err()
}
