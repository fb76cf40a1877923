package pricing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultStay(t *testing.T) {
	now := time.Date(2025, 3, 14, 18, 45, 0, 0, time.UTC)
	s := DefaultStay(now)

	if !s.CheckIn.Equal(date(2025, 3, 14)) {
		t.Errorf("CheckIn = %v, want 2025-03-14", s.CheckIn)
	}
	if !s.CheckOut.Equal(date(2025, 3, 15)) {
		t.Errorf("CheckOut = %v, want 2025-03-15", s.CheckOut)
	}
	if s.Nights() != 1 {
		t.Errorf("Nights() = %d, want 1", s.Nights())
	}
	if s.Adults != 2 || s.Children != 0 {
		t.Errorf("guests = (%d, %d), want (2, 0)", s.Adults, s.Children)
	}
}

func TestNightsIgnoresTimeOfDay(t *testing.T) {
	s := Stay{
		CheckIn:  time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 1, 3, 1, 0, 0, 0, time.UTC),
	}
	if got := s.Nights(); got != 2 {
		t.Errorf("Nights() = %d, want 2", got)
	}
}

func TestMaxChildren(t *testing.T) {
	tests := []struct {
		capacity int
		want     int
	}{
		{capacity: 0, want: 0},
		{capacity: 1, want: 0},
		{capacity: 2, want: 1},
		{capacity: 4, want: 2},
		{capacity: 5, want: 3},
		{capacity: 10, want: 6},
	}
	for _, tt := range tests {
		if got := MaxChildren(tt.capacity); got != tt.want {
			t.Errorf("MaxChildren(%d) = %d, want %d", tt.capacity, got, tt.want)
		}
	}
}

func TestClampGuests(t *testing.T) {
	tests := []struct {
		name                 string
		adults, children     int
		capacity             int
		wantAdults, wantKids int
	}{
		{name: "fits", adults: 2, children: 1, capacity: 4, wantAdults: 2, wantKids: 1},
		{name: "too many children", adults: 1, children: 5, capacity: 4, wantAdults: 1, wantKids: 2},
		{name: "children first then adults", adults: 4, children: 3, capacity: 4, wantAdults: 2, wantKids: 2},
		{name: "adults only over capacity", adults: 6, children: 0, capacity: 3, wantAdults: 3, wantKids: 0},
		{name: "adults never below one", adults: 0, children: 0, capacity: 2, wantAdults: 1, wantKids: 0},
		{name: "negative children", adults: 2, children: -3, capacity: 4, wantAdults: 2, wantKids: 0},
		{name: "capacity one", adults: 2, children: 2, capacity: 1, wantAdults: 1, wantKids: 0},
		{name: "zero capacity", adults: 2, children: 1, capacity: 0, wantAdults: 1, wantKids: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, c := ClampGuests(tt.adults, tt.children, tt.capacity)
			if a != tt.wantAdults || c != tt.wantKids {
				t.Errorf("ClampGuests(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.adults, tt.children, tt.capacity, a, c, tt.wantAdults, tt.wantKids)
			}
			if c > MaxChildren(max(tt.capacity, MinAdults)) {
				t.Errorf("children %d exceed allowance for capacity %d", c, tt.capacity)
			}
		})
	}
}

func TestClampGuestsIdempotent(t *testing.T) {
	for capacity := 1; capacity <= 8; capacity++ {
		for adults := 0; adults <= 9; adults++ {
			for children := 0; children <= 9; children++ {
				a1, c1 := ClampGuests(adults, children, capacity)
				a2, c2 := ClampGuests(a1, c1, capacity)
				if a1 != a2 || c1 != c2 {
					t.Fatalf("clamp not idempotent for (%d, %d, cap %d): (%d, %d) then (%d, %d)",
						adults, children, capacity, a1, c1, a2, c2)
				}
				if a1+c1 > capacity {
					t.Fatalf("clamp (%d, %d, cap %d) = (%d, %d) still over capacity", adults, children, capacity, a1, c1)
				}
				if err := ValidateStay(Stay{CheckIn: date(2025, 1, 1), CheckOut: date(2025, 1, 2), Adults: a1, Children: c1}, capacity); err != nil {
					t.Fatalf("clamped stay (%d, %d, cap %d) invalid: %v", a1, c1, capacity, err)
				}
			}
		}
	}
}

func TestLimits(t *testing.T) {
	maxAdults, maxChildren := Limits(2, 1, 4)
	if maxAdults != 3 {
		t.Errorf("maxAdults = %d, want 3", maxAdults)
	}
	if maxChildren != 2 {
		t.Errorf("maxChildren = %d, want 2", maxChildren)
	}

	maxAdults, maxChildren = Limits(4, 0, 4)
	if maxAdults != 4 || maxChildren != 0 {
		t.Errorf("Limits(4, 0, 4) = (%d, %d), want (4, 0)", maxAdults, maxChildren)
	}
}

func TestValidateStay(t *testing.T) {
	in := date(2025, 6, 1)
	tests := []struct {
		name      string
		stay      Stay
		capacity  int
		wantField string
	}{
		{name: "valid", stay: Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 2), Adults: 2}, capacity: 4},
		{name: "same day", stay: Stay{CheckIn: in, CheckOut: in, Adults: 1}, capacity: 4, wantField: "check_out"},
		{name: "reversed", stay: Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, -1), Adults: 1}, capacity: 4, wantField: "check_out"},
		{name: "missing check-in", stay: Stay{CheckOut: in, Adults: 1}, capacity: 4, wantField: "check_in"},
		{name: "no adults", stay: Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 1)}, capacity: 4, wantField: "adults"},
		{name: "over capacity", stay: Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Adults: 3, Children: 2}, capacity: 4, wantField: "guests"},
		{name: "too many children", stay: Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Adults: 1, Children: 3}, capacity: 4, wantField: "children"},
		{name: "capacity unknown skips bounds", stay: Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Adults: 9}, capacity: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStay(tt.stay, tt.capacity)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStay() = %v, want nil", err)
				}
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("ValidateStay() = %v, want *ValidationError", err)
			}
			if !verr.Has(tt.wantField) {
				t.Errorf("ValidateStay() fields = %+v, want %q", verr.Fields, tt.wantField)
			}
		})
	}
}

func TestMaxCapacity(t *testing.T) {
	if got := MaxCapacity(nil); got != DefaultMaxCapacity {
		t.Errorf("MaxCapacity(nil) = %d, want %d", got, DefaultMaxCapacity)
	}
	if got := MaxCapacity([]int{2, 6, 3}); got != 6 {
		t.Errorf("MaxCapacity = %d, want 6", got)
	}
}
