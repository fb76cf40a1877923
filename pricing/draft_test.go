package pricing

import "testing"

func validGuest() GuestInfo {
	return GuestInfo{
		FirstName:      "Ana",
		LastName:       "Quispe",
		Email:          "ana@example.com",
		Phone:          "+51 999 888 777",
		DocumentType:   "dni",
		DocumentNumber: "44556677",
	}
}

func suiteRoom() RoomRef {
	return RoomRef{ID: 7, Number: "301", Type: "Suite", Capacity: 3, Rate: OccupancyRate{Amounts: []float64{800, 1200, 1500}}}
}

func TestDraftStepProgression(t *testing.T) {
	in := date(2025, 8, 10)
	d := NewDraft(Stay{})
	if d.Step() != StepDates {
		t.Fatalf("empty draft Step() = %v, want dates", d.Step())
	}

	d = d.WithStay(Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 2), Adults: 2})
	if d.Step() != StepRoom {
		t.Fatalf("Step() = %v, want room", d.Step())
	}

	d = d.WithRoom(suiteRoom())
	if d.Step() != StepServices {
		t.Fatalf("Step() = %v, want services", d.Step())
	}

	d = d.WithServices(NewSelection())
	if d.Step() != StepGuest {
		t.Fatalf("Step() = %v, want guest", d.Step())
	}

	d = d.WithGuest(GuestInfo{FirstName: "Ana"})
	if d.Step() != StepGuest {
		t.Fatalf("incomplete guest Step() = %v, want guest", d.Step())
	}

	d = d.WithGuest(validGuest())
	if d.Step() != StepSummary {
		t.Fatalf("Step() = %v, want summary", d.Step())
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestDraftIsImmutable(t *testing.T) {
	in := date(2025, 8, 10)
	base := NewDraft(Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Adults: 1})
	withRoom := base.WithRoom(suiteRoom())
	withService := withRoom.WithServices(withRoom.Services().Toggle(breakfast))

	if _, ok := base.Room(); ok {
		t.Errorf("WithRoom modified the original draft")
	}
	if withRoom.Services().Len() != 0 {
		t.Errorf("WithServices modified the previous draft")
	}
	if !withService.Services().Has("breakfast") {
		t.Errorf("WithServices did not add breakfast")
	}
	if withRoom.Step() != StepServices || withService.Step() != StepGuest {
		t.Errorf("Step() = %v / %v, want services / guest", withRoom.Step(), withService.Step())
	}
}

func TestDraftQuote(t *testing.T) {
	in := date(2025, 8, 10)
	d := NewDraft(Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 3), Adults: 2, Children: 1}).
		WithRoom(suiteRoom()).
		WithServices(NewSelection(breakfast))

	q, err := d.Quote()
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if !approx(q.Total, 5135.85) {
		t.Errorf("Total = %v, want 5135.85", q.Total)
	}
}

func TestDraftValidation(t *testing.T) {
	in := date(2025, 8, 10)
	tests := []struct {
		name      string
		draft     Draft
		wantField string
	}{
		{
			name:      "same day stay",
			draft:     NewDraft(Stay{CheckIn: in, CheckOut: in, Adults: 1}).WithRoom(suiteRoom()).WithGuest(validGuest()),
			wantField: "check_out",
		},
		{
			name:      "no room",
			draft:     NewDraft(Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Adults: 1}).WithGuest(validGuest()),
			wantField: "room_id",
		},
		{
			name:      "over room capacity",
			draft:     NewDraft(Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Adults: 4}).WithRoom(suiteRoom()).WithGuest(validGuest()),
			wantField: "guests",
		},
		{
			name:      "no guest",
			draft:     NewDraft(Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Adults: 1}).WithRoom(suiteRoom()),
			wantField: "guest",
		},
		{
			name: "bad email",
			draft: func() Draft {
				g := validGuest()
				g.Email = "not-an-email"
				return NewDraft(Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Adults: 1}).WithRoom(suiteRoom()).WithGuest(g)
			}(),
			wantField: "guest.email",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if !verr.Has(tt.wantField) {
				t.Errorf("Validate() fields = %+v, want %q", verr.Fields, tt.wantField)
			}
		})
	}
}

func TestDraftQuoteRejectsSameDay(t *testing.T) {
	in := date(2025, 8, 10)
	_, err := NewDraft(Stay{CheckIn: in, CheckOut: in, Adults: 1}).WithRoom(suiteRoom()).Quote()
	if !IsValidation(err) {
		t.Fatalf("Quote() error = %v, want validation error", err)
	}
}
