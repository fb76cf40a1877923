package pricing

// Step is a stage of the booking wizard.
type Step int

const (
	StepDates Step = iota
	StepRoom
	StepServices
	StepGuest
	StepSummary
)

func (s Step) String() string {
	switch s {
	case StepDates:
		return "dates"
	case StepRoom:
		return "room"
	case StepServices:
		return "services"
	case StepGuest:
		return "guest"
	case StepSummary:
		return "summary"
	}
	return "unknown"
}

// RoomRef is the part of a room the draft needs for pricing.
type RoomRef struct {
	ID       uint
	Number   string
	Type     string
	Capacity int
	Rate     Rate
}

// Draft is a reservation under construction. Every With method returns a
// new Draft and leaves the receiver untouched.
type Draft struct {
	stay        Stay
	room        RoomRef
	hasRoom     bool
	services    Selection
	hasServices bool
	guest       GuestInfo
	hasGuest    bool
}

func NewDraft(stay Stay) Draft {
	return Draft{stay: stay.Normalize()}
}

func (d Draft) WithStay(stay Stay) Draft {
	d.stay = stay.Normalize()
	return d
}

func (d Draft) WithRoom(room RoomRef) Draft {
	d.room = room
	d.hasRoom = true
	return d
}

func (d Draft) WithServices(services Selection) Draft {
	d.services = services
	d.hasServices = true
	return d
}

func (d Draft) WithGuest(guest GuestInfo) Draft {
	d.guest = guest
	d.hasGuest = true
	return d
}

func (d Draft) Stay() Stay               { return d.stay }
func (d Draft) Room() (RoomRef, bool)    { return d.room, d.hasRoom }
func (d Draft) Services() Selection      { return d.services }
func (d Draft) Guest() (GuestInfo, bool) { return d.guest, d.hasGuest }

// Step is the first wizard stage that still needs input. An empty
// selection passed to WithServices counts as a completed services stage.
func (d Draft) Step() Step {
	if ValidateStay(d.stay, 0) != nil {
		return StepDates
	}
	verr := &ValidationError{}
	d.validateRoom(verr)
	if verr.Err() != nil {
		return StepRoom
	}
	if !d.hasServices {
		return StepServices
	}
	if !d.hasGuest {
		return StepGuest
	}
	if d.guest.Validate() != nil {
		return StepGuest
	}
	return StepSummary
}

func (d Draft) validateRoom(verr *ValidationError) {
	if !d.hasRoom || d.room.ID == 0 {
		verr.Add("room_id", "is required")
		return
	}
	if d.room.Rate == nil {
		verr.Add("room.rate", "room has no rate configured")
	}
	if err := ValidateStay(d.stay, d.room.Capacity); err != nil {
		verr.Fields = append(verr.Fields, err.(*ValidationError).Fields...)
	}
}

// ValidateForQuote checks everything pricing needs: dates, guests and a room.
func (d Draft) ValidateForQuote() error {
	verr := &ValidationError{}
	if !d.hasRoom {
		if err := ValidateStay(d.stay, 0); err != nil {
			verr.Fields = append(verr.Fields, err.(*ValidationError).Fields...)
		}
	}
	d.validateRoom(verr)
	return verr.Err()
}

// Validate checks the complete draft before it is confirmed.
func (d Draft) Validate() error {
	verr := &ValidationError{}
	if err := d.ValidateForQuote(); err != nil {
		verr.Fields = append(verr.Fields, err.(*ValidationError).Fields...)
	}
	if !d.hasGuest {
		verr.Add("guest", "is required")
	} else {
		d.guest.validate("guest.", verr)
	}
	return verr.Err()
}

// Quote prices the draft. The draft must pass ValidateForQuote.
func (d Draft) Quote() (Quote, error) {
	if err := d.ValidateForQuote(); err != nil {
		return Quote{}, err
	}
	return QuoteStay(d.stay, d.room.Rate, d.services)
}
