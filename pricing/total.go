package pricing

const (
	TaxRate = 0.10
	FeeRate = 0.03
)

// Quote is the price breakdown of a stay.
type Quote struct {
	Nights           int     `json:"nights"`
	RoomRate         float64 `json:"room_rate"`
	ServicesPerNight float64 `json:"services_per_night"`
	RoomTotal        float64 `json:"room_total"`
	ServicesTotal    float64 `json:"services_total"`
	Subtotal         float64 `json:"subtotal"`
	Tax              float64 `json:"tax"`
	ServiceFee       float64 `json:"service_fee"`
	Total            float64 `json:"total"`
}

// Calculate prices nights at the given nightly room and services rates.
// It does not check nights; callers must reject stays shorter than one night.
func Calculate(nights int, nightlyRate, servicesPerNight float64) Quote {
	n := float64(nights)
	roomTotal := n * nightlyRate
	servicesTotal := n * servicesPerNight
	subtotal := roomTotal + servicesTotal
	tax := subtotal * TaxRate
	fee := subtotal * FeeRate
	return Quote{
		Nights:           nights,
		RoomRate:         nightlyRate,
		ServicesPerNight: servicesPerNight,
		RoomTotal:        roomTotal,
		ServicesTotal:    servicesTotal,
		Subtotal:         subtotal,
		Tax:              tax,
		ServiceFee:       fee,
		Total:            subtotal + tax + fee,
	}
}

// QuoteStay resolves the room rate for the stay's guests and prices it.
func QuoteStay(stay Stay, rate Rate, services Selection) (Quote, error) {
	nights := stay.Nights()
	if nights < 1 {
		return Quote{}, NewValidationError("check_out", "must be after check-in")
	}
	return Calculate(nights, Resolve(rate, stay.Guests()), services.PerNight()), nil
}
