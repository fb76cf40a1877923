package pricing

// Service is an optional add-on charged once per night.
type Service struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Selection is a set of services keyed by ID, in the order they were chosen.
// Its methods never modify the receiver.
type Selection struct {
	items []Service
}

// NewSelection keeps the first occurrence of each ID.
func NewSelection(services ...Service) Selection {
	var sel Selection
	for _, svc := range services {
		if !sel.Has(svc.ID) {
			sel.items = append(sel.items, svc)
		}
	}
	return sel
}

func (s Selection) Has(id string) bool {
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Toggle adds svc when absent and removes it when present.
func (s Selection) Toggle(svc Service) Selection {
	out := make([]Service, 0, len(s.items)+1)
	found := false
	for _, item := range s.items {
		if item.ID == svc.ID {
			found = true
			continue
		}
		out = append(out, item)
	}
	if !found {
		out = append(out, svc)
	}
	return Selection{items: out}
}

func (s Selection) Items() []Service {
	out := make([]Service, len(s.items))
	copy(out, s.items)
	return out
}

func (s Selection) Len() int { return len(s.items) }

// PerNight sums the nightly price of every selected service.
func (s Selection) PerNight() float64 {
	var sum float64
	for _, item := range s.items {
		sum += item.Price
	}
	return sum
}
