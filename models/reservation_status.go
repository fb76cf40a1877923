package models

// transitions lists the staff actions allowed from each status.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut},
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

// Active reservations hold their room for their dates.
func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCheckedIn
}

func CanTransition(from, to ReservationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveStatuses is the IN list used by overlap queries.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed), string(StatusCheckedIn)}
}

// HistoryAction is the reservation_history action recorded for a move into status.
func HistoryAction(to ReservationStatus) string {
	switch to {
	case StatusConfirmed:
		return "confirmation"
	case StatusCheckedIn:
		return "check_in"
	case StatusCheckedOut:
		return "check_out"
	case StatusCancelled:
		return "cancellation"
	}
	return "status_change"
}
