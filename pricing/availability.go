package pricing

// MaxCapacity is the largest capacity among the candidate rooms, or
// DefaultMaxCapacity when there are none.
func MaxCapacity(capacities []int) int {
	if len(capacities) == 0 {
		return DefaultMaxCapacity
	}
	best := capacities[0]
	for _, c := range capacities[1:] {
		if c > best {
			best = c
		}
	}
	return best
}
