package models

type Amenity struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var Amenities = []Amenity{
	{ID: "wifi", Label: "WiFi"},
	{ID: "tv", Label: "TV"},
	{ID: "ac", Label: "Air Conditioning"},
	{ID: "coffee", Label: "Coffee Maker"},
	{ID: "pool", Label: "Pool Access"},
	{ID: "parking", Label: "Parking"},
	{ID: "restaurant", Label: "Restaurant"},
	{ID: "minibar", Label: "Minibar"},
	{ID: "jacuzzi", Label: "Jacuzzi"},
	{ID: "gym", Label: "Gym Access"},
}

func IsKnownAmenity(id string) bool {
	for _, a := range Amenities {
		if a.ID == id {
			return true
		}
	}
	return false
}
