package models

// Station represents a train station
type Station struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Code      string   `json:"code,omitempty"`
	City      string   `json:"city"`
	Region    string   `json:"region,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
