package entities

import "time"

// LocationUpdate is the tuple pushed to live-trip subscribers. Delivery is
// best effort; the booking row only keeps the latest lat/lng.
type LocationUpdate struct {
	BookingCode string    `json:"booking_code"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Speed       float64   `json:"speed"`
	Timestamp   time.Time `json:"timestamp"`
}
