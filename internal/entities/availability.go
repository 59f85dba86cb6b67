package entities

import "time"

type AvailabilityRequest struct {
	VehicleID int    `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AvailabilityResponse struct {
	VehicleID   int         `json:"vehicle_id"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Available   bool        `json:"available"`
	BlockedDays []time.Time `json:"blocked_days,omitempty"`
}
