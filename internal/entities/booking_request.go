package entities

// FareBreakup carries the additive price components of a booking. All fields
// are expected to be non-negative; discount is subtracted from the rest.
type FareBreakup struct {
	BaseRent     float64 `json:"base_rent"`
	MountainRent float64 `json:"mountain_rent"`
	DriverBatta  float64 `json:"driver_batta"`
	PermitCharge float64 `json:"permit_charge"`
	TollCharge   float64 `json:"toll_charge"`
	OtherCharge  float64 `json:"other_charge"`
	Discount     float64 `json:"discount"`
}

type BookingRequest struct {
	VehicleID     *int        `json:"vehicle_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	CustomerEmail string      `json:"customer_email"`
	Pickup        string      `json:"pickup"`
	Destination   string      `json:"destination"`
	StartDate     string      `json:"start_date"` // "2006-01-02"
	EndDate       string      `json:"end_date"`
	Fare          FareBreakup `json:"fare"`
	Manual        bool        `json:"manual"`
}

type AssignVehicleRequest struct {
	VehicleID int `json:"vehicle_id"`
}

type ReviewRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

type TripStartRequest struct {
	Odometer float64 `json:"odometer"`
}

type TripEndRequest struct {
	Odometer float64 `json:"odometer"`
}
