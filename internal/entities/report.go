package entities

type BookingProfit struct {
	BookingID   int     `json:"booking_id"`
	Code        string  `json:"code"`
	Revenue     float64 `json:"revenue"`
	ExpenseCost float64 `json:"expense_cost"`
	FuelCost    float64 `json:"fuel_cost"`
	Profit      float64 `json:"profit"`
}

type CompanyReport struct {
	CompanyID    *int    `json:"company_id,omitempty"`
	CompanyName  string  `json:"company_name"`
	Bookings     int     `json:"bookings"`
	Revenue      float64 `json:"revenue"`
	TotalCost    float64 `json:"total_cost"`
	Profit       float64 `json:"profit"`
}

type VehicleUtilization struct {
	VehicleID   int    `json:"vehicle_id"`
	VehicleName string `json:"vehicle_name"`
	BlockedDays int    `json:"blocked_days"`
}
