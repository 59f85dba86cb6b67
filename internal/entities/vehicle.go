package entities

type VehicleRequest struct {
	Name           string  `json:"name"`
	RegistrationNo string  `json:"registration_no"`
	Seats          int     `json:"seats"`
	BasePrice      float64 `json:"base_price"`
	PricePerKm     float64 `json:"price_per_km"`
	Mileage        float64 `json:"mileage"`
	HasAC          bool    `json:"has_ac"`
	Terrain        string  `json:"terrain"`
	CompanyID      *int    `json:"company_id"`
}

type VehicleSearchRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	MinSeats  int    `json:"min_seats"`
	HasAC     *bool  `json:"has_ac"`
	Terrain   string `json:"terrain"`
}

type VehicleResponse struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	RegistrationNo string  `json:"registration_no"`
	Seats          int     `json:"seats"`
	BasePrice      float64 `json:"base_price"`
	PricePerKm     float64 `json:"price_per_km"`
	Mileage        float64 `json:"mileage"`
	HasAC          bool    `json:"has_ac"`
	Terrain        string  `json:"terrain"`
	CompanyID      *int    `json:"company_id,omitempty"`
	AverageRating  float64 `json:"average_rating"`
	Active         bool    `json:"active"`
}
