package entities

import "time"

type BookingResponse struct {
	ID            int         `json:"id"`
	Code          string      `json:"code"`
	VehicleID     *int        `json:"vehicle_id,omitempty"`
	VehicleName   string      `json:"vehicle_name,omitempty"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	Pickup        string      `json:"pickup"`
	Destination   string      `json:"destination"`
	StartDate     time.Time   `json:"start_date"`
	EndDate       time.Time   `json:"end_date"`
	Fare          FareBreakup `json:"fare"`
	TotalAmount   float64     `json:"total_amount"`
	AdvancePaid   float64     `json:"advance_paid"`
	Balance       float64     `json:"balance"`
	FullyPaid     bool        `json:"fully_paid"`
	Status        string      `json:"status"`
	CancelledAt   *time.Time  `json:"cancelled_at,omitempty"`
	RefundAmount  *float64    `json:"refund_amount,omitempty"`
	StartedAt     *time.Time  `json:"started_at,omitempty"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	Rating        *int        `json:"rating,omitempty"`
	Feedback      string      `json:"feedback,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

type CancellationResponse struct {
	Code         string  `json:"code"`
	Status       string  `json:"status"`
	RefundAmount float64 `json:"refund_amount"`
}
