package db

import "time"

type Company struct {
	ID           int
	Name         string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Active       bool
	CreatedAt    time.Time
}

type User struct {
	ID           int
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CompanyID    *int
	Active       bool
	CreatedAt    time.Time
}

type Vehicle struct {
	ID             int
	Name           string
	RegistrationNo string
	Seats          int
	BasePrice      float64
	PricePerKm     float64
	Mileage        float64
	HasAC          bool
	Terrain        string
	CompanyID      *int
	AverageRating  float64
	Active         bool
	Deleted        bool
	CreatedAt      time.Time
}

type Booking struct {
	ID            int
	Code          string
	VehicleID     *int
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Pickup        string
	Destination   string
	StartDate     time.Time
	EndDate       time.Time
	BaseRent      float64
	MountainRent  float64
	DriverBatta   float64
	PermitCharge  float64
	TollCharge    float64
	OtherCharge   float64
	Discount      float64
	TotalAmount   float64
	Status        string

	// PaymentOrderAmount is the advance the open gateway order was created
	// for; the captured payment is logged at this amount, never a
	// client-supplied one.
	PaymentOrderID     string
	PaymentOrderAmount float64

	CancelledAt   *time.Time
	RefundAmount  *float64
	LiveLat       *float64
	LiveLng       *float64
	StartOdometer *float64
	EndOdometer   *float64
	StartedAt     *time.Time
	CompletedAt   *time.Time
	Rating        *int
	Feedback      string
	CreatedBy     *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BlockedDate is one occupied calendar day on a vehicle. Rows created by a
// booking carry its id so cancellation can release exactly its own days.
type BlockedDate struct {
	ID        int
	VehicleID int
	Date      time.Time
	Reason    string
	BookingID *int
}

type PaymentLog struct {
	ID         int
	BookingID  int
	Amount     float64
	Reference  string
	ReceivedAt time.Time
}

type Expense struct {
	ID          int
	BookingID   int
	Category    string
	Description string
	Amount      float64
	SpentAt     time.Time
}

type FuelLog struct {
	ID        int
	BookingID int
	Litres    float64
	Amount    float64
	Odometer  *float64
	FilledAt  time.Time
}
