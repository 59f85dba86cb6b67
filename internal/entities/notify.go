package entities

// BookingNotification holds the fields the email and WhatsApp templates need.
type BookingNotification struct {
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	BookingCode        string
	VehicleName        string
	Pickup             string
	Destination        string
	StartDateFormatted string
	EndDateFormatted   string
	Status             string
	TotalAmount        float64
}
