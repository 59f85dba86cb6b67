package entities

import "time"

type PaymentOrderRequest struct {
	BookingCode string  `json:"booking_code"`
	Amount      float64 `json:"amount"`
}

type PaymentOrderResponse struct {
	BookingCode string  `json:"booking_code"`
	OrderID     string  `json:"order_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// PaymentVerifyRequest is the gateway's callback triplet. The signature is an
// HMAC over "<order_id>|<payment_id>".
type PaymentVerifyRequest struct {
	BookingCode string `json:"booking_code"`
	OrderID     string `json:"razorpay_order_id"`
	PaymentID   string `json:"razorpay_payment_id"`
	Signature   string `json:"razorpay_signature"`
}

type PaymentLogRequest struct {
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

type PaymentLogResponse struct {
	ID         int       `json:"id"`
	BookingID  int       `json:"booking_id"`
	Amount     float64   `json:"amount"`
	Reference  string    `json:"reference,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}
