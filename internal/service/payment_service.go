package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sirupsen/logrus"

	"fleetbooking/internal/db"
	"fleetbooking/internal/entities"
	apperrors "fleetbooking/internal/errors"
	"fleetbooking/internal/repository"
)

type PaymentService struct {
	client      *razorpay.Client
	secret      string
	BookingRepo *repository.BookingRepository
	PaymentRepo *repository.PaymentRepository
	Notify      *NotifyService
}

func NewPaymentService(keyID, keySecret string, bookingRepo *repository.BookingRepository,
	paymentRepo *repository.PaymentRepository, notify *NotifyService) *PaymentService {
	return &PaymentService{
		client:      razorpay.NewClient(keyID, keySecret),
		secret:      keySecret,
		BookingRepo: bookingRepo,
		PaymentRepo: paymentRepo,
		Notify:      notify,
	}
}

// CreateOrder opens a gateway order for the advance amount and ties its id to
// the booking.
func (s *PaymentService) CreateOrder(req entities.PaymentOrderRequest) (*entities.PaymentOrderResponse, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ErrBadRequest("amount must be positive")
	}
	booking, err := s.BookingRepo.GetByCode(req.BookingCode)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	if Status(booking.Status).Terminal() {
		return nil, apperrors.ErrBadRequest("booking is already " + booking.Status)
	}

	data := map[string]interface{}{
		"amount":   int64(math.Round(req.Amount * 100)), // paise
		"currency": "INR",
		"receipt":  booking.Code,
	}
	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		logrus.WithError(err).WithField("booking", booking.Code).Error("gateway order creation failed")
		return nil, apperrors.NewHTTPError(502, "payment gateway unavailable")
	}
	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, apperrors.NewHTTPError(502, "payment gateway returned no order id")
	}

	if err := s.BookingRepo.MarkPaymentOrder(booking.ID, orderID, req.Amount); err != nil {
		return nil, err
	}
	return &entities.PaymentOrderResponse{
		BookingCode: booking.Code,
		OrderID:     orderID,
		Amount:      req.Amount,
		Currency:    "INR",
	}, nil
}

// VerifySignature checks the gateway callback: HMAC-SHA256 over
// "<orderID>|<paymentID>" keyed with the API secret, hex-encoded.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ConfirmPayment verifies the callback triplet, logs the amount the order was
// opened for and moves the booking from pending_payment to confirmed.
func (s *PaymentService) ConfirmPayment(req entities.PaymentVerifyRequest) (*entities.PaymentLogResponse, error) {
	booking, err := s.BookingRepo.GetByCode(req.BookingCode)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	if Status(booking.Status).Terminal() {
		return nil, apperrors.ErrBadRequest("booking is already " + booking.Status)
	}
	if booking.PaymentOrderID == "" || booking.PaymentOrderID != req.OrderID {
		return nil, apperrors.ErrBadRequest("order does not belong to this booking")
	}
	if !VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.secret) {
		return nil, apperrors.ErrBadRequest("payment signature verification failed")
	}

	entry := &db.PaymentLog{BookingID: booking.ID, Amount: booking.PaymentOrderAmount, Reference: req.PaymentID}
	if err := s.PaymentRepo.Append(entry); err != nil {
		return nil, err
	}

	if Status(booking.Status) == StatusPendingPayment {
		if err := s.BookingRepo.UpdateStatus(booking.ID, string(StatusConfirmed)); err != nil {
			return nil, err
		}
		booking.Status = string(StatusConfirmed)
		s.Notify.BookingStatusChanged(booking, "confirmed")
	}

	return &entities.PaymentLogResponse{
		ID:         entry.ID,
		BookingID:  entry.BookingID,
		Amount:     entry.Amount,
		Reference:  entry.Reference,
		ReceivedAt: entry.ReceivedAt,
	}, nil
}
