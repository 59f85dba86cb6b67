package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleetbooking/internal/db"
	"fleetbooking/internal/entities"
	apperrors "fleetbooking/internal/errors"
	"fleetbooking/internal/repository"
)

const (
	// Cancellation policy: a full refund of the advance applies only while
	// more than this much time remains before the travel date.
	freeCancellationWindow = 24 * time.Hour
	lateCancellationShare  = 0.5
)

// LocationPublisher fans a live position out to trip subscribers. Best
// effort; errors are not surfaced to the caller.
type LocationPublisher interface {
	Publish(bookingCode string, update entities.LocationUpdate)
}

type BookingService struct {
	Repo        *repository.BookingRepository
	VehicleRepo *repository.VehicleRepository
	PaymentRepo *repository.PaymentRepository
	Notify      *NotifyService
	Publisher   LocationPublisher
}

func NewBookingService(repo *repository.BookingRepository, vehicleRepo *repository.VehicleRepository,
	paymentRepo *repository.PaymentRepository, notify *NotifyService, publisher LocationPublisher) *BookingService {
	return &BookingService{
		Repo:        repo,
		VehicleRepo: vehicleRepo,
		PaymentRepo: paymentRepo,
		Notify:      notify,
		Publisher:   publisher,
	}
}

// TotalAmount derives the fare total: every positive component added, the
// discount subtracted.
func TotalAmount(f entities.FareBreakup) float64 {
	return f.BaseRent + f.MountainRent + f.DriverBatta + f.PermitCharge + f.TollCharge + f.OtherCharge - f.Discount
}

// RefundAmount applies the time-to-travel rule: strictly more than 24 hours
// before the travel date refunds the full advance, otherwise half of it.
func RefundAmount(paid float64, startDate, now time.Time) float64 {
	if startDate.Sub(now) > freeCancellationWindow {
		return paid
	}
	return paid * lateCancellationShare
}

func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func validateFare(f entities.FareBreakup) error {
	components := []float64{f.BaseRent, f.MountainRent, f.DriverBatta, f.PermitCharge, f.TollCharge, f.OtherCharge, f.Discount}
	for _, c := range components {
		if c < 0 {
			return apperrors.ErrBadRequest("fare components must not be negative")
		}
	}
	return nil
}

func newBookingCode() string {
	return "TRV-" + strings.ToUpper(uuid.NewString()[:8])
}

// Create books a date range, blocking the vehicle's calendar atomically when
// one is chosen up front. Manual (staff/partner) entries start confirmed,
// self-service ones wait for payment.
func (s *BookingService) Create(req *entities.BookingRequest, createdBy int) (*entities.BookingResponse, error) {
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return nil, apperrors.ErrBadRequest("customer name and phone are required")
	}
	if req.Pickup == "" || req.Destination == "" {
		return nil, apperrors.ErrBadRequest("pickup and destination are required")
	}
	start, err := parseDay(req.StartDate)
	if err != nil {
		return nil, apperrors.ErrBadRequest("invalid start_date, expected YYYY-MM-DD")
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		return nil, apperrors.ErrBadRequest("invalid end_date, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, apperrors.ErrBadRequest("end_date must not be before start_date")
	}
	if err := validateFare(req.Fare); err != nil {
		return nil, err
	}

	if req.VehicleID != nil {
		vehicle, err := s.VehicleRepo.GetByID(*req.VehicleID)
		if err != nil {
			return nil, apperrors.ErrNotFound("vehicle not found")
		}
		if !vehicle.Active {
			return nil, apperrors.ErrBadRequest("vehicle is not active")
		}
	}

	status := StatusPendingPayment
	if req.Manual {
		status = StatusConfirmed
	}

	booking := &db.Booking{
		Code:          newBookingCode(),
		VehicleID:     req.VehicleID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Pickup:        req.Pickup,
		Destination:   req.Destination,
		StartDate:     start,
		EndDate:       end,
		BaseRent:      req.Fare.BaseRent,
		MountainRent:  req.Fare.MountainRent,
		DriverBatta:   req.Fare.DriverBatta,
		PermitCharge:  req.Fare.PermitCharge,
		TollCharge:    req.Fare.TollCharge,
		OtherCharge:   req.Fare.OtherCharge,
		Discount:      req.Fare.Discount,
		TotalAmount:   TotalAmount(req.Fare),
		Status:        string(status),
		CreatedBy:     &createdBy,
	}

	if err := s.Repo.Create(booking); err != nil {
		if errors.Is(err, repository.ErrDateConflict) {
			return nil, apperrors.ErrConflict("vehicle already reserved for the selected dates")
		}
		logrus.WithError(err).Error("failed to create booking")
		return nil, err
	}

	if status == StatusConfirmed {
		s.Notify.BookingStatusChanged(booking, "confirmed")
	}
	return s.toResponse(booking)
}

// CheckAvailability answers whether the vehicle is free over the range.
func (s *BookingService) CheckAvailability(req entities.AvailabilityRequest) (*entities.AvailabilityResponse, error) {
	start, err := parseDay(req.StartDate)
	if err != nil {
		return nil, apperrors.ErrBadRequest("invalid start_date, expected YYYY-MM-DD")
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		return nil, apperrors.ErrBadRequest("invalid end_date, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, apperrors.ErrBadRequest("end_date must not be before start_date")
	}

	blocked, err := s.Repo.BlockedDaysInRange(req.VehicleID, start, end, 0)
	if err != nil {
		return nil, err
	}
	return &entities.AvailabilityResponse{
		VehicleID:   req.VehicleID,
		StartDate:   start,
		EndDate:     end,
		Available:   len(blocked) == 0,
		BlockedDays: blocked,
	}, nil
}

// AssignVehicle attaches (or swaps) the vehicle on an existing booking. The
// booking keeps its own blocked days during the conflict check, so moving a
// booking between vehicles never trips over itself.
func (s *BookingService) AssignVehicle(code string, vehicleID int) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	if Status(booking.Status).Terminal() {
		return nil, apperrors.ErrBadRequest("booking is already " + booking.Status)
	}
	vehicle, err := s.VehicleRepo.GetByID(vehicleID)
	if err != nil {
		return nil, apperrors.ErrNotFound("vehicle not found")
	}
	if !vehicle.Active {
		return nil, apperrors.ErrBadRequest("vehicle is not active")
	}

	if err := s.Repo.AssignVehicle(booking, vehicleID); err != nil {
		if errors.Is(err, repository.ErrDateConflict) {
			return nil, apperrors.ErrConflict("vehicle already reserved for the selected dates")
		}
		logrus.WithError(err).WithField("booking", code).Error("failed to assign vehicle")
		return nil, err
	}
	booking.VehicleID = &vehicleID
	return s.toResponse(booking)
}

// Cancel releases the booking's blocked days and computes the refund from the
// advance paid so far.
func (s *BookingService) Cancel(code string) (*entities.CancellationResponse, error) {
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	if Status(booking.Status).Terminal() {
		return nil, apperrors.ErrBadRequest("booking can no longer be cancelled")
	}

	paid, err := s.PaymentRepo.SumForBooking(booking.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	refund := RefundAmount(paid, booking.StartDate, now)

	if err := s.Repo.Cancel(booking.ID, now, refund); err != nil {
		logrus.WithError(err).WithField("booking", code).Error("failed to cancel booking")
		return nil, err
	}

	booking.Status = string(StatusCancelled)
	s.Notify.BookingStatusChanged(booking, "cancelled")

	return &entities.CancellationResponse{
		Code:         booking.Code,
		Status:       string(StatusCancelled),
		RefundAmount: refund,
	}, nil
}

// RecordPayment appends an advance entry against the booking.
func (s *BookingService) RecordPayment(code string, req entities.PaymentLogRequest) (*entities.BookingResponse, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ErrBadRequest("amount must be positive")
	}
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	if Status(booking.Status) == StatusCancelled {
		return nil, apperrors.ErrBadRequest("booking is cancelled")
	}

	entry := &db.PaymentLog{BookingID: booking.ID, Amount: req.Amount, Reference: req.Reference}
	if err := s.PaymentRepo.Append(entry); err != nil {
		return nil, err
	}
	return s.toResponse(booking)
}

// StartTrip moves a confirmed booking into started and stamps the odometer.
func (s *BookingService) StartTrip(code string, odometer float64) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	if booking.VehicleID == nil {
		return nil, apperrors.ErrBadRequest("no vehicle assigned")
	}
	now := time.Now().UTC()
	if err := ApplyTransition(booking, StatusStarted, now); err != nil {
		return nil, apperrors.ErrBadRequest(err.Error())
	}
	if err := s.Repo.StartTrip(booking.ID, odometer, now); err != nil {
		return nil, err
	}
	booking.StartOdometer = &odometer
	return s.toResponse(booking)
}

// EndTrip completes the trip from started or in_progress.
func (s *BookingService) EndTrip(code string, odometer float64) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	now := time.Now().UTC()
	if err := ApplyTransition(booking, StatusCompleted, now); err != nil {
		return nil, apperrors.ErrBadRequest(err.Error())
	}
	if err := s.Repo.EndTrip(booking.ID, odometer, now); err != nil {
		return nil, err
	}
	booking.EndOdometer = &odometer
	s.Notify.BookingStatusChanged(booking, "completed")
	return s.toResponse(booking)
}

// UpdateLocation stores the latest position (last write wins) and pushes it
// to subscribers. The first update promotes started -> in_progress.
func (s *BookingService) UpdateLocation(code string, update entities.LocationUpdate) error {
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return apperrors.ErrNotFound("booking not found")
	}
	status := Status(booking.Status)
	if status == StatusStarted {
		status = StatusInProgress
	} else if status != StatusInProgress {
		return apperrors.ErrBadRequest("trip is not running")
	}
	if err := s.Repo.UpdateLiveLocation(booking.ID, update.Latitude, update.Longitude, string(status)); err != nil {
		return err
	}

	update.BookingCode = booking.Code
	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now().UTC()
	}
	if s.Publisher != nil {
		s.Publisher.Publish(booking.Code, update)
	}
	return nil
}

// SubmitReview is legal only once the trip completed with a vehicle assigned.
// The vehicle's average rating is recomputed over all its rated bookings.
func (s *BookingService) SubmitReview(code string, req entities.ReviewRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return apperrors.ErrBadRequest("rating must be between 1 and 5")
	}
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return apperrors.ErrNotFound("booking not found")
	}
	if Status(booking.Status) != StatusCompleted {
		return apperrors.ErrBadRequest("reviews are only accepted on completed trips")
	}
	if booking.VehicleID == nil {
		return apperrors.ErrBadRequest("booking has no vehicle to review")
	}

	if err := s.Repo.SaveReview(booking.ID, req.Rating, req.Feedback); err != nil {
		return err
	}
	if _, err := s.VehicleRepo.RecomputeAverageRating(*booking.VehicleID); err != nil {
		logrus.WithError(err).WithField("vehicle", *booking.VehicleID).Error("failed to recompute rating")
	}
	return nil
}

func (s *BookingService) GetByCode(code string) (*entities.BookingResponse, error) {
	booking, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	return s.toResponse(booking)
}

func (s *BookingService) List(date, status string, vehicleID, createdBy int) ([]*entities.BookingResponse, error) {
	bookings, err := s.Repo.List(date, status, vehicleID, createdBy)
	if err != nil {
		return nil, err
	}
	responses := make([]*entities.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp, err := s.toResponse(b)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *BookingService) toResponse(b *db.Booking) (*entities.BookingResponse, error) {
	paid, err := s.PaymentRepo.SumForBooking(b.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading payments for booking %s: %w", b.Code, err)
	}

	var vehicleName string
	if b.VehicleID != nil {
		if vehicle, err := s.VehicleRepo.GetByID(*b.VehicleID); err == nil {
			vehicleName = vehicle.Name
		}
	}

	return &entities.BookingResponse{
		ID:            b.ID,
		Code:          b.Code,
		VehicleID:     b.VehicleID,
		VehicleName:   vehicleName,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		Pickup:        b.Pickup,
		Destination:   b.Destination,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Fare: entities.FareBreakup{
			BaseRent:     b.BaseRent,
			MountainRent: b.MountainRent,
			DriverBatta:  b.DriverBatta,
			PermitCharge: b.PermitCharge,
			TollCharge:   b.TollCharge,
			OtherCharge:  b.OtherCharge,
			Discount:     b.Discount,
		},
		TotalAmount:  b.TotalAmount,
		AdvancePaid:  paid,
		Balance:      b.TotalAmount - paid,
		FullyPaid:    paid >= b.TotalAmount,
		Status:       b.Status,
		CancelledAt:  b.CancelledAt,
		RefundAmount: b.RefundAmount,
		StartedAt:    b.StartedAt,
		CompletedAt:  b.CompletedAt,
		Rating:       b.Rating,
		Feedback:     b.Feedback,
		CreatedAt:    b.CreatedAt,
	}, nil
}
