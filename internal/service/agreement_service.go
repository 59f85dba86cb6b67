package service

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	apperrors "fleetbooking/internal/errors"
	"fleetbooking/internal/repository"
)

// AgreementService renders the fixed-layout rental agreement / invoice PDF
// for a booking.
type AgreementService struct {
	BookingRepo *repository.BookingRepository
	VehicleRepo *repository.VehicleRepository
	PaymentRepo *repository.PaymentRepository
}

func NewAgreementService(bookingRepo *repository.BookingRepository, vehicleRepo *repository.VehicleRepository,
	paymentRepo *repository.PaymentRepository) *AgreementService {
	return &AgreementService{BookingRepo: bookingRepo, VehicleRepo: vehicleRepo, PaymentRepo: paymentRepo}
}

func (s *AgreementService) WriteAgreement(code string, w io.Writer) error {
	booking, err := s.BookingRepo.GetByCode(code)
	if err != nil {
		return apperrors.ErrNotFound("booking not found")
	}
	paid, err := s.PaymentRepo.SumForBooking(booking.ID)
	if err != nil {
		return err
	}

	vehicleName := "To be assigned"
	registration := "-"
	if booking.VehicleID != nil {
		if vehicle, err := s.VehicleRepo.GetByID(*booking.VehicleID); err == nil {
			vehicleName = vehicle.Name
			registration = vehicle.RegistrationNo
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Rental Agreement & Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Booking code", booking.Code)
	line("Customer", fmt.Sprintf("%s (%s)", booking.CustomerName, booking.CustomerPhone))
	line("Route", fmt.Sprintf("%s  to  %s", booking.Pickup, booking.Destination))
	line("Travel dates", fmt.Sprintf("%s - %s", booking.StartDate.Format("02 Jan 2006"), booking.EndDate.Format("02 Jan 2006")))
	line("Vehicle", fmt.Sprintf("%s (%s)", vehicleName, registration))
	line("Status", booking.Status)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Fare", "B", 1, "L", false, 0, "")
	amount := func(label string, value float64) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("%.2f", value), "", 1, "R", false, 0, "")
	}
	amount("Base rent", booking.BaseRent)
	amount("Mountain surcharge", booking.MountainRent)
	amount("Driver allowance", booking.DriverBatta)
	amount("Permit", booking.PermitCharge)
	amount("Toll", booking.TollCharge)
	amount("Other charges", booking.OtherCharge)
	amount("Discount", -booking.Discount)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("%.2f", booking.TotalAmount), "T", 1, "R", false, 0, "")
	amount("Advance paid", paid)
	amount("Balance due", booking.TotalAmount-paid)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error rendering agreement PDF: %w", err)
	}
	return nil
}
