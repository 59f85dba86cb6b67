package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"fleetbooking/internal/db"
	"fleetbooking/internal/entities"
)

// NotifyService sends booking updates over email and WhatsApp. Sends run
// asynchronously and never fail the request that triggered them.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (s *NotifyService) BookingStatusChanged(booking *db.Booking, status string) {
	data := entities.BookingNotification{
		CustomerName:       booking.CustomerName,
		CustomerEmail:      booking.CustomerEmail,
		CustomerPhone:      booking.CustomerPhone,
		BookingCode:        booking.Code,
		Pickup:             booking.Pickup,
		Destination:        booking.Destination,
		StartDateFormatted: booking.StartDate.Format("02 Jan 2006"),
		EndDateFormatted:   booking.EndDate.Format("02 Jan 2006"),
		Status:             status,
		TotalAmount:        booking.TotalAmount,
	}

	subject := fmt.Sprintf("Your booking %s is %s", data.BookingCode, data.Status)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking %s is %s.\n\n"+
			"Trip: %s to %s\n"+
			"From: %s\n"+
			"To: %s\n"+
			"Total fare: %.2f\n\n"+
			"Thank you for travelling with us.",
		data.CustomerName, data.BookingCode, data.Status,
		data.Pickup, data.Destination,
		data.StartDateFormatted, data.EndDateFormatted,
		data.TotalAmount,
	)

	if data.CustomerEmail != "" {
		go func() {
			if err := SendEmailWithSendGrid(data.CustomerEmail, data.CustomerName, subject, body, ""); err != nil {
				logrus.WithError(err).WithField("booking", data.BookingCode).Warn("booking email failed")
			}
		}()
	}

	text := fmt.Sprintf("Booking %s is %s. Trip %s to %s, %s. Details in your email.",
		data.BookingCode, data.Status, data.Pickup, data.Destination, data.StartDateFormatted)
	go func() {
		if err := SendWhatsApp(data.CustomerPhone, text); err != nil {
			logrus.WithError(err).WithField("booking", data.BookingCode).Warn("booking whatsapp failed")
		}
	}()
}
