package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetbooking/internal/entities"
	"fleetbooking/internal/repository"
)

func newPaymentServiceWithMock(t *testing.T, secret string) (*PaymentService, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewPaymentService("key", secret,
		repository.NewBookingRepository(mockDB),
		repository.NewPaymentRepository(mockDB),
		NewNotifyService(),
	)
	return svc, mock, func() { mockDB.Close() }
}

// The captured payment is logged at the amount the order was opened for; the
// client never supplies it.
func TestConfirmPaymentLogsStoredOrderAmount(t *testing.T) {
	secret := "test_secret"
	svc, mock, cleanup := newPaymentServiceWithMock(t, secret)
	defer cleanup()

	mock.ExpectQuery(`FROM bookings WHERE code = \$1`).
		WithArgs("TRV-AAAA1111").
		WillReturnRows(bookingRow(9, "TRV-AAAA1111", string(StatusPendingPayment), 10000, "order_1", 3000))
	mock.ExpectQuery(`INSERT INTO payment_logs`).
		WithArgs(9, 3000.0, "pay_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "received_at"}).AddRow(1, time.Now()))
	mock.ExpectExec(`UPDATE bookings SET status = \$1`).
		WithArgs(string(StatusConfirmed), 9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.ConfirmPayment(entities.PaymentVerifyRequest{
		BookingCode: "TRV-AAAA1111",
		OrderID:     "order_1",
		PaymentID:   "pay_1",
		Signature:   signPayload("order_1", "pay_1", secret),
	})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, resp.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A verified callback against a cancelled booking must not append a payment.
func TestConfirmPaymentRejectsTerminalBooking(t *testing.T) {
	secret := "test_secret"
	svc, mock, cleanup := newPaymentServiceWithMock(t, secret)
	defer cleanup()

	mock.ExpectQuery(`FROM bookings WHERE code = \$1`).
		WithArgs("TRV-AAAA1111").
		WillReturnRows(bookingRow(9, "TRV-AAAA1111", string(StatusCancelled), 10000, "order_1", 3000))

	_, err := svc.ConfirmPayment(entities.PaymentVerifyRequest{
		BookingCode: "TRV-AAAA1111",
		OrderID:     "order_1",
		PaymentID:   "pay_1",
		Signature:   signPayload("order_1", "pay_1", secret),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentRejectsMismatchedOrder(t *testing.T) {
	secret := "test_secret"
	svc, mock, cleanup := newPaymentServiceWithMock(t, secret)
	defer cleanup()

	mock.ExpectQuery(`FROM bookings WHERE code = \$1`).
		WithArgs("TRV-AAAA1111").
		WillReturnRows(bookingRow(9, "TRV-AAAA1111", string(StatusPendingPayment), 10000, "order_1", 3000))

	_, err := svc.ConfirmPayment(entities.PaymentVerifyRequest{
		BookingCode: "TRV-AAAA1111",
		OrderID:     "order_other",
		PaymentID:   "pay_1",
		Signature:   signPayload("order_other", "pay_1", secret),
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
