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

var bookingTestColumns = []string{
	"id", "code", "vehicle_id", "customer_name", "customer_phone", "customer_email",
	"pickup", "destination", "start_date", "end_date",
	"base_rent", "mountain_rent", "driver_batta", "permit_charge", "toll_charge", "other_charge", "discount",
	"total_amount", "status", "payment_order_id", "payment_order_amount",
	"cancelled_at", "refund_amount", "live_lat", "live_lng",
	"start_odometer", "end_odometer", "started_at", "completed_at",
	"rating", "feedback", "created_by", "created_at", "updated_at",
}

func bookingRow(id int, code, status string, total float64, orderID string, orderAmount float64) *sqlmock.Rows {
	now := time.Now()
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(bookingTestColumns).AddRow(
		id, code, nil, "Anu", "9000000000", nil,
		"Kochi", "Munnar", start, start.AddDate(0, 0, 2),
		total, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0,
		total, status, orderID, orderAmount,
		nil, nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil, nil, now, now,
	)
}

func newBookingServiceWithMock(t *testing.T) (*BookingService, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := NewBookingService(
		repository.NewBookingRepository(mockDB),
		repository.NewVehicleRepository(mockDB),
		repository.NewPaymentRepository(mockDB),
		NewNotifyService(),
		nil,
	)
	return svc, mock, func() { mockDB.Close() }
}

// Paying 3000 against a 10000 booking leaves an open balance; only the second
// payment flips the fully-paid flag.
func TestBalanceFlipsOnlyAfterSecondPayment(t *testing.T) {
	svc, mock, cleanup := newBookingServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(`FROM bookings WHERE code = \$1`).
		WithArgs("TRV-AAAA1111").
		WillReturnRows(bookingRow(9, "TRV-AAAA1111", string(StatusConfirmed), 10000, "", 0))
	mock.ExpectQuery(`SELECT SUM\(amount\) FROM payment_logs`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(3000.0))

	resp, err := svc.GetByCode("TRV-AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, resp.AdvancePaid)
	assert.Equal(t, 7000.0, resp.Balance)
	assert.False(t, resp.FullyPaid)

	mock.ExpectQuery(`FROM bookings WHERE code = \$1`).
		WithArgs("TRV-AAAA1111").
		WillReturnRows(bookingRow(9, "TRV-AAAA1111", string(StatusConfirmed), 10000, "", 0))
	mock.ExpectQuery(`SELECT SUM\(amount\) FROM payment_logs`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(10000.0))

	resp, err = svc.GetByCode("TRV-AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Balance)
	assert.True(t, resp.FullyPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A review before the trip completed is rejected without touching the DB
// beyond the lookup.
func TestSubmitReviewRejectedBeforeCompletion(t *testing.T) {
	svc, mock, cleanup := newBookingServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(`FROM bookings WHERE code = \$1`).
		WithArgs("TRV-AAAA1111").
		WillReturnRows(bookingRow(9, "TRV-AAAA1111", string(StatusConfirmed), 10000, "", 0))

	err := svc.SubmitReview("TRV-AAAA1111", entities.ReviewRequest{Rating: 5, Feedback: "great"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "completed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReviewRejectsOutOfRangeRating(t *testing.T) {
	svc, _, cleanup := newBookingServiceWithMock(t)
	defer cleanup()

	assert.Error(t, svc.SubmitReview("TRV-AAAA1111", entities.ReviewRequest{Rating: 0}))
	assert.Error(t, svc.SubmitReview("TRV-AAAA1111", entities.ReviewRequest{Rating: 6}))
}
