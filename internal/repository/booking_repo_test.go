package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetbooking/internal/db"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func newBooking(vehicleID int, start, end string) *db.Booking {
	return &db.Booking{
		Code:          "TRV-TEST1234",
		VehicleID:     &vehicleID,
		CustomerName:  "Anu",
		CustomerPhone: "9000000000",
		Pickup:        "Kochi",
		Destination:   "Munnar",
		StartDate:     day(start),
		EndDate:       day(end),
		Status:        "pending_payment",
	}
}

func TestCreateRejectsOverlappingDates(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := NewBookingRepository(mockDB)

	b := newBooking(3, "2024-06-01", "2024-06-03")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blocked_dates`).
		WithArgs(3, b.StartDate, b.EndDate, 0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err = repo.Create(b)
	assert.ErrorIs(t, err, ErrDateConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlocksOneRowPerDay(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := NewBookingRepository(mockDB)

	b := newBooking(3, "2024-06-01", "2024-06-03")
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blocked_dates`).
		WithArgs(3, b.StartDate, b.EndDate, 0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(9, now, now))
	for _, d := range []string{"2024-06-01", "2024-06-02", "2024-06-03"} {
		mock.ExpectExec(`INSERT INTO blocked_dates`).
			WithArgs(3, day(d), 9).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.Create(b))
	assert.Equal(t, 9, b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelReleasesOnlyOwnRows(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := NewBookingRepository(mockDB)

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE bookings SET status = 'cancelled'`).
		WithArgs(at, 1500.0, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM blocked_dates WHERE booking_id = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.Cancel(9, at, 1500))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Reassignment must leave no rows on the old vehicle: the booking's rows are
// deleted wholesale before the new vehicle's days are inserted.
func TestAssignVehicleLeavesNoStaleRows(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := NewBookingRepository(mockDB)

	b := newBooking(3, "2024-06-01", "2024-06-02")
	b.ID = 9

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blocked_dates`).
		WithArgs(5, b.StartDate, b.EndDate, 9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM blocked_dates WHERE booking_id = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 2))
	for _, d := range []string{"2024-06-01", "2024-06-02"} {
		mock.ExpectExec(`INSERT INTO blocked_dates`).
			WithArgs(5, day(d), 9).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectExec(`UPDATE bookings SET vehicle_id = \$1`).
		WithArgs(5, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.AssignVehicle(b, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second booking over the same range conflicts until the first is
// cancelled, then succeeds.
func TestConflictThenCancelThenRetry(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := NewBookingRepository(mockDB)

	second := newBooking(3, "2024-06-01", "2024-06-01")
	now := time.Now()

	// First attempt: the winner's row is still on the calendar.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blocked_dates`).
		WithArgs(3, second.StartDate, second.EndDate, 0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	// Winner cancels, releasing its rows.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE bookings SET status = 'cancelled'`).
		WithArgs(now, 0.0, 8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM blocked_dates WHERE booking_id = \$1`).
		WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Retry: calendar is free now.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blocked_dates`).
		WithArgs(3, second.StartDate, second.EndDate, 0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(10, now, now))
	mock.ExpectExec(`INSERT INTO blocked_dates`).
		WithArgs(3, second.StartDate, 10).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assert.ErrorIs(t, repo.Create(second), ErrDateConflict)
	require.NoError(t, repo.Cancel(8, now, 0))
	require.NoError(t, repo.Create(second))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartTripKeepsFirstTimestamp(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := NewBookingRepository(mockDB)

	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(`started_at = COALESCE\(started_at, \$2\)`).
		WithArgs(12500.0, at, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.StartTrip(9, 12500, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
